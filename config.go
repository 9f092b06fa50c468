package staticize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"github.com/morrisxyang/xreflect"
	gut "github.com/panyam/goutils/utils"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultTitle is used for pages without a header inclusion marker.
	DefaultTitle = "파킹온"

	// DefaultTitlePlaceholder is the literal title text inside the header fragment.
	DefaultTitlePlaceholder = "페이지 제목"
)

// PageEntry is one line of the manifest: a template and where its static
// rendition goes, both relative to the respective roots.
type PageEntry struct {
	Source string `yaml:"source" toml:"source"`
	Dest   string `yaml:"dest" toml:"dest"`
}

// FragmentSpec describes a reusable fragment: where it is defined, how its
// container is declared and how pages include it.
type FragmentSpec struct {
	Name string `yaml:"name" toml:"name"`

	// File holding the fragment, relative to the source root.
	File string `yaml:"file" toml:"file"`

	// Signature as declared in th:fragment, eg "header(menuTitle)".
	Signature string `yaml:"signature" toml:"signature"`

	// Template is the template path used in th:replace, eg "fragments/header".
	Template string `yaml:"template" toml:"template"`

	// TakesTitle marks fragments included with a quoted title argument.
	// Unset means the default for the fragment applies.
	TakesTitle *bool `yaml:"takesTitle" toml:"takesTitle"`

	// Comment written before the inlined body, eg "Header".
	Comment string `yaml:"comment" toml:"comment"`

	// Bindings are th:text directives deleted from the fragment so the
	// static fallback content shows through.
	Bindings []string `yaml:"bindings" toml:"bindings"`
}

// Config holds everything a conversion run needs.  The zero value is not
// usable; start from DefaultConfig or LoadConfig.
type Config struct {
	SourceRoot string `yaml:"sourceRoot" toml:"sourceRoot"`
	DestRoot   string `yaml:"destRoot" toml:"destRoot"`

	DefaultTitle     string `yaml:"defaultTitle" toml:"defaultTitle"`
	TitlePlaceholder string `yaml:"titlePlaceholder" toml:"titlePlaceholder"`

	// TitleBinding is the header's text directive for the page title.
	TitleBinding string `yaml:"titleBinding" toml:"titleBinding"`

	Header FragmentSpec `yaml:"header" toml:"header"`
	Footer FragmentSpec `yaml:"footer" toml:"footer"`

	Assets     []AssetRule `yaml:"assets" toml:"assets"`
	Directives []string    `yaml:"directives" toml:"directives"`

	Pages []PageEntry `yaml:"pages" toml:"pages"`

	// Markdown rendered at the top of the generated index page.
	// For .md manifests this is the document body.
	Intro string `yaml:"intro" toml:"intro"`
}

const (
	sessionUsername  = `th:text="${session.username} ?: '관리자'"`
	sessionLoginTime = `th:text="${session.loginTime} ?: '--:--:--'"`
)

// DefaultConfig returns the dialect settings of the admin console templates
// with an empty manifest.
func DefaultConfig() *Config {
	takesTitle := true
	return &Config{
		DefaultTitle:     DefaultTitle,
		TitlePlaceholder: DefaultTitlePlaceholder,
		TitleBinding:     `th:text="${menuTitle}"`,
		Header: FragmentSpec{
			Name:       "header",
			File:       "fragments/header.html",
			Signature:  "header(menuTitle)",
			Template:   "fragments/header",
			TakesTitle: &takesTitle,
			Comment:    "Header",
			Bindings:   []string{sessionUsername},
		},
		Footer: FragmentSpec{
			Name:      "footer",
			File:      "fragments/footer.html",
			Signature: "footer",
			Template:  "fragments/footer",
			Comment:   "Footer",
			Bindings:  []string{sessionUsername, sessionLoginTime},
		},
		Assets:     DefaultAssetRules(),
		Directives: DefaultDirectives(),
	}
}

// LoadConfig reads a manifest and fills anything it leaves out from
// DefaultConfig.  The format follows the extension: .yaml/.yml, .toml, or
// .md where the settings live in front matter and the body becomes Intro.
func LoadConfig(path string) (*Config, error) {
	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".md", ".markdown":
		var rest []byte
		rest, err = frontmatter.Parse(strings.NewReader(string(data)), cfg)
		if err == nil && strings.TrimSpace(cfg.Intro) == "" {
			cfg.Intro = string(rest)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Relative roots are resolved against the manifest's folder
	base := filepath.Dir(path)
	cfg.SourceRoot = resolveRoot(base, cfg.SourceRoot)
	cfg.DestRoot = resolveRoot(base, cfg.DestRoot)
	return cfg.withDefaults(), nil
}

func resolveRoot(base, root string) string {
	if root == "" {
		return ""
	}
	root = expandHome(root)
	if !filepath.IsAbs(root) {
		root = filepath.Join(base, root)
	}
	return filepath.Clean(root)
}

// expandHome only expands a leading "~".  ExpandUserPath also makes the
// path absolute against the working directory, which relative roots must
// not be.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		return gut.ExpandUserPath(path)
	}
	return path
}

func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c.DefaultTitle == "" {
		c.DefaultTitle = d.DefaultTitle
	}
	if c.TitlePlaceholder == "" {
		c.TitlePlaceholder = d.TitlePlaceholder
	}
	if c.TitleBinding == "" {
		c.TitleBinding = d.TitleBinding
	}
	c.Header = c.Header.withDefaults(d.Header)
	c.Footer = c.Footer.withDefaults(d.Footer)
	if len(c.Assets) == 0 {
		c.Assets = d.Assets
	}
	if len(c.Directives) == 0 {
		c.Directives = d.Directives
	}
	return c
}

func (f FragmentSpec) withDefaults(d FragmentSpec) FragmentSpec {
	if f.Name == "" {
		f.Name = d.Name
	}
	if f.File == "" {
		f.File = d.File
	}
	if f.Signature == "" {
		f.Signature = d.Signature
	}
	if f.Template == "" {
		f.Template = d.Template
	}
	if f.Comment == "" {
		f.Comment = d.Comment
	}
	if f.Bindings == nil {
		f.Bindings = d.Bindings
	}
	if f.TakesTitle == nil && f.Name == d.Name {
		f.TakesTitle = d.TakesTitle
	}
	return f
}

// Titled tells if pages include the fragment with a title argument.
func (f FragmentSpec) Titled() bool {
	return f.TakesTitle != nil && *f.TakesTitle
}

// Set overrides a single string field, addressed by its Go field path,
// eg "DestRoot" or "Header.Comment".
func (c *Config) Set(fieldpath, value string) error {
	if strings.HasSuffix(fieldpath, "Root") {
		value = gut.ExpandUserPath(value)
	}
	if err := xreflect.SetEmbedField(c, fieldpath, value); err != nil {
		return fmt.Errorf("setting %s: %w", fieldpath, err)
	}
	return nil
}

// ApplyOverrides applies "Field=value" assignments in order.
func (c *Config) ApplyOverrides(assignments []string) error {
	for _, a := range assignments {
		key, value, found := strings.Cut(a, "=")
		if !found || strings.TrimSpace(key) == "" {
			return fmt.Errorf("invalid override %q, expected Field=value", a)
		}
		if err := c.Set(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the settings a run cannot do without.
func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return fmt.Errorf("sourceRoot is required")
	}
	if c.DestRoot == "" {
		return fmt.Errorf("destRoot is required")
	}
	for i, p := range c.Pages {
		if p.Source == "" {
			return fmt.Errorf("pages[%d]: source is required", i)
		}
		if filepath.IsAbs(p.Dest) || outsideRoot(filepath.Clean(p.Dest)) {
			return fmt.Errorf("pages[%d]: dest %q must stay inside destRoot", i, p.Dest)
		}
	}
	return nil
}

