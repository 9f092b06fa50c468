package staticize

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// AssetRule maps templated references of one asset folder, eg
// th:href="@{/css/app.css}", to a plain relative attribute.
type AssetRule struct {
	// Attr is the attribute name without the th: prefix (href or src).
	Attr string `yaml:"attr" toml:"attr"`

	// Folder is the first path segment under the server root (css, js, images).
	Folder string `yaml:"folder" toml:"folder"`
}

// DefaultAssetRules covers stylesheets, scripts and images.
func DefaultAssetRules() []AssetRule {
	return []AssetRule{
		{Attr: "href", Folder: "css"},
		{Attr: "src", Folder: "js"},
		{Attr: "src", Folder: "images"},
	}
}

func (r AssetRule) pattern() *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`th:%s="@\{/%s/([^}]+)\}"`,
		regexp.QuoteMeta(r.Attr), regexp.QuoteMeta(r.Folder)))
}

// RelPrefix returns the path from a page at the given depth back up to the
// folder holding the asset directories.  The output root itself sits one
// level below it, so a root page gets "../" and a page in a subfolder "../../".
func RelPrefix(depth int) string {
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat("../", depth+1)
}

// Depth is the number of directories between destRoot and the file at destPath.
func Depth(destPath, destRoot string) int {
	rel, err := filepath.Rel(filepath.Clean(destRoot), filepath.Clean(destPath))
	if err != nil || rel == "." || outsideRoot(rel) {
		return 0
	}
	dir := filepath.Dir(rel)
	if dir == "." {
		return 0
	}
	return len(strings.Split(filepath.ToSlash(dir), "/"))
}

// outsideRoot tells if a cleaned relative path climbs out of its root.
// Names that merely start with dots, like "..x", stay inside.
func outsideRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// RewritePaths turns matching th:href/th:src asset references into relative
// paths for a page at depth.  Anything not written with the @{...} syntax is
// left as is.
func RewritePaths(text string, depth int, rules []AssetRule) string {
	prefix := RelPrefix(depth)
	for _, rule := range rules {
		repl := fmt.Sprintf(`%s="%s%s/${1}"`, rule.Attr, escapeDollar(prefix), escapeDollar(rule.Folder))
		text = rule.pattern().ReplaceAllString(text, repl)
	}
	return text
}

var rootLinkRe = regexp.MustCompile(`href="/([^/])`)

// RewriteRootLinks prefixes server-absolute href values.  Protocol relative
// links (href="//host/...") are left alone.
func RewriteRootLinks(text, prefix string) string {
	return rootLinkRe.ReplaceAllString(text, `href="`+escapeDollar(prefix)+`${1}`)
}

func escapeDollar(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
