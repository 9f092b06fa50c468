package staticize

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	mdhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/anchor"
)

// IndexFile is the name of the generated page listing.
const IndexFile = "index.html"

// IndexMarkdown builds the Markdown source of the index page: the
// configured intro followed by a link per converted page and the manifest
// entries that did not make it.
func IndexMarkdown(cfg *Config, report *Report) string {
	var b strings.Builder
	if intro := strings.TrimSpace(cfg.Intro); intro != "" {
		b.WriteString(intro)
		b.WriteString("\n\n")
	} else {
		b.WriteString("# Static pages\n\n")
	}

	b.WriteString("## Pages\n\n")
	for _, res := range report.Results {
		if !res.Converted() {
			continue
		}
		fmt.Fprintf(&b, "- [%s](%s) `%s`\n", escapeMarkdown(res.Title), linkTarget(res.Entry.Dest), res.Entry.Source)
	}

	if failures := report.Failures(); len(failures) > 0 {
		b.WriteString("\n## Not converted\n\n```text\n")
		for _, res := range failures {
			fmt.Fprintf(&b, "%s: %v\n", res.Entry.Source, res.Err)
		}
		b.WriteString("```\n")
	}

	fmt.Fprintf(&b, "\n## Manifest\n\n```yaml\npages:\n")
	for _, p := range cfg.Pages {
		dest := p.Dest
		if dest == "" {
			dest = p.Source
		}
		fmt.Fprintf(&b, "  - source: %s\n    dest: %s\n", p.Source, dest)
	}
	b.WriteString("```\n")
	return b.String()
}

// linkTarget percent-encodes a page path so spaces and parentheses cannot
// end the Markdown link early.
func linkTarget(dest string) string {
	u := url.URL{Path: filepath.ToSlash(dest)}
	return u.EscapedPath()
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
			&anchor.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			mdhtml.WithXHTML(),
		),
	)
}

// RenderIndex renders the index page as a complete HTML document.
func RenderIndex(cfg *Config, report *Report) ([]byte, error) {
	var body bytes.Buffer
	if err := newMarkdown().Convert([]byte(IndexMarkdown(cfg, report)), &body); err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(cfg.DefaultTitle))
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// WriteIndex renders the index page into the destination root.
func WriteIndex(cfg *Config, report *Report) (string, error) {
	data, err := RenderIndex(cfg, report)
	if err != nil {
		return "", err
	}
	dest := NewResource(filepath.Join(cfg.DestRoot, IndexFile))
	if err := dest.EnsureDir(); err != nil {
		return "", err
	}
	if err := atomic.WriteFile(dest.FullPath, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest.FullPath, err)
	}
	return dest.FullPath, nil
}
