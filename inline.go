package staticize

import (
	"regexp"
	"strings"
)

// Inliner replaces fragment inclusion markers in a page with the fragment
// bodies, after filling in what a server would have rendered into them.
type Inliner struct {
	Config *Config
	Store  *FragmentStore
}

func NewInliner(cfg *Config, store *FragmentStore) *Inliner {
	return &Inliner{Config: cfg, Store: store}
}

// MarkerPattern matches the inclusion element for a fragment, eg
// <div th:replace="~{fragments/header :: header('VOC')}"></div>.
// For fragments taking a title, group 1 is the title argument.
func MarkerPattern(spec FragmentSpec) *regexp.Regexp {
	ref := regexp.QuoteMeta(spec.Template) + ` :: ` + regexp.QuoteMeta(spec.Name)
	if spec.Titled() {
		ref += titleArg
	}
	return regexp.MustCompile(`<div th:replace="~\{` + ref + `\}"></div>`)
}

const titleArg = `\(['"]([^'"]+)['"]\)`

// TitlePattern matches the title argument of a fragment reference anywhere in a page.
func TitlePattern(spec FragmentSpec) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(spec.Template) + ` :: ` + regexp.QuoteMeta(spec.Name) + titleArg)
}

// InlineHeader fills the header fragment for a page at depth with the given
// title and substitutes it for the header marker.  Pages without a marker
// come back unchanged and the fragment is not read.  An *AnchorNotFoundError
// is returned together with the page when the fragment body degraded to empty.
func (in *Inliner) InlineHeader(page, title string, depth int) (string, error) {
	cfg := in.Config
	marker := MarkerPattern(cfg.Header)
	if !marker.MatchString(page) {
		return page, nil
	}
	body, err := in.Store.Load(cfg.Header.Name)
	if err != nil && !IsWarning(err) {
		return page, err
	}

	body = removeBinding(body, cfg.TitleBinding)
	if cfg.TitlePlaceholder != "" {
		body = strings.ReplaceAll(body, ">"+cfg.TitlePlaceholder+"<", ">"+title+"<")
	}
	for _, b := range cfg.Header.Bindings {
		body = removeBinding(body, b)
	}
	body = RewritePaths(body, depth, cfg.Assets)
	body = RewriteRootLinks(body, RelPrefix(depth))

	return replaceMarker(page, marker, cfg.Header.Comment, body), err
}

// InlineFooter substitutes the footer fragment for the footer marker.  The
// footer carries no asset references so no path rewriting happens here.
func (in *Inliner) InlineFooter(page string) (string, error) {
	cfg := in.Config
	marker := MarkerPattern(cfg.Footer)
	if !marker.MatchString(page) {
		return page, nil
	}
	body, err := in.Store.Load(cfg.Footer.Name)
	if err != nil && !IsWarning(err) {
		return page, err
	}
	for _, b := range cfg.Footer.Bindings {
		body = removeBinding(body, b)
	}
	return replaceMarker(page, marker, cfg.Footer.Comment, body), err
}

func replaceMarker(page string, marker *regexp.Regexp, comment, body string) string {
	return marker.ReplaceAllLiteralString(page, "    <!-- "+comment+" -->\n    "+body)
}

// removeBinding deletes a literal directive and the whitespace before it.
func removeBinding(body, binding string) string {
	if binding == "" {
		return body
	}
	re := regexp.MustCompile(`\s*` + regexp.QuoteMeta(binding))
	return re.ReplaceAllLiteralString(body, "")
}
