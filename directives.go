package staticize

import (
	"fmt"
	"regexp"
)

// DefaultDirectives are the attributes removed from converted pages.
// th:each is dropped without repeating its element, so every list renders
// exactly one sample row.
func DefaultDirectives() []string {
	return []string{"xmlns:th", "th:attr", "th:text", "th:each", "th:if", "th:id"}
}

// Stripper removes templating attributes together with their leading
// whitespace and keeps the host elements intact.
type Stripper struct {
	patterns []*regexp.Regexp
}

// NewStripper builds a Stripper for the given attribute names.
func NewStripper(attrs []string) *Stripper {
	s := &Stripper{}
	for _, attr := range attrs {
		s.patterns = append(s.patterns,
			regexp.MustCompile(fmt.Sprintf(`\s*%s="[^"]*"`, regexp.QuoteMeta(attr))))
	}
	return s
}

// Strip removes every configured attribute.  Removing one attribute can
// splice the text around it into a new match, so passes repeat until the
// text stops changing.
func (s *Stripper) Strip(text string) string {
	for {
		out := text
		for _, re := range s.patterns {
			out = re.ReplaceAllLiteralString(out, "")
		}
		if out == text {
			return out
		}
		text = out
	}
}

var defaultStripper = NewStripper(DefaultDirectives())

// StripDirectives removes the default directive set from text.
func StripDirectives(text string) string {
	return defaultStripper.Strip(text)
}
