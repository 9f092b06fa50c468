package staticize

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Leftover is a templating attribute found in converted output.
type Leftover struct {
	Element string
	Attr    string
	Value   string
}

func (l Leftover) String() string {
	return fmt.Sprintf("<%s %s=%q>", l.Element, l.Attr, l.Value)
}

// FindLeftovers parses converted markup and lists every attribute still in
// the th namespace, eg th:href values that did not match an asset rule.
func FindLeftovers(r io.Reader) ([]Leftover, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing output: %w", err)
	}

	var found []Leftover
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if isDirectiveAttr(a) {
					found = append(found, Leftover{Element: n.Data, Attr: attrName(a), Value: a.Val})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found, nil
}

func attrName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

func isDirectiveAttr(a html.Attribute) bool {
	name := attrName(a)
	return strings.HasPrefix(name, "th:") || name == "xmlns:th"
}
