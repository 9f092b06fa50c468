package staticize

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
)

// FragmentStore loads fragment bodies from their defining files and caches
// them for the rest of the run.  Fragment files are never written during a
// run, so a cached body is always what a fresh read would return.
type FragmentStore struct {
	// Root of the template tree FragmentSpec.File is relative to
	Root string

	specs map[string]FragmentSpec
	cache map[string]fragmentEntry
}

type fragmentEntry struct {
	body string
	err  error
}

// NewFragmentStore creates a store for the given fragments.
func NewFragmentStore(root string, specs ...FragmentSpec) *FragmentStore {
	s := &FragmentStore{Root: root, specs: map[string]FragmentSpec{}}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
	}
	s.Reset()
	return s
}

// Reset drops all cached bodies so the next Load re-reads the files.
func (s *FragmentStore) Reset() {
	s.cache = map[string]fragmentEntry{}
}

// Path returns the full path of a fragment's defining file.
func (s *FragmentStore) Path(name string) string {
	spec, ok := s.specs[name]
	if !ok {
		return ""
	}
	return filepath.Join(s.Root, filepath.FromSlash(spec.File))
}

// Load returns the inner text of the named fragment.  When the file does
// not contain the fragment's container the body is "" and the error is an
// *AnchorNotFoundError, which callers may treat as a warning.
func (s *FragmentStore) Load(name string) (string, error) {
	if e, ok := s.cache[name]; ok {
		return e.body, e.err
	}
	spec, ok := s.specs[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFragment, name)
	}

	res := NewResource(s.Path(name))
	data, err := res.ReadAll()
	if err != nil {
		// read failures are not cached, the file may show up later in watch mode
		return "", fmt.Errorf("reading fragment %q: %w", name, err)
	}

	body, found := ExtractFragment(string(data), spec.Signature)
	e := fragmentEntry{body: body}
	if !found {
		e.err = &AnchorNotFoundError{Fragment: name, Path: res.FullPath}
		slog.Warn("fragment anchor not found", "fragment", name, "path", res.FullPath)
	}
	s.cache[name] = e
	return e.body, e.err
}

// ExtractFragment finds <div th:fragment="signature"> and returns the
// trimmed text up to the </div> that directly precedes </body>.  Anything
// between the container's children and that boundary, such as trailing
// scripts, is part of the body.
func ExtractFragment(content, signature string) (string, bool) {
	m := fragmentPattern(signature).FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func fragmentPattern(signature string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)<div th:fragment="` + regexp.QuoteMeta(signature) +
		`">\s*(.*?)\s*</div>\s*</body>`)
}
