package staticize

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSourceNotFound is returned for manifest entries whose source template does not exist.
	ErrSourceNotFound = errors.New("source template not found")

	// ErrUnknownFragment is returned when a fragment name has no FragmentSpec.
	ErrUnknownFragment = errors.New("unknown fragment")
)

// AnchorNotFoundError reports a fragment file whose th:fragment container
// could not be located.  It is a warning: the fragment body degrades to the
// empty string and conversion goes on.
type AnchorNotFoundError struct {
	Fragment string
	Path     string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("fragment %q: anchor not found in %s", e.Fragment, e.Path)
}

// PageError ties a conversion failure to the manifest entry it came from.
type PageError struct {
	Source string
	Dest   string
	Err    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("%s -> %s: %v", e.Source, e.Dest, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// IsWarning tells whether err only degrades output instead of failing a page.
func IsWarning(err error) bool {
	var anchorErr *AnchorNotFoundError
	return errors.As(err, &anchorErr)
}

func panicOrError(err error) error {
	if err != nil {
		if os.Getenv("PANIC_ON_ALL_ERRORS") == "true" || os.Getenv("PANIC_ON_STATICIZE_ERRORS") == "true" {
			panic(err)
		}
	}
	return err
}
