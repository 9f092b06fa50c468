package staticize

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	// When a resource is first encountered it is in pending state to indicate it needs to be loaded
	ResourceStatePending = iota

	// Marked when a resource has been read without any errors.
	ResourceStateLoaded

	// To indicate that a resource is not found
	ResourceStateNotFound

	// Reading the resource failed (the cause will be in the error field)
	ResourceStateFailed
)

// Every file the converter touches, templates, fragments and outputs alike,
// is a Resource identified by its full path.
type Resource struct {
	// Fullpath of the Resource uniquely identifying it
	FullPath string

	// Updated time stamp on disk
	UpdatedAt time.Time

	// The ResourceState - Pending, Loaded, NotFound, Failed
	State int

	// Any errors with this resource (eg during load)
	Error error

	// os level Info about the resource
	info os.FileInfo
}

func NewResource(fullpath string) *Resource {
	return &Resource{FullPath: filepath.Clean(fullpath)}
}

// Get the resource's os level FileInfo.  Returns nil if the file cannot be stat'ed.
func (r *Resource) Info() os.FileInfo {
	if r.info == nil {
		r.info, r.Error = os.Stat(r.FullPath)
		if r.Error != nil {
			if errors.Is(r.Error, fs.ErrNotExist) {
				r.State = ResourceStateNotFound
			} else {
				r.State = ResourceStateFailed
			}
			return nil
		}
		r.UpdatedAt = r.info.ModTime()
	}
	return r.info
}

// Exists tells if the resource is a regular file on disk.
func (r *Resource) Exists() bool {
	info := r.Info()
	return info != nil && !info.IsDir()
}

// Read all the bytes in this file.
func (r *Resource) ReadAll() ([]byte, error) {
	reader, err := r.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		r.Error = err
		r.State = ResourceStateFailed
		return nil, err
	}
	r.State = ResourceStateLoaded
	return data, nil
}

// Returns a reader for the resource's content.
func (r *Resource) Reader() (io.ReadCloser, error) {
	fi, err := os.Open(r.FullPath)
	if err != nil {
		r.Error = err
		if errors.Is(err, fs.ErrNotExist) {
			r.State = ResourceStateNotFound
		} else {
			r.State = ResourceStateFailed
		}
		return nil, err
	}
	return fi, nil
}

// Ensures that a resource's parent directory exists
func (r *Resource) EnsureDir() error {
	dirname := filepath.Dir(r.FullPath)
	if err := os.MkdirAll(dirname, 0755); err != nil {
		log.Println("Error creating dir: ", dirname, err)
		return err
	}
	return nil
}

// Returns the path relative to root, or "" if the resource is not under it
func (r *Resource) RelPath(root string) string {
	rel, err := filepath.Rel(filepath.Clean(root), r.FullPath)
	if err != nil || outsideRoot(rel) {
		return ""
	}
	return filepath.ToSlash(rel)
}
