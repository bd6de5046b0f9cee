// Package blob keeps in-memory object URLs for selected files.
//
// An object URL has the form blob:<origin>/<uuid> and stays resolvable until
// it is revoked. Preview images use them as their src so that rendering can
// later materialise the content.
package blob

import (
	"encoding/base64"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vango-dev/uploadkit/pkg/upload"
)

// Scheme is the URL scheme of object URLs.
const Scheme = "blob:"

// DefaultOrigin is used when the registry has no origin.
const DefaultOrigin = "null"

// Registry maps object URLs to files. It is safe for concurrent use.
type Registry struct {
	origin string

	mu      sync.RWMutex
	entries map[string]*upload.File
}

// NewRegistry creates a registry minting URLs under origin.
func NewRegistry(origin string) *Registry {
	if origin == "" {
		origin = DefaultOrigin
	}
	return &Registry{
		origin:  strings.TrimSuffix(origin, "/"),
		entries: make(map[string]*upload.File),
	}
}

// Create returns a new object URL for f.
func (r *Registry) Create(f *upload.File) string {
	url := Scheme + r.origin + "/" + uuid.NewString()

	r.mu.Lock()
	r.entries[url] = f
	r.mu.Unlock()
	return url
}

// Resolve returns the file behind url.
func (r *Registry) Resolve(url string) (*upload.File, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.entries[url]
	return f, ok
}

// Revoke releases url. It reports whether url was live.
func (r *Registry) Revoke(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[url]; !ok {
		return false
	}
	delete(r.entries, url)
	return true
}

// Len returns the number of live URLs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Load reads the content behind src.
func (r *Registry) Load(src string) ([]byte, string, bool) {
	f, ok := r.Resolve(src)
	if !ok {
		return nil, "", false
	}
	data, err := f.Bytes()
	if err != nil {
		return nil, "", false
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = upload.DefaultContentType
	}
	return data, contentType, true
}

// DataURI returns the content behind url as a base64 data URI.
func (r *Registry) DataURI(url string) (string, bool) {
	data, contentType, ok := r.Load(url)
	if !ok {
		return "", false
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), true
}
