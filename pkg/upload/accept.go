package upload

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// DefaultContentType is used when nothing better can be determined.
const DefaultContentType = "application/octet-stream"

// ParseAccept splits an accept attribute value into patterns.
func ParseAccept(accept string) []string {
	var patterns []string
	for _, p := range strings.Split(accept, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// Accepts reports whether f satisfies any of the accept patterns.
// Supported patterns are "*/*", "type/*", exact MIME types and ".ext"
// extensions, all case-insensitive. No patterns accepts everything.
func Accepts(patterns []string, f *File) bool {
	if len(patterns) == 0 {
		return true
	}
	ct := strings.ToLower(baseMediaType(f.ContentType))
	name := strings.ToLower(f.Filename)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		switch {
		case p == "*/*" || p == "*":
			return true
		case strings.HasPrefix(p, "."):
			if strings.HasSuffix(name, p) {
				return true
			}
		case strings.HasSuffix(p, "/*"):
			if strings.HasPrefix(ct, strings.TrimSuffix(p, "*")) {
				return true
			}
		case p == ct:
			return true
		}
	}
	return false
}

// DetectContentType resolves the MIME type of a file from its extension,
// falling back to sniffing head and then DefaultContentType.
func DetectContentType(name string, head []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return baseMediaType(t)
	}
	if len(head) > 0 {
		return baseMediaType(http.DetectContentType(head))
	}
	return DefaultContentType
}

// baseMediaType strips parameters such as "; charset=utf-8".
func baseMediaType(t string) string {
	if base, _, err := mime.ParseMediaType(t); err == nil {
		return base
	}
	return t
}
