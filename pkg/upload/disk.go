package upload

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DiskPicker selects files from the local filesystem.
//
// Candidates are the explicit Paths when set, otherwise the regular files
// directly under Root, sorted by name.
type DiskPicker struct {
	// Root is the directory listed when Paths is empty.
	Root string

	// Paths are explicit file paths, kept in order.
	Paths []string

	// MaxSize rejects selected files larger than this many bytes (0 = no limit).
	MaxSize int64
}

// NewDiskPicker creates a DiskPicker over the given paths. A single
// directory argument is treated as Root.
func NewDiskPicker(maxSize int64, paths ...string) *DiskPicker {
	p := &DiskPicker{MaxSize: maxSize}
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			p.Root = paths[0]
			return p
		}
	}
	p.Paths = paths
	return p
}

// List returns the candidate files without filtering.
func (p *DiskPicker) List(ctx context.Context) ([]*File, error) {
	paths := p.Paths
	if len(paths) == 0 && p.Root != "" {
		entries, err := os.ReadDir(p.Root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				paths = append(paths, filepath.Join(p.Root, e.Name()))
			}
		}
		sort.Strings(paths)
	}

	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := diskFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Pick implements Picker.
func (p *DiskPicker) Pick(ctx context.Context, req PickRequest) ([]*File, error) {
	candidates, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	files, err := choose(candidates, req)
	if err != nil {
		return nil, err
	}
	if err := checkSize(files, p.MaxSize); err != nil {
		return nil, err
	}
	return files, nil
}

// MaxFileSize implements SizeLimiter.
func (p *DiskPicker) MaxFileSize() int64 {
	return p.MaxSize
}

func diskFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("upload: %s: %w", path, fs.ErrInvalid)
	}

	head, err := readHead(path)
	if err != nil {
		return nil, err
	}

	return &File{
		ID:          generateID(),
		Filename:    filepath.Base(path),
		ContentType: DetectContentType(path, head),
		Size:        info.Size(),
		Path:        path,
		open: func(context.Context) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// readHead returns up to 512 leading bytes for content sniffing.
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}
