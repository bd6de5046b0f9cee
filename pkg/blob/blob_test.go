package blob

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/vango-dev/uploadkit/pkg/upload"
)

func TestCreateResolveRevoke(t *testing.T) {
	r := NewRegistry("")
	f := upload.NewFile("a.png", "image/png", []byte("img"))

	url := r.Create(f)
	if !strings.HasPrefix(url, "blob:null/") {
		t.Fatalf("url = %q", url)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(url, "blob:null/")); err != nil {
		t.Errorf("url id is not a uuid: %v", err)
	}
	if got, ok := r.Resolve(url); !ok || got != f {
		t.Errorf("Resolve() = %v, %v", got, ok)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	if !r.Revoke(url) {
		t.Error("Revoke() = false for live url")
	}
	if r.Revoke(url) {
		t.Error("second Revoke() = true")
	}
	if _, ok := r.Resolve(url); ok {
		t.Error("revoked url still resolves")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestCreateUnique(t *testing.T) {
	r := NewRegistry("http://localhost:8080/")
	f := upload.NewFile("a.png", "image/png", nil)
	a, b := r.Create(f), r.Create(f)
	if a == b {
		t.Errorf("duplicate url %q", a)
	}
	if !strings.HasPrefix(a, "blob:http://localhost:8080/") {
		t.Errorf("url = %q", a)
	}
}

func TestDataURI(t *testing.T) {
	r := NewRegistry("")
	url := r.Create(upload.NewFile("a.txt", "text/plain", []byte("hi")))

	got, ok := r.DataURI(url)
	if !ok {
		t.Fatal("DataURI() not ok")
	}
	if got != "data:text/plain;base64,aGk=" {
		t.Errorf("DataURI() = %q", got)
	}

	if _, ok := r.DataURI("blob:null/missing"); ok {
		t.Error("DataURI() ok for unknown url")
	}
}

func TestLoadUnreadable(t *testing.T) {
	r := NewRegistry("")
	url := r.Create(&upload.File{Filename: "gone.png", ContentType: "image/png"})
	if _, _, ok := r.Load(url); ok {
		t.Error("Load() ok for file without content")
	}
}

func TestConcurrentUse(t *testing.T) {
	r := NewRegistry("")
	f := upload.NewFile("a.png", "image/png", []byte("x"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url := r.Create(f)
			r.Load(url)
			r.Revoke(url)
		}()
	}
	wg.Wait()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
