package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"VidTube.com/pkg/oss"
)

// Media is an oss.MediaStore keeping objects in a map.
type Media struct {
	mu        sync.Mutex
	seq       int
	objects   map[string]oss.Kind
	failPaths map[string]bool
	deleteErr error
	uploads   []string
	deletes   []string
	// Duration is reported for video uploads when set.
	Duration *float64
}

var _ oss.MediaStore = (*Media)(nil)

func NewMedia() *Media {
	return &Media{objects: map[string]oss.Kind{}, failPaths: map[string]bool{}}
}

// FailUpload makes uploads of files named base fail.
func (m *Media) FailUpload(base string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPaths[base] = true
}

func (m *Media) FailDelete(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
}

// Put seeds a stored object and returns its url.
func (m *Media) Put(kind oss.Kind, ext string) (url, contentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.put(kind, ext)
}

func (m *Media) put(kind oss.Kind, ext string) (string, string) {
	m.seq++
	contentID := fmt.Sprintf("vidtube/obj%d", m.seq)
	m.objects[contentID] = kind
	return fmt.Sprintf("http://media.test/%s/upload/v1712000000/%s%s", kind, contentID, ext), contentID
}

func (m *Media) Upload(_ context.Context, localPath string) (*oss.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, localPath)
	defer os.Remove(localPath)
	if localPath == "" || m.failPaths[filepath.Base(localPath)] {
		return nil, &oss.UploadError{Path: localPath, Reason: errors.New("remote rejected upload")}
	}
	kind := oss.KindOf(localPath)
	url, contentID := m.put(kind, strings.ToLower(filepath.Ext(localPath)))
	asset := &oss.Asset{URL: url, ContentID: contentID, Kind: kind}
	if kind == oss.KindVideo && m.Duration != nil {
		d := *m.Duration
		asset.Duration = &d
	}
	return asset, nil
}

func (m *Media) Delete(_ context.Context, contentID string, kind oss.Kind) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, string(kind)+":"+contentID)
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if k, ok := m.objects[contentID]; ok && k == kind {
		delete(m.objects, contentID)
		return 1, nil
	}
	return 0, nil
}

// Has reports whether an object is stored under contentID.
func (m *Media) Has(contentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[contentID]
	return ok
}

func (m *Media) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *Media) Uploads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.uploads...)
}

func (m *Media) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletes...)
}

// TempFile writes a small file named name under dir.
func TempFile(dir, name string) (string, error) {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("payload"), 0o644); err != nil {
		return "", err
	}
	return p, nil
}
