package oss

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

type fakeObjects struct {
	buckets   map[string]bool
	objects   map[string]map[string]bool
	putErr    error
	bucketErr error
	removeErr error
	made      []string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{buckets: map[string]bool{}, objects: map[string]map[string]bool{}}
}

func (f *fakeObjects) BucketExists(_ context.Context, b string) (bool, error) {
	if f.bucketErr != nil {
		return false, f.bucketErr
	}
	return f.buckets[b], nil
}

func (f *fakeObjects) MakeBucket(_ context.Context, b string, _ minio.MakeBucketOptions) error {
	f.buckets[b] = true
	f.made = append(f.made, b)
	return nil
}

func (f *fakeObjects) FPutObject(_ context.Context, b, name, path string, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	if _, err := os.Stat(path); err != nil {
		return minio.UploadInfo{}, err
	}
	if f.objects[b] == nil {
		f.objects[b] = map[string]bool{}
	}
	f.objects[b][name] = true
	return minio.UploadInfo{Bucket: b, Key: name}, nil
}

func (f *fakeObjects) ListObjects(_ context.Context, b string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(f.objects[b]))
	for k := range f.objects[b] {
		if strings.HasPrefix(k, opts.Prefix) {
			ch <- minio.ObjectInfo{Key: k}
		}
	}
	close(ch)
	return ch
}

func (f *fakeObjects) RemoveObject(_ context.Context, b, name string, _ minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects[b], name)
	return nil
}

func (f *fakeObjects) GetObject(context.Context, string, string, minio.GetObjectOptions) (*minio.Object, error) {
	return nil, errors.New("not supported")
}

func tempFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func newTestStore(f *fakeObjects, probe DurationProber) *MinioStore {
	return NewMinioStore(f, StoreOptions{
		VideoBucket:   "videos",
		ImageBucket:   "images",
		Folder:        "vidtube",
		PublicBaseURL: "http://localhost:8888/api/v1/media/",
		Probe:         probe,
		Now:           func() time.Time { return time.Unix(1712000000, 0) },
	})
}

func TestUploadVideo(t *testing.T) {
	f := newFakeObjects()
	s := newTestStore(f, func(string) (float64, error) { return 12.6, nil })
	p := tempFile(t, "clip.MP4")

	asset, err := s.Upload(context.Background(), p)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if asset.Kind != KindVideo {
		t.Fatalf("kind = %s", asset.Kind)
	}
	if asset.Duration == nil || *asset.Duration != 12.6 {
		t.Fatalf("duration = %v", asset.Duration)
	}
	if !strings.HasPrefix(asset.ContentID, "vidtube/") {
		t.Fatalf("content id %q not in folder", asset.ContentID)
	}
	wantURL := "http://localhost:8888/api/v1/media/video/upload/v1712000000/" + asset.ContentID + ".mp4"
	if asset.URL != wantURL {
		t.Fatalf("url = %q, want %q", asset.URL, wantURL)
	}
	if id, ok := ExtractContentID(asset.URL); !ok || id != asset.ContentID {
		t.Fatalf("ExtractContentID(url) = %q, %v; want %q", id, ok, asset.ContentID)
	}
	if !f.objects["videos"][asset.ContentID+".mp4"] {
		t.Fatalf("object not stored: %v", f.objects)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("temp file not removed: %v", err)
	}
	if len(f.made) != 1 || f.made[0] != "videos" {
		t.Fatalf("buckets made = %v", f.made)
	}
}

func TestUploadImageSkipsProbe(t *testing.T) {
	f := newFakeObjects()
	probed := false
	s := newTestStore(f, func(string) (float64, error) { probed = true; return 1, nil })
	asset, err := s.Upload(context.Background(), tempFile(t, "thumb.png"))
	if err != nil {
		t.Fatal(err)
	}
	if asset.Kind != KindImage || asset.Duration != nil || probed {
		t.Fatalf("unexpected image asset %+v probed=%v", asset, probed)
	}
}

func TestUploadProbeFailureLeavesDurationUnset(t *testing.T) {
	s := newTestStore(newFakeObjects(), func(string) (float64, error) { return 0, errors.New("no ffprobe") })
	asset, err := s.Upload(context.Background(), tempFile(t, "clip.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	if asset.Duration != nil {
		t.Fatalf("duration = %v, want unset", *asset.Duration)
	}
}

func TestUploadFailureRemovesTempFile(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeObjects)
	}{
		{"put fails", func(f *fakeObjects) { f.putErr = errors.New("connection reset") }},
		{"bucket check fails", func(f *fakeObjects) { f.bucketErr = errors.New("access denied") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeObjects()
			tt.setup(f)
			s := newTestStore(f, nil)
			p := tempFile(t, "clip.mp4")
			asset, err := s.Upload(context.Background(), p)
			if asset != nil {
				t.Fatalf("asset returned on failure: %+v", asset)
			}
			var ue *UploadError
			if !errors.As(err, &ue) {
				t.Fatalf("err = %v, want *UploadError", err)
			}
			if _, statErr := os.Stat(p); !os.IsNotExist(statErr) {
				t.Fatalf("temp file not removed: %v", statErr)
			}
		})
	}
}

func TestUploadMissingFile(t *testing.T) {
	s := newTestStore(newFakeObjects(), nil)
	if _, err := s.Upload(context.Background(), filepath.Join(t.TempDir(), "gone.mp4")); err == nil {
		t.Fatal("expected failure for missing file")
	}
	if _, err := s.Upload(context.Background(), ""); err == nil {
		t.Fatal("expected failure for empty path")
	}
}

func TestDelete(t *testing.T) {
	f := newFakeObjects()
	s := newTestStore(f, nil)
	asset, err := s.Upload(context.Background(), tempFile(t, "thumb.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	n, err := s.Delete(context.Background(), asset.ContentID, KindImage)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	if len(f.objects["images"]) != 0 {
		t.Fatalf("object left behind: %v", f.objects["images"])
	}
	n, err = s.Delete(context.Background(), asset.ContentID, KindImage)
	if err != nil || n != 0 {
		t.Fatalf("second Delete = %d, %v", n, err)
	}
	if _, err := s.Delete(context.Background(), "", KindImage); err == nil {
		t.Fatal("empty content id accepted")
	}
	if _, err := s.Delete(context.Background(), "x", Kind("raw")); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestDeleteFailure(t *testing.T) {
	f := newFakeObjects()
	f.objects["videos"] = map[string]bool{"vidtube/a.mp4": true}
	f.removeErr = errors.New("timeout")
	s := newTestStore(f, nil)
	if _, err := s.Delete(context.Background(), "vidtube/a", KindVideo); err == nil {
		t.Fatal("expected remove failure")
	}
}

func TestKindOf(t *testing.T) {
	for p, want := range map[string]Kind{
		"a.mp4": KindVideo, "a.MOV": KindVideo, "a.webm": KindVideo,
		"a.jpg": KindImage, "a.png": KindImage, "noext": KindImage,
	} {
		if got := KindOf(p); got != want {
			t.Errorf("KindOf(%q) = %s, want %s", p, got, want)
		}
	}
}

func TestParseProbeDuration(t *testing.T) {
	d, err := parseProbeDuration(`{"format":{"duration":"30.480000"}}`)
	if err != nil || d != 30.48 {
		t.Fatalf("got %v, %v", d, err)
	}
	for _, bad := range []string{`{}`, `not json`, `{"format":{"duration":"N/A"}}`, `{"format":{"duration":"-1"}}`} {
		if _, err := parseProbeDuration(bad); err == nil {
			t.Errorf("parseProbeDuration(%s) accepted", bad)
		}
	}
}
