package oss

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

func (k Kind) Valid() bool { return k == KindImage || k == KindVideo }

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true, ".m4v": true, ".flv": true,
}

// KindOf picks the resource kind of a local file from its extension.
func KindOf(localPath string) Kind {
	if videoExts[strings.ToLower(filepath.Ext(localPath))] {
		return KindVideo
	}
	return KindImage
}

// Asset is the stable reference of an uploaded object.
type Asset struct {
	URL       string
	ContentID string
	Kind      Kind
	Duration  *float64 // seconds, set for videos when the probe succeeded
}

// UploadError is the only failure Upload returns.
type UploadError struct {
	Path   string
	Reason error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", filepath.Base(e.Path), e.Reason)
}

func (e *UploadError) Unwrap() error { return e.Reason }

// MediaStore is the remote object storage the media lifecycle talks to.
type MediaStore interface {
	// Upload sends the local file and removes it afterwards, whatever the outcome.
	Upload(ctx context.Context, localPath string) (*Asset, error)
	// Delete removes every object stored under contentID and reports how many went.
	Delete(ctx context.Context, contentID string, kind Kind) (int, error)
}

// objectAPI is the part of *minio.Client the store uses.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

type StoreOptions struct {
	VideoBucket   string
	ImageBucket   string
	Folder        string
	Region        string
	PublicBaseURL string // e.g. http://localhost:8888/api/v1/media
	Probe         DurationProber
	Now           func() time.Time
}

type MinioStore struct {
	client  objectAPI
	opts    StoreOptions
	mu      sync.Mutex
	ensured map[string]bool
}

var _ MediaStore = (*MinioStore)(nil)

func NewMinioStore(client objectAPI, opts StoreOptions) *MinioStore {
	if opts.VideoBucket == "" {
		opts.VideoBucket = "video"
	}
	if opts.ImageBucket == "" {
		opts.ImageBucket = "picture"
	}
	if opts.Region == "" {
		opts.Region = "us-east-1" // MinIO默认区域
	}
	if opts.Probe == nil {
		opts.Probe = FFProbeDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Folder = strings.Trim(opts.Folder, "/")
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &MinioStore{client: client, opts: opts, ensured: make(map[string]bool)}
}

func (s *MinioStore) bucket(kind Kind) string {
	if kind == KindVideo {
		return s.opts.VideoBucket
	}
	return s.opts.ImageBucket
}

// ensureBucket 检查存储桶是否存在，不存在则创建
func (s *MinioStore) ensureBucket(ctx context.Context, bucketName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured[bucketName] {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		if err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: s.opts.Region}); err != nil {
			return fmt.Errorf("create bucket error: %w", err)
		}
		hlog.Infof("Created bucket: %s", bucketName)
	}
	s.ensured[bucketName] = true
	return nil
}

func (s *MinioStore) contentID() string {
	id := uuid.NewString()
	if s.opts.Folder == "" {
		return id
	}
	return s.opts.Folder + "/" + id
}

func (s *MinioStore) publicURL(kind Kind, objectName string) string {
	return fmt.Sprintf("%s/%s/%s/v%d/%s", s.opts.PublicBaseURL, kind, uploadMarker, s.opts.Now().Unix(), objectName)
}

func (s *MinioStore) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, &UploadError{Path: localPath, Reason: errors.New("no local file")}
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s: %v", localPath, err)
		}
	}()

	if _, err := os.Stat(localPath); err != nil {
		return nil, &UploadError{Path: localPath, Reason: err}
	}
	kind := KindOf(localPath)
	bucketName := s.bucket(kind)
	if err := s.ensureBucket(ctx, bucketName); err != nil {
		return nil, &UploadError{Path: localPath, Reason: err}
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	contentID := s.contentID()
	objectName := contentID + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.client.FPutObject(ctx, bucketName, objectName, localPath, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		hlog.CtxErrorf(ctx, "put object %s/%s: %v", bucketName, objectName, err)
		return nil, &UploadError{Path: localPath, Reason: err}
	}

	asset := &Asset{
		URL:       s.publicURL(kind, objectName),
		ContentID: contentID,
		Kind:      kind,
	}
	if kind == KindVideo {
		if d, err := s.opts.Probe(localPath); err != nil {
			hlog.CtxWarnf(ctx, "probe duration of %s: %v", objectName, err)
		} else {
			asset.Duration = &d
		}
	}
	return asset, nil
}

func (s *MinioStore) Delete(ctx context.Context, contentID string, kind Kind) (int, error) {
	if contentID == "" {
		return 0, errors.New("empty content id")
	}
	if !kind.Valid() {
		return 0, errors.Errorf("unknown resource kind %q", kind)
	}
	bucketName := s.bucket(kind)
	removed := 0
	for obj := range s.client.ListObjects(ctx, bucketName, minio.ListObjectsOptions{Prefix: contentID + ".", Recursive: true}) {
		if obj.Err != nil {
			return removed, errors.Wrapf(obj.Err, "list %s/%s", bucketName, contentID)
		}
		if err := s.client.RemoveObject(ctx, bucketName, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, errors.Wrapf(err, "remove %s/%s", bucketName, obj.Key)
		}
		removed++
	}
	return removed, nil
}

// ErrObjectNotFound is returned by Open when the key holds nothing.
var ErrObjectNotFound = errors.New("object not found")

// Open streams a stored object back. objectName is the key below the kind's bucket.
func (s *MinioStore) Open(ctx context.Context, kind Kind, objectName string) (io.ReadCloser, minio.ObjectInfo, error) {
	if !kind.Valid() {
		return nil, minio.ObjectInfo{}, errors.Errorf("unknown resource kind %q", kind)
	}
	obj, err := s.client.GetObject(ctx, s.bucket(kind), objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, errors.Wrapf(err, "get %s", objectName)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, minio.ObjectInfo{}, ErrObjectNotFound
		}
		return nil, minio.ObjectInfo{}, errors.Wrapf(err, "stat %s", objectName)
	}
	return obj, info, nil
}
