package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Uploads saves multipart files of one request into a temp dir and removes
// whatever is still there when Cleanup runs.
type Uploads struct {
	dir   string
	paths []string
}

func NewUploads(dir string) *Uploads {
	return &Uploads{dir: dir}
}

// Save stores the file sent under field. A missing field yields an empty path.
func (u *Uploads) Save(c *app.RequestContext, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	if err = os.MkdirAll(u.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create temp dir %s", u.dir)
	}
	dst := filepath.Join(u.dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err = c.SaveUploadedFile(fh, dst); err != nil {
		return "", errors.Wrapf(err, "save %s", field)
	}
	u.paths = append(u.paths, dst)
	return dst, nil
}

func (u *Uploads) Cleanup() {
	for _, p := range u.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			hlog.Warnf("remove temp file %s: %v", p, err)
		}
	}
	u.paths = nil
}
