package handlers

import (
	"context"
	"io"
	"net/http"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ObjectOpener reads stored objects back, see oss.MinioStore.Open.
type ObjectOpener interface {
	Open(ctx context.Context, kind oss.Kind, objectName string) (io.ReadCloser, minio.ObjectInfo, error)
}

// Handler resolves the media URLs the store hands out: /media/<kind>/upload/v<ts>/<key>
type Handler struct {
	store ObjectOpener
}

func New(store ObjectOpener) *Handler {
	return &Handler{store: store}
}

var errMediaNotFound = errno.NotFoundErr.WithMessage("Media not found")

func (h *Handler) Serve(ctx context.Context, c *app.RequestContext) {
	kind := oss.Kind(c.Param("kind"))
	name, ok := oss.SplitObjectPath(c.Param("path"))
	if !kind.Valid() || !ok {
		common.SendResponse(c, errMediaNotFound, nil)
		return
	}
	body, info, err := h.store.Open(ctx, kind, name)
	if err != nil {
		if errors.Is(err, oss.ErrObjectNotFound) {
			common.SendResponse(c, errMediaNotFound, nil)
			return
		}
		hlog.CtxErrorf(ctx, "open %s/%s: %+v", kind, name, err)
		common.SendResponse(c, errno.InternalErr, nil)
		return
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.SetStatusCode(http.StatusOK)
	c.SetContentType(contentType)
	if info.ETag != "" {
		c.Header("ETag", `"`+info.ETag+`"`)
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.SetBodyStream(body, int(info.Size))
}
