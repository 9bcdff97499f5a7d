package oss

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// ClientOptions are the connection settings of the minio deployment.
type ClientOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// NewMinioClient builds the client. No request is sent until the first upload.
func NewMinioClient(opts ClientOptions) (*minio.Client, error) {
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", opts.Endpoint, opts.AccessKey)

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}
	hlog.Info("Connect Minio Success")
	return client, nil
}
