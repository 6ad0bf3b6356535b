package cs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

type Client struct {
	client *storage.Client
}

var _ interfaces.CloudStorage = &Client{}

func New(ctx context.Context) (*Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &Client{
		client: client,
	}, nil
}

// Create returns a writer for the object. Writing clobbers an existing
// object; errors are reported by Close.
func (x *Client) Create(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) io.WriteCloser {
	return x.client.
		Bucket(bucket.String()).
		Object(object.String()).
		NewWriter(ctx)
}

func (x *Client) Attrs(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) (*storage.ObjectAttrs, error) {
	attrs, err := x.client.
		Bucket(bucket.String()).
		Object(object.String()).
		Attrs(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get object attributes", goerr.V("bucket", bucket), goerr.V("object", object))
	}

	return attrs, nil
}
