package cs

import (
	"bytes"
	"context"
	"io"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

type Mock struct {
	MockAttrs func(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) (*storage.ObjectAttrs, error)

	mutex   sync.Mutex
	objects map[string]*bytes.Buffer
}

var _ interfaces.CloudStorage = &Mock{}

// Create keeps written data in memory, retrievable via Object.
func (x *Mock) Create(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) io.WriteCloser {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if x.objects == nil {
		x.objects = map[string]*bytes.Buffer{}
	}
	buf := &bytes.Buffer{}
	x.objects[string(types.NewCSUrl(bucket, object))] = buf
	return &nopWriteCloser{buf}
}

// Attrs answers from the in-memory objects unless MockAttrs is set.
func (x *Mock) Attrs(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) (*storage.ObjectAttrs, error) {
	if x.MockAttrs != nil {
		return x.MockAttrs(ctx, bucket, object)
	}

	x.mutex.Lock()
	defer x.mutex.Unlock()
	if buf, ok := x.objects[string(types.NewCSUrl(bucket, object))]; ok {
		return &storage.ObjectAttrs{
			Bucket: bucket.String(),
			Name:   object.String(),
			Size:   int64(buf.Len()),
		}, nil
	}
	return nil, storage.ErrObjectNotExist
}

// Object returns the content written for the gs:// URL, or nil.
func (x *Mock) Object(url types.CSUrl) []byte {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if buf, ok := x.objects[string(url)]; ok {
		return buf.Bytes()
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (x *nopWriteCloser) Close() error { return nil }
