package feed

import (
	"context"

	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

type Mock struct {
	MockDownload func(ctx context.Context, name types.FeedName, dir string) (string, error)

	Downloaded []types.FeedName
}

var _ interfaces.NVDFeed = &Mock{}

func (x *Mock) Download(ctx context.Context, name types.FeedName, dir string) (string, error) {
	x.Downloaded = append(x.Downloaded, name)
	if x.MockDownload != nil {
		return x.MockDownload(ctx, name, dir)
	}
	return "", nil
}
