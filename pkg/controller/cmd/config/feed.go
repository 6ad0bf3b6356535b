package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/infra/feed"
	"github.com/urfave/cli/v2"
)

// Feed configures the NVD feed source and the staging area of the
// pipeline: a local working directory and a Cloud Storage bucket.
type Feed struct {
	baseURL  string
	bucket   types.CSBucket
	localDir string
}

func (x *Feed) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "feed-base-url",
			Usage:       "Base URL of the NVD JSON feeds",
			EnvVars:     []string{"BQNVD_FEED_BASE_URL"},
			Destination: &x.baseURL,
			Value:       feed.DefaultBaseURL,
		},
		&cli.StringFlag{
			Name:        "bucket-name",
			Aliases:     []string{"b"},
			Usage:       "Cloud Storage bucket for staging newline delimited JSON",
			EnvVars:     []string{"BQNVD_BUCKET_NAME"},
			Destination: (*string)(&x.bucket),
		},
		&cli.StringFlag{
			Name:        "local-path",
			Usage:       "Local working directory for downloaded and transformed feeds",
			EnvVars:     []string{"BQNVD_LOCAL_PATH"},
			Destination: &x.localDir,
			Value:       ".",
		},
	}
}

func (x *Feed) Configure() (*feed.Client, error) {
	if x.bucket == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bucket-name is required")
	}

	return feed.New(feed.WithBaseURL(x.baseURL)), nil
}

func (x *Feed) Bucket() types.CSBucket { return x.bucket }
func (x *Feed) LocalDir() string       { return x.localDir }

func (x *Feed) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", x.baseURL),
		slog.String("bucket", string(x.bucket)),
		slog.String("localDir", x.localDir),
	)
}
