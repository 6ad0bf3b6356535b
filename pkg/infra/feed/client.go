package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/utils"
)

// DefaultBaseURL is the NVD 1.1 JSON feed location
const DefaultBaseURL = "https://nvd.nist.gov/feeds/json/cve/1.1"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.NVDFeed = &Client{}

func New(options ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, option := range options {
		option(client)
	}

	return client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Download implements interfaces.NVDFeed. It fetches the compressed
// feed into dir and returns the local file path. The feed file stays
// gzip compressed; extraction is up to the caller.
func (x *Client) Download(ctx context.Context, name types.FeedName, dir string) (string, error) {
	fileName := fmt.Sprintf("nvdcve-1.1-%s.json.gz", name)
	url := fmt.Sprintf("%s/%s", x.baseURL, fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create feed request", goerr.V("url", url))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch feed", goerr.V("url", url))
	}
	defer utils.SafeClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", goerr.Wrap(types.ErrFeedUnavailable, "unexpected response status", goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	path := filepath.Join(dir, fileName)
	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create feed file", goerr.V("path", path))
	}

	n, err := io.Copy(fd, resp.Body)
	if err != nil {
		_ = fd.Close()
		return "", goerr.Wrap(err, "failed to write feed file", goerr.V("path", path))
	}
	if err := fd.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close feed file", goerr.V("path", path))
	}

	utils.CtxLogger(ctx).Info("downloaded feed",
		"feed", name,
		"path", path,
		"size", humanize.Bytes(uint64(n)),
	)

	return path, nil
}
