package usecase

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/utils"
)

// Extract decompresses a downloaded feed file and deserializes it.
func (x *UseCase) Extract(path string) (*model.Feed, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open feed file", goerr.V("path", path))
	}
	defer utils.SafeClose(fd)

	gz, err := gzip.NewReader(fd)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open gzip stream", goerr.V("path", path))
	}
	defer utils.SafeClose(gz)

	var feed model.Feed
	if err := json.NewDecoder(gz).Decode(&feed); err != nil {
		return nil, goerr.Wrap(err, "failed to decode feed", goerr.V("path", path))
	}

	return &feed, nil
}

// Transform writes the CVE entries that do not exist in the dataset yet
// to a newline delimited JSON file for bulk loading, one compact object
// per line. It returns the file path and the number of written entries;
// the path is empty when there is nothing new.
func (x *UseCase) Transform(ctx context.Context, dataset types.BQDatasetID, feed *model.Feed, name types.FeedName) (string, int, error) {
	ids, err := x.ListCVEIDs(ctx, dataset)
	if err != nil {
		return "", 0, err
	}

	exists := make(map[types.CVEID]struct{}, len(ids))
	for _, id := range ids {
		exists[id] = struct{}{}
	}

	var fresh []*model.CVEItem
	for _, item := range feed.CVEItems {
		if _, ok := exists[item.ID()]; !ok {
			fresh = append(fresh, item)
		}
	}

	if len(fresh) == 0 {
		return "", 0, nil
	}

	path := filepath.Join(x.localDir, fmt.Sprintf("%s_newline.json", name))
	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", 0, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}

	w := bufio.NewWriter(fd)
	for _, item := range fresh {
		raw, err := json.Marshal(item)
		if err != nil {
			_ = fd.Close()
			return "", 0, goerr.Wrap(err, "failed to serialize CVE entry", goerr.V("id", item.ID()))
		}

		// Source entries may carry insignificant whitespace; the load
		// format requires one object per line.
		var line bytes.Buffer
		if err := json.Compact(&line, raw); err != nil {
			_ = fd.Close()
			return "", 0, goerr.Wrap(err, "failed to compact CVE entry", goerr.V("id", item.ID()))
		}
		line.WriteByte('\n')

		if _, err := w.Write(line.Bytes()); err != nil {
			_ = fd.Close()
			return "", 0, goerr.Wrap(err, "failed to write output file", goerr.V("path", path))
		}
	}

	if err := w.Flush(); err != nil {
		_ = fd.Close()
		return "", 0, goerr.Wrap(err, "failed to flush output file", goerr.V("path", path))
	}
	if err := fd.Close(); err != nil {
		return "", 0, goerr.Wrap(err, "failed to close output file", goerr.V("path", path))
	}

	return path, len(fresh), nil
}

// Upload copies a local file into the working bucket and returns its
// gs:// URL. Existing objects with the same name are clobbered. The
// staged object is verified before the URL is handed to a load job.
func (x *UseCase) Upload(ctx context.Context, path string) (types.CSUrl, error) {
	object := types.CSObjectID(filepath.Base(path))

	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open local file", goerr.V("path", path))
	}
	defer utils.SafeClose(fd)

	w := x.clients.CloudStorage().Create(ctx, x.bucket, object)
	if _, err := io.Copy(w, fd); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to upload object", goerr.V("bucket", x.bucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object upload", goerr.V("bucket", x.bucket), goerr.V("object", object))
	}

	url := types.NewCSUrl(x.bucket, object)

	attrs, err := x.clients.CloudStorage().Attrs(ctx, x.bucket, object)
	if err != nil {
		return "", goerr.Wrap(err, "failed to verify uploaded object", goerr.V("url", url))
	}
	utils.CtxLogger(ctx).Info("uploaded object",
		"url", url,
		"size", humanize.Bytes(uint64(attrs.Size)),
	)

	return url, nil
}
