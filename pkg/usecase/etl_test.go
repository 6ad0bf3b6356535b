package usecase_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/infra"
	"github.com/secmon-lab/bqnvd/pkg/infra/bq"
	"github.com/secmon-lab/bqnvd/pkg/infra/cs"
	"github.com/secmon-lab/bqnvd/pkg/usecase"
)

const feedJSON = `{
	"CVE_data_type": "CVE",
	"CVE_Items": [
		{"cve": {"CVE_data_meta": {"ID": "CVE-2021-0001"}}, "impact": {"score": 1}},
		{"cve": {"CVE_data_meta": {"ID": "CVE-2021-0002"}}},
		{"cve": {"CVE_data_meta": {"ID": "CVE-2021-0003"}}}
	]
}`

func writeFeedFile(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "nvdcve-1.1-recent.json.gz")
	fd := gt.R1(os.Create(path)).NoError(t)
	gz := gzip.NewWriter(fd)
	gt.R1(gz.Write([]byte(feedJSON))).NoError(t)
	gt.NoError(t, gz.Close())
	gt.NoError(t, fd.Close())
	return path
}

func TestExtract(t *testing.T) {
	uc := usecase.New(infra.New())
	path := writeFeedFile(t, t.TempDir())

	feed := gt.R1(uc.Extract(path)).NoError(t)
	gt.A(t, feed.CVEItems).Length(3).At(0, func(t testing.TB, v *model.CVEItem) {
		gt.Equal(t, v.ID(), "CVE-2021-0001")
	})
}

func TestExtractNotGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.json.gz")
	gt.NoError(t, os.WriteFile(path, []byte(feedJSON), 0600))

	uc := usecase.New(infra.New())
	_, err := uc.Extract(path)
	gt.Error(t, err)
}

func TestTransform(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// CVE-2021-0002 is already in the dataset and must be skipped.
	mock := bq.NewGeneralMock()
	mock.Results = []*bq.MockIterator{
		{Rows: []map[string]bigquery.Value{{"ID": "CVE-2021-0002"}}},
	}

	uc := usecase.New(
		infra.New(infra.WithBigQuery(mock)),
		usecase.WithLocalDir(dir),
	)

	feed := gt.R1(uc.Extract(writeFeedFile(t, dir))).NoError(t)

	path, loaded := gt.R2(uc.Transform(ctx, "blue", feed, "recent")).NoError(t)
	gt.Equal(t, loaded, 2)
	gt.Equal(t, path, filepath.Join(dir, "recent_newline.json"))

	raw := gt.R1(os.ReadFile(path)).NoError(t)
	lines := bytes.Split(bytes.TrimRight(raw, "\n"), []byte("\n"))
	gt.A(t, lines).Length(2).
		At(0, func(t testing.TB, v []byte) {
			gt.Equal(t, string(v), `{"cve":{"CVE_data_meta":{"ID":"CVE-2021-0001"}},"impact":{"score":1}}`)
		}).
		At(1, func(t testing.TB, v []byte) {
			gt.Equal(t, string(v), `{"cve":{"CVE_data_meta":{"ID":"CVE-2021-0003"}}}`)
		})
}

func TestTransformNoUpdates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	mock := bq.NewGeneralMock()
	mock.Results = []*bq.MockIterator{
		{Rows: []map[string]bigquery.Value{
			{"ID": "CVE-2021-0001"},
			{"ID": "CVE-2021-0002"},
			{"ID": "CVE-2021-0003"},
		}},
	}

	uc := usecase.New(
		infra.New(infra.WithBigQuery(mock)),
		usecase.WithLocalDir(dir),
	)

	feed := gt.R1(uc.Extract(writeFeedFile(t, dir))).NoError(t)

	path, loaded := gt.R2(uc.Transform(ctx, "blue", feed, "recent")).NoError(t)
	gt.Equal(t, loaded, 0)
	gt.Equal(t, path, "")
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "recent_newline.json")
	gt.NoError(t, os.WriteFile(path, []byte("{\"color\":\"orange\"}\n"), 0600))

	csMock := &cs.Mock{}
	uc := usecase.New(
		infra.New(infra.WithCloudStorage(csMock)),
		usecase.WithBucket("five"),
	)

	uri := gt.R1(uc.Upload(ctx, path)).NoError(t)
	gt.Equal(t, uri, "gs://five/recent_newline.json")
	gt.Equal(t, string(csMock.Object(uri)), "{\"color\":\"orange\"}\n")
}

func TestUploadMissingObject(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "recent_newline.json")
	gt.NoError(t, os.WriteFile(path, []byte("{\"color\":\"orange\"}\n"), 0600))

	// The staged object vanished between write and verification.
	csMock := &cs.Mock{
		MockAttrs: func(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) (*storage.ObjectAttrs, error) {
			return nil, storage.ErrObjectNotExist
		},
	}
	uc := usecase.New(
		infra.New(infra.WithCloudStorage(csMock)),
		usecase.WithBucket("five"),
	)

	_, err := uc.Upload(ctx, path)
	gt.Error(t, err)
}
