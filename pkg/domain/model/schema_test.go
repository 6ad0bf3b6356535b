package model_test

import (
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

func TestParseSchema(t *testing.T) {
	raw := `[
		{"name": "configurations", "type": "RECORD", "fields": [
			{"name": "CVE_data_version"},
			{"name": "nodes", "type": "RECORD", "mode": "REPEATED", "fields": [
				{"name": "operator"}
			]}
		]},
		{"name": "publishedDate", "type": "TIMESTAMP"},
		{"name": "cve", "type": "RECORD", "fields": [
			{"name": "CVE_data_meta", "type": "RECORD", "fields": [
				{"name": "ID", "mode": "REQUIRED"}
			]}
		]}
	]`

	schema := gt.R1(model.ParseSchema(strings.NewReader(raw))).NoError(t)

	gt.A(t, schema).Length(3).
		At(0, func(t testing.TB, v *bigquery.FieldSchema) {
			gt.Equal(t, v.Name, "configurations")
			gt.Equal(t, v.Type, bigquery.RecordFieldType)
			gt.A(t, v.Schema).Length(2).
				At(0, func(t testing.TB, c *bigquery.FieldSchema) {
					gt.Equal(t, c.Name, "CVE_data_version")
					gt.Equal(t, c.Type, bigquery.StringFieldType)
					gt.Equal(t, c.Required, false)
					gt.Equal(t, c.Repeated, false)
					gt.A(t, c.Schema).Length(0)
				}).
				At(1, func(t testing.TB, c *bigquery.FieldSchema) {
					gt.Equal(t, c.Name, "nodes")
					gt.Equal(t, c.Repeated, true)
					gt.A(t, c.Schema).Length(1)
				})
		}).
		At(1, func(t testing.TB, v *bigquery.FieldSchema) {
			gt.Equal(t, v.Name, "publishedDate")
			gt.Equal(t, v.Type, bigquery.TimestampFieldType)
			gt.A(t, v.Schema).Length(0)
		}).
		At(2, func(t testing.TB, v *bigquery.FieldSchema) {
			gt.Equal(t, v.Name, "cve")
			meta := v.Schema[0]
			gt.Equal(t, meta.Name, "CVE_data_meta")
			gt.A(t, meta.Schema).Length(1).At(0, func(t testing.TB, c *bigquery.FieldSchema) {
				gt.Equal(t, c.Name, "ID")
				gt.Equal(t, c.Required, true)
			})
		})
}

func TestParseSchemaDefaults(t *testing.T) {
	schema := gt.R1(model.ParseSchema(strings.NewReader(`[{"name": "color"}]`))).NoError(t)

	gt.A(t, schema).Length(1).At(0, func(t testing.TB, v *bigquery.FieldSchema) {
		gt.Equal(t, v.Name, "color")
		gt.Equal(t, v.Type, bigquery.StringFieldType)
		gt.Equal(t, v.Required, false)
		gt.Equal(t, v.Repeated, false)
	})
}

func TestParseSchemaError(t *testing.T) {
	testCases := map[string]string{
		"malformed JSON":    `[{"name": "color"`,
		"non-object entry":  `["color", "shape"]`,
		"not an array":      `{"name": "color"}`,
		"missing name":      `[{"type": "STRING"}]`,
		"empty child name":  `[{"name": "parent", "fields": [{"type": "STRING"}]}]`,
	}

	for name, raw := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := model.ParseSchema(strings.NewReader(raw))
			gt.Error(t, err)
			if !errors.Is(err, types.ErrInvalidSchema) {
				t.Errorf("error is not ErrInvalidSchema: %v", err)
			}
		})
	}
}

func TestParseSchemaFileNotFound(t *testing.T) {
	_, err := model.ParseSchemaFile("no_such_file.json")
	gt.Error(t, err)
	if !errors.Is(err, types.ErrInvalidSchema) {
		t.Errorf("error is not ErrInvalidSchema: %v", err)
	}
}
