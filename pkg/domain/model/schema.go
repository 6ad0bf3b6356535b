package model

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

// FieldSpec describes one column of the destination table as given in
// the schema definition file. A record column carries its child columns
// in Fields, nested arbitrarily deep.
type FieldSpec struct {
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Mode   string       `json:"mode"`
	Fields []*FieldSpec `json:"fields"`
}

// Resolve converts the FieldSpec tree into a BigQuery column schema.
// Child fields are resolved first and keep the order of the source
// document. Type defaults to STRING and mode to NULLABLE.
func (x *FieldSpec) Resolve() (*bigquery.FieldSchema, error) {
	if x.Name == "" {
		return nil, goerr.Wrap(types.ErrInvalidSchema, "field name is required")
	}

	fieldType := x.Type
	if fieldType == "" {
		fieldType = "STRING"
	}
	mode := x.Mode
	if mode == "" {
		mode = "NULLABLE"
	}

	var children bigquery.Schema
	for _, f := range x.Fields {
		child, err := f.Resolve()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve child field", goerr.V("parent", x.Name))
		}
		children = append(children, child)
	}

	return &bigquery.FieldSchema{
		Name:     x.Name,
		Type:     bigquery.FieldType(fieldType),
		Required: mode == "REQUIRED",
		Repeated: mode == "REPEATED",
		Schema:   children,
	}, nil
}

// ParseSchema reads a JSON document that is a top-level array of
// FieldSpec objects and resolves it into a BigQuery schema.
func ParseSchema(r io.Reader) (bigquery.Schema, error) {
	var specs []*FieldSpec
	if err := json.NewDecoder(r).Decode(&specs); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidSchema, "failed to decode schema document", goerr.V("cause", err.Error()))
	}

	var schema bigquery.Schema
	for _, spec := range specs {
		field, err := spec.Resolve()
		if err != nil {
			return nil, err
		}
		schema = append(schema, field)
	}

	return schema, nil
}

// ParseSchemaFile is ParseSchema for a schema definition on the local
// file system.
func ParseSchemaFile(path string) (bigquery.Schema, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidSchema, "failed to open schema file", goerr.V("path", path))
	}
	defer fd.Close()

	return ParseSchema(fd)
}
