package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// RequestID is a unique identifier for each request
type RequestID string

func NewRequestID() RequestID      { return RequestID(uuid.NewString()) }
func (x RequestID) Empty() bool    { return x == "" }
func (x RequestID) String() string { return string(x) }

// SyncID is a unique identifier for each feed synchronization run
type SyncID string

func NewSyncID() SyncID         { return SyncID(uuid.NewString()) }
func (x SyncID) String() string { return string(x) }

// Google Cloud Platform
type GoogleProjectID string

func (x GoogleProjectID) String() string { return string(x) }

type BQDatasetID string
type BQTableID string

func (x BQDatasetID) String() string { return string(x) }
func (x BQTableID) String() string   { return string(x) }

type CSBucket string
type CSObjectID string
type CSUrl string

func (x CSBucket) String() string   { return string(x) }
func (x CSObjectID) String() string { return string(x) }
func (x CSUrl) String() string      { return string(x) }

func NewCSUrl(bucket CSBucket, object CSObjectID) CSUrl {
	return CSUrl(fmt.Sprintf("gs://%s/%s", bucket, object))
}

func (x CSUrl) Parse() (CSBucket, CSObjectID, error) {
	// convert gs://bucket/object to (bucket, object)

	if !strings.HasPrefix(string(x), "gs://") {
		return "", "", goerr.Wrap(ErrInvalidOption, "CSUrl has invalid prefix", goerr.V("url", x))
	}

	parts := strings.Split(string(x), "/")
	if len(parts) < 4 {
		return "", "", goerr.Wrap(ErrInvalidOption, "CSUrl is invalid", goerr.V("url", x))
	}

	if parts[0] != "gs:" || parts[1] != "" {
		return "", "", goerr.Wrap(ErrInvalidOption, "CSUrl is invalid", goerr.V("url", x))
	}

	if parts[2] == "" {
		return "", "", goerr.Wrap(ErrInvalidOption, "CSUrl has empty bucket", goerr.V("url", x))
	}

	bucket := CSBucket(parts[2])
	object := CSObjectID(strings.Join(parts[3:], "/"))

	return bucket, object, nil
}

// FeedName identifies one NVD JSON feed. It is either a year ("2002" ..)
// or one of the rolling feeds ("recent", "modified").
type FeedName string

func (x FeedName) String() string { return string(x) }

// CVEID is an identifier of a CVE record, e.g. "CVE-2021-44228"
type CVEID string

func (x CVEID) String() string { return string(x) }
