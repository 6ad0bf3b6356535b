package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

// Feed is a deserialized NVD JSON feed. The CVE_data_* metadata keys of
// the feed are discarded, CVE_Items has what we want.
type Feed struct {
	CVEItems []*CVEItem `json:"CVE_Items"`
}

// CVEItem is one CVE entry of an NVD feed. The entry is kept as raw
// JSON and passed through to BigQuery unread, except for the CVE ID
// that is needed for delta calculation.
type CVEItem struct {
	id  types.CVEID
	raw json.RawMessage
}

func (x *CVEItem) ID() types.CVEID { return x.id }

func (x *CVEItem) UnmarshalJSON(data []byte) error {
	var entry struct {
		CVE struct {
			Meta struct {
				ID types.CVEID `json:"ID"`
			} `json:"CVE_data_meta"`
		} `json:"cve"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}

	x.id = entry.CVE.Meta.ID
	x.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (x *CVEItem) MarshalJSON() ([]byte, error) {
	if x.raw == nil {
		return nil, goerr.Wrap(types.ErrAssertion, "CVEItem has no raw data")
	}
	return x.raw, nil
}
