package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
)

func TestFeedUnmarshal(t *testing.T) {
	raw := `{
		"CVE_data_type": "CVE",
		"CVE_data_numberOfCVEs": "2",
		"CVE_Items": [
			{
				"cve": {"CVE_data_meta": {"ID": "CVE-2021-0001", "ASSIGNER": "cve@mitre.org"}},
				"impact": {"baseMetricV3": {"cvssV3": {"baseScore": 7.5}}}
			},
			{
				"cve": {"CVE_data_meta": {"ID": "CVE-2021-0002"}}
			}
		]
	}`

	var feed model.Feed
	gt.NoError(t, json.Unmarshal([]byte(raw), &feed))

	gt.A(t, feed.CVEItems).Length(2).
		At(0, func(t testing.TB, v *model.CVEItem) {
			gt.Equal(t, v.ID(), "CVE-2021-0001")
		}).
		At(1, func(t testing.TB, v *model.CVEItem) {
			gt.Equal(t, v.ID(), "CVE-2021-0002")
		})
}

func TestCVEItemPassthrough(t *testing.T) {
	// Fields unknown to this module must survive a round trip untouched.
	raw := `{"cve":{"CVE_data_meta":{"ID":"CVE-2020-1234"}},"unknown_key":{"deep":[1,2,3]}}`

	var item model.CVEItem
	gt.NoError(t, json.Unmarshal([]byte(raw), &item))
	gt.Equal(t, item.ID(), "CVE-2020-1234")

	out := gt.R1(json.Marshal(&item)).NoError(t)

	var src, dst any
	gt.NoError(t, json.Unmarshal([]byte(raw), &src))
	gt.NoError(t, json.Unmarshal(out, &dst))
	gt.Equal(t, dst, src)
}
