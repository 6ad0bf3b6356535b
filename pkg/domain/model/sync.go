package model

import (
	"time"

	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

// SyncLog is one record of the optional metadata table, appended after
// every feed synchronization.
type SyncLog struct {
	ID         types.SyncID   `bigquery:"id" json:"id"`
	Feed       types.FeedName `bigquery:"feed" json:"feed"`
	StartedAt  time.Time      `bigquery:"started_at" json:"started_at"`
	FinishedAt time.Time      `bigquery:"finished_at" json:"finished_at"`
	Total      int            `bigquery:"total" json:"total"`
	Loaded     int            `bigquery:"loaded" json:"loaded"`
	Success    bool           `bigquery:"success" json:"success"`
	Error      string         `bigquery:"error" json:"error"`
}
