package dto

import (
	"time"

	"storefront/internal/core/id"
	"storefront/internal/domain/ledger"
	"storefront/internal/domain/purge"
)

// RecordDeletionRequest creates a ledger entry.
type RecordDeletionRequest struct {
	DeletedID  *id.ID `json:"deletedId"`
	EntityType string `json:"entityType"`
}

// UpdateDeletionRequest corrects an entry's entity type.
type UpdateDeletionRequest struct {
	EntityType string `json:"entityType"`
}

// DeletionResponse is one ledger entry.
type DeletionResponse struct {
	DeletedID  id.ID     `json:"deletedId"`
	EntityType string    `json:"entityType"`
	RecordedAt time.Time `json:"recordedAt"`
}

// FromEntry creates DeletionResponse from a ledger entry.
func FromEntry(e ledger.Entry) DeletionResponse {
	return DeletionResponse{DeletedID: e.DeletedID, EntityType: e.EntityType, RecordedAt: e.RecordedAt}
}

// FromEntries maps a slice of entries.
func FromEntries(entries []ledger.Entry) []DeletionResponse {
	out := make([]DeletionResponse, len(entries))
	for i, e := range entries {
		out[i] = FromEntry(e)
	}
	return out
}

// PurgeResponse reports a completed purge.
type PurgeResponse struct {
	Kind      string           `json:"kind"`
	ID        id.ID            `json:"id"`
	Relations []purge.Detached `json:"relations"`
	Tombstone DeletionResponse `json:"tombstone"`
}

// FromReport creates PurgeResponse from a purge report.
func FromReport(r purge.Report) PurgeResponse {
	return PurgeResponse{
		Kind:      string(r.Kind),
		ID:        r.ID,
		Relations: r.Relations,
		Tombstone: FromEntry(r.Tombstone),
	}
}
