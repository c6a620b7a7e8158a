package dto

import (
	"storefront/internal/core/id"
	"storefront/internal/domain/association"
)

// CreateAssociationRequest links two aggregates. Both ids are mandatory.
type CreateAssociationRequest struct {
	LeftID  *id.ID `json:"leftId"`
	RightID *id.ID `json:"rightId"`
}

// UpdateAssociationRequest carries the sides to change. PATCH accepts any
// subset; PUT requires both.
type UpdateAssociationRequest struct {
	LeftID  *id.ID `json:"leftId"`
	RightID *id.ID `json:"rightId"`
}

// ToPatch converts the request to a domain patch.
func (r UpdateAssociationRequest) ToPatch() association.Patch {
	return association.Patch{LeftID: r.LeftID, RightID: r.RightID}
}

// AssociationResponse is one association record.
type AssociationResponse struct {
	ID      id.ID `json:"id"`
	LeftID  id.ID `json:"leftId"`
	RightID id.ID `json:"rightId"`
}

// FromRecord creates AssociationResponse from a record.
func FromRecord(rec association.Record) AssociationResponse {
	return AssociationResponse{ID: rec.ID, LeftID: rec.LeftID, RightID: rec.RightID}
}

// FromRecords maps a slice of records.
func FromRecords(records []association.Record) []AssociationResponse {
	out := make([]AssociationResponse, len(records))
	for i, rec := range records {
		out[i] = FromRecord(rec)
	}
	return out
}

// OrphanResponse is one record with a missing side.
type OrphanResponse struct {
	AssociationResponse
	LeftMissing  bool `json:"leftMissing"`
	RightMissing bool `json:"rightMissing"`
}

// FromOrphans maps the orphan report.
func FromOrphans(orphans []association.Orphan) []OrphanResponse {
	out := make([]OrphanResponse, len(orphans))
	for i, o := range orphans {
		out[i] = OrphanResponse{
			AssociationResponse: FromRecord(o.Record),
			LeftMissing:         o.LeftMissing,
			RightMissing:        o.RightMissing,
		}
	}
	return out
}
