package association

import (
	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
)

// Side identifies which resource of a relation could not be found.
type Side string

const (
	SideLeft        Side = "left"
	SideRight       Side = "right"
	SideAssociation Side = "association"
)

const detailSide = "side"

func notFound(rel Relation, side Side, missing id.ID) *apperror.AppError {
	var entity string
	switch side {
	case SideLeft:
		entity = string(rel.Left)
	case SideRight:
		entity = string(rel.Right)
	default:
		entity = rel.Name + " association"
	}
	return apperror.NewNotFound(entity, missing).
		WithDetail(detailSide, string(side)).
		WithDetail("relation", rel.Name)
}

// NotFoundSide returns the side of a relation-specific not-found error.
func NotFoundSide(err error) (Side, bool) {
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeNotFound {
		return "", false
	}
	s, ok := appErr.Detail(detailSide).(string)
	if !ok {
		return "", false
	}
	return Side(s), true
}

// IsLeftNotFound reports a missing left aggregate.
func IsLeftNotFound(err error) bool {
	side, ok := NotFoundSide(err)
	return ok && side == SideLeft
}

// IsRightNotFound reports a missing right aggregate.
func IsRightNotFound(err error) bool {
	side, ok := NotFoundSide(err)
	return ok && side == SideRight
}

// IsAssociationNotFound reports a missing association record.
func IsAssociationNotFound(err error) bool {
	side, ok := NotFoundSide(err)
	return ok && side == SideAssociation
}
