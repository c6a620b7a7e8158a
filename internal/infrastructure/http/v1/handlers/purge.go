package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/core/apperror"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/purge"
	"storefront/internal/infrastructure/http/v1/dto"
)

// PurgeHandler removes aggregates through the cascade policy.
type PurgeHandler struct {
	*BaseHandler
	service *purge.Service
}

// NewPurgeHandler creates a purge handler.
func NewPurgeHandler(base *BaseHandler, service *purge.Service) *PurgeHandler {
	return &PurgeHandler{BaseHandler: base, service: service}
}

// Purge handles DELETE /aggregates/:kind/:id.
func (h *PurgeHandler) Purge(c *gin.Context) {
	kind, err := aggregate.ParseKind(c.Param("kind"))
	if err != nil {
		h.Error(c, apperror.NewInvalidArgument("kind", c.Param("kind")).WithCause(err))
		return
	}
	aggregateID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	report, err := h.service.Purge(c.Request.Context(), kind, aggregateID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromReport(report))
}
