package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/core/apperror"
	"storefront/internal/domain/association"
	"storefront/internal/infrastructure/http/v1/dto"
)

// AssociationHandler serves one relation's records.
type AssociationHandler struct {
	*BaseHandler
	service association.Service
}

// NewAssociationHandler creates a handler for service's relation.
func NewAssociationHandler(base *BaseHandler, service association.Service) *AssociationHandler {
	return &AssociationHandler{BaseHandler: base, service: service}
}

// List handles GET /associations/:relation.
// Relations that report emptiness explicitly answer 204 when there are no records.
func (h *AssociationHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	if result.Empty {
		h.NoContent(c)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromRecords(result.Items)))
}

// Create handles POST /associations/:relation.
func (h *AssociationHandler) Create(c *gin.Context) {
	var req dto.CreateAssociationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.LeftID == nil {
		h.Error(c, apperror.NewInvalidArgument("leftId", nil))
		return
	}
	if req.RightID == nil {
		h.Error(c, apperror.NewInvalidArgument("rightId", nil))
		return
	}

	rec, err := h.service.Create(c.Request.Context(), *req.LeftID, *req.RightID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromRecord(rec))
}

// Get handles GET /associations/:relation/:id.
func (h *AssociationHandler) Get(c *gin.Context) {
	recordID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), recordID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecord(rec))
}

// Replace handles PUT /associations/:relation/:id. Both ids are required.
func (h *AssociationHandler) Replace(c *gin.Context) {
	var req dto.UpdateAssociationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.LeftID == nil {
		h.Error(c, apperror.NewInvalidArgument("leftId", nil))
		return
	}
	if req.RightID == nil {
		h.Error(c, apperror.NewInvalidArgument("rightId", nil))
		return
	}
	h.update(c, req)
}

// Patch handles PATCH /associations/:relation/:id. Absent ids are kept.
func (h *AssociationHandler) Patch(c *gin.Context) {
	var req dto.UpdateAssociationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.update(c, req)
}

func (h *AssociationHandler) update(c *gin.Context, req dto.UpdateAssociationRequest) {
	recordID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rec, err := h.service.Update(c.Request.Context(), recordID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecord(rec))
}

// Delete handles DELETE /associations/:relation/:id.
func (h *AssociationHandler) Delete(c *gin.Context) {
	recordID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), recordID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Orphans handles GET /associations/:relation/orphans.
func (h *AssociationHandler) Orphans(c *gin.Context) {
	orphans, err := h.service.Orphans(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromOrphans(orphans)))
}
