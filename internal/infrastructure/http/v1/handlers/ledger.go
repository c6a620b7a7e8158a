package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/core/apperror"
	"storefront/internal/domain/ledger"
	"storefront/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves the deletion ledger.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, service: service}
}

// List handles GET /deleted-ids.
func (h *LedgerHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromEntries(entries)))
}

// Record handles POST /deleted-ids.
func (h *LedgerHandler) Record(c *gin.Context) {
	var req dto.RecordDeletionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.DeletedID == nil {
		h.Error(c, apperror.NewInvalidArgument("deletedId", nil))
		return
	}

	entry, err := h.service.Record(c.Request.Context(), *req.DeletedID, req.EntityType)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromEntry(entry))
}

// Get handles GET /deleted-ids/:id. The service treats absence as a normal
// answer; over HTTP it is a 404.
func (h *LedgerHandler) Get(c *gin.Context) {
	deletedID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entry, found, err := h.service.Get(c.Request.Context(), deletedID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !found {
		h.Error(c, ledger.NewEntryNotFound(deletedID))
		return
	}
	h.OK(c, dto.FromEntry(entry))
}

// Update handles PUT /deleted-ids/:id.
func (h *LedgerHandler) Update(c *gin.Context) {
	deletedID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDeletionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.Update(c.Request.Context(), deletedID, req.EntityType)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEntry(entry))
}

// Delete handles DELETE /deleted-ids/:id.
func (h *LedgerHandler) Delete(c *gin.Context) {
	deletedID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), deletedID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
