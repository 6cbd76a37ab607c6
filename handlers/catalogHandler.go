package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"context"

	"github.com/gin-gonic/gin"
)

// CatalogService manages one kind of priced catalog entry.
type CatalogService[T any] interface {
	Create(ctx context.Context, in models.CatalogInput) (*T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id uint, in models.CatalogInput) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type CatalogHandler[T any] struct {
	service CatalogService[T]
}

func NewCatalogHandler[T any](service CatalogService[T]) *CatalogHandler[T] {
	return &CatalogHandler[T]{service: service}
}

func (h *CatalogHandler[T]) CreateEntry(c *gin.Context) {
	var in models.CatalogInput
	if !bindJSON(c, &in) {
		return
	}
	entry, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, entry)
}

func (h *CatalogHandler[T]) GetEntryByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, entry)
}

func (h *CatalogHandler[T]) GetAllEntries(c *gin.Context) {
	entries, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if entries == nil {
		entries = []T{}
	}
	c.JSON(200, entries)
}

func (h *CatalogHandler[T]) UpdateEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.CatalogInput
	if !bindJSON(c, &in) {
		return
	}
	entry, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, entry)
}

// DeleteEntry refuses entries that existing bills still reference.
func (h *CatalogHandler[T]) DeleteEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(204)
}
