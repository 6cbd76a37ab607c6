package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"HospitalMgmt/services"
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
)

// BillService is the bill workflow shared by OPD and pathology bills.
type BillService[B any] interface {
	Create(ctx context.Context, in models.BillInput, createdBy *int64) (*B, error)
	GetByID(ctx context.Context, id uint) (*B, error)
	GetAll(ctx context.Context) ([]B, error)
	Update(ctx context.Context, id uint, in models.BillInput) (*B, error)
	AddItem(ctx context.Context, billID uint, in models.LineItemInput) (*B, error)
	UpdateItem(ctx context.Context, billID, lineID uint, in models.LineItemInput) (*B, error)
	RemoveItem(ctx context.Context, billID, lineID uint) (*B, error)
	Delete(ctx context.Context, id uint) error
}

type (
	InvoiceFunc      func(ctx context.Context, id uint) (*services.Document, error)
	InvoiceEmailFunc func(ctx context.Context, id uint, req models.InvoiceEmailRequest) error
)

type BillHandler[B any] struct {
	service BillService[B]
	invoice InvoiceFunc
	email   InvoiceEmailFunc
}

func NewBillHandler[B any](service BillService[B], invoice InvoiceFunc, email InvoiceEmailFunc) *BillHandler[B] {
	return &BillHandler[B]{service: service, invoice: invoice, email: email}
}

func (h *BillHandler[B]) CreateBill(c *gin.Context) {
	var in models.BillInput
	if !bindJSON(c, &in) {
		return
	}
	bill, err := h.service.Create(c.Request.Context(), in, currentUserID(c))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, bill)
}

func (h *BillHandler[B]) GetBillByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bill, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, bill)
}

func (h *BillHandler[B]) GetAllBills(c *gin.Context) {
	bills, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if bills == nil {
		bills = []B{}
	}
	c.JSON(200, bills)
}

func (h *BillHandler[B]) UpdateBill(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.BillInput
	if !bindJSON(c, &in) {
		return
	}
	bill, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, bill)
}

func (h *BillHandler[B]) DeleteBill(c *gin.Context) {
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

func (h *BillHandler[B]) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.LineItemInput
	if !bindJSON(c, &in) {
		return
	}
	bill, err := h.service.AddItem(c.Request.Context(), id, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, bill)
}

func (h *BillHandler[B]) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	var in models.LineItemInput
	if !bindJSON(c, &in) {
		return
	}
	bill, err := h.service.UpdateItem(c.Request.Context(), id, lineID, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, bill)
}

func (h *BillHandler[B]) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	bill, err := h.service.RemoveItem(c.Request.Context(), id, lineID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, bill)
}

// DownloadInvoice serves the bill as a PDF attachment named after its invoice number.
func (h *BillHandler[B]) DownloadInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	doc, err := h.invoice(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	c.Data(200, "application/pdf", doc.Data)
}

func (h *BillHandler[B]) EmailInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.InvoiceEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.email(c.Request.Context(), id, req); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(202, gin.H{"message": "Invoice sent to " + req.To})
}
