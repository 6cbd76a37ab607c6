package controllers

import (
	"HospitalMgmt/handlers"
	"HospitalMgmt/models"

	"github.com/gin-gonic/gin"
)

// BillingHandlers groups everything mounted by SetupBillingRoutes.
type BillingHandlers struct {
	OPDItems       *handlers.CatalogHandler[models.OPDItem]
	PathologyTests *handlers.CatalogHandler[models.PathologyTest]
	OPDBills       *handlers.BillHandler[models.OPDBill]
	PathologyBills *handlers.BillHandler[models.PathologyBill]
	Reports        *handlers.ReportHandler
	Commissions    *handlers.CommissionHandler
}

type catalogRoutes interface {
	CreateEntry(c *gin.Context)
	GetEntryByID(c *gin.Context)
	GetAllEntries(c *gin.Context)
	UpdateEntry(c *gin.Context)
	DeleteEntry(c *gin.Context)
}

type billRoutes interface {
	CreateBill(c *gin.Context)
	GetBillByID(c *gin.Context)
	GetAllBills(c *gin.Context)
	UpdateBill(c *gin.Context)
	DeleteBill(c *gin.Context)
	AddItem(c *gin.Context)
	UpdateItem(c *gin.Context)
	RemoveItem(c *gin.Context)
	DownloadInvoice(c *gin.Context)
	EmailInvoice(c *gin.Context)
}

func setupCatalogRoutes(group *gin.RouterGroup, h catalogRoutes) {
	group.POST("", h.CreateEntry)
	group.GET("", h.GetAllEntries)
	group.GET("/:id", h.GetEntryByID)
	group.PUT("/:id", h.UpdateEntry)
	group.DELETE("/:id", h.DeleteEntry)
}

func setupBillRoutes(group *gin.RouterGroup, h billRoutes) {
	group.POST("", h.CreateBill)
	group.GET("", h.GetAllBills)
	group.GET("/:id", h.GetBillByID)
	group.PUT("/:id", h.UpdateBill)
	group.DELETE("/:id", h.DeleteBill)

	group.POST("/:id/items", h.AddItem)
	group.PUT("/:id/items/:item_id", h.UpdateItem)
	group.DELETE("/:id/items/:item_id", h.RemoveItem)

	group.GET("/:id/invoice", h.DownloadInvoice)
	group.POST("/:id/invoice/email", h.EmailInvoice)
}

// SetupBillingRoutes registers the catalog, bill, report and commission routes.
func SetupBillingRoutes(router *gin.RouterGroup, h BillingHandlers) {
	setupCatalogRoutes(router.Group("/opd-items"), h.OPDItems)
	setupCatalogRoutes(router.Group("/pathology-tests"), h.PathologyTests)

	setupBillRoutes(router.Group("/opd-bills"), h.OPDBills)

	pathology := router.Group("/pathology-bills")
	setupBillRoutes(pathology, h.PathologyBills)
	pathology.POST("/:id/reports", h.Reports.AddReport)
	pathology.GET("/:id/reports", h.Reports.GetReports)

	router.POST("/commissions", h.Commissions.RecordCommission)
	router.GET("/commissions", h.Commissions.ListCommissions)
}
