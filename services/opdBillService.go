package services

import (
	"HospitalMgmt/billing"
	"HospitalMgmt/logger"
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/utils"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type OPDBillService struct {
	bills repositories.OPDBillRepository
	items CatalogLookup[models.OPDItem]
	now   func() time.Time
}

func NewOPDBillService(bills repositories.OPDBillRepository, items CatalogLookup[models.OPDItem]) *OPDBillService {
	return &OPDBillService{bills: bills, items: items, now: time.Now}
}

// Create opens a bill with no line items and assigns its invoice number.
func (s *OPDBillService) Create(ctx context.Context, in models.BillInput, createdBy *int64) (*models.OPDBill, error) {
	if err := utils.ValidateBill(in); err != nil {
		return nil, err
	}
	bill := &models.OPDBill{BillingBase: newBillingBase(in, s.now(), createdBy)}
	recomputeOPD(bill)

	if err := withRetry(ctx, func() error { return s.bills.Create(ctx, bill) }); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"bill_id":        bill.ID,
		"invoice_number": bill.InvoiceNumber,
	}).Info("OPD bill created")
	return s.bills.GetByID(ctx, bill.ID)
}

func (s *OPDBillService) GetByID(ctx context.Context, id uint) (*models.OPDBill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *OPDBillService) GetAll(ctx context.Context) ([]models.OPDBill, error) {
	return s.bills.GetAll(ctx)
}

// Update replaces the bill-level fields and recomputes the totals.
func (s *OPDBillService) Update(ctx context.Context, id uint, in models.BillInput) (*models.OPDBill, error) {
	if err := utils.ValidateBill(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(bill *models.OPDBill) error {
		applyBillInput(bill.Base(), in)
		return nil
	})
}

// AddItem appends a line priced at the item's current catalog price unless
// the input names a price.
func (s *OPDBillService) AddItem(ctx context.Context, billID uint, in models.LineItemInput) (*models.OPDBill, error) {
	if err := utils.ValidateLineItem(in); err != nil {
		return nil, err
	}
	item, err := resolveEntry(ctx, s.items, in.CatalogID)
	if err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, inactiveEntry()
	}
	return s.mutate(ctx, billID, func(bill *models.OPDBill) error {
		bill.Items = append(bill.Items, models.OPDLineItem{
			BillID:    bill.ID,
			ItemID:    item.ID,
			Quantity:  in.Quantity,
			UnitPrice: capturedPrice(in, item.Price),
			Item:      *item,
		})
		return nil
	})
}

// UpdateItem changes a line. A line that keeps its item keeps its captured
// price unless a new price is given.
func (s *OPDBillService) UpdateItem(ctx context.Context, billID, lineID uint, in models.LineItemInput) (*models.OPDBill, error) {
	if err := utils.ValidateLineItem(in); err != nil {
		return nil, err
	}
	item, err := resolveEntry(ctx, s.items, in.CatalogID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, billID, func(bill *models.OPDBill) error {
		for i := range bill.Items {
			line := &bill.Items[i]
			if line.ID != lineID {
				continue
			}
			switch {
			case line.ItemID != item.ID && !item.Active:
				return inactiveEntry()
			case line.ItemID != item.ID:
				line.UnitPrice = capturedPrice(in, item.Price)
			case in.UnitPrice != nil:
				line.UnitPrice = in.UnitPrice.Round(2)
			}
			line.ItemID = item.ID
			line.Item = *item
			line.Quantity = in.Quantity
			return nil
		}
		return repositories.ErrNotFound
	})
}

func (s *OPDBillService) RemoveItem(ctx context.Context, billID, lineID uint) (*models.OPDBill, error) {
	return s.mutate(ctx, billID, func(bill *models.OPDBill) error {
		for i, line := range bill.Items {
			if line.ID == lineID {
				bill.Items = append(bill.Items[:i], bill.Items[i+1:]...)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

func (s *OPDBillService) Delete(ctx context.Context, id uint) error {
	return s.bills.Delete(ctx, id)
}

// mutate applies fn under the bill's row lock and recomputes before saving.
func (s *OPDBillService) mutate(ctx context.Context, id uint, fn func(bill *models.OPDBill) error) (*models.OPDBill, error) {
	var out *models.OPDBill
	err := withRetry(ctx, func() error {
		var err error
		out, err = s.bills.Mutate(ctx, id, func(bill *models.OPDBill) error {
			if err := fn(bill); err != nil {
				return err
			}
			recomputeOPD(bill)
			return utils.CheckBillTotals(bill.Totals())
		})
		return err
	})
	return out, err
}

func recomputeOPD(bill *models.OPDBill) {
	bill.ApplyTotals(billing.Recompute(bill.Items, bill.Discount, bill.PaidAmount))
}
