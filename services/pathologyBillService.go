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

type PathologyBillService struct {
	bills repositories.PathologyBillRepository
	tests CatalogLookup[models.PathologyTest]
	now   func() time.Time
}

func NewPathologyBillService(bills repositories.PathologyBillRepository, tests CatalogLookup[models.PathologyTest]) *PathologyBillService {
	return &PathologyBillService{bills: bills, tests: tests, now: time.Now}
}

// Create opens a bill with no line items and assigns its invoice number.
func (s *PathologyBillService) Create(ctx context.Context, in models.BillInput, createdBy *int64) (*models.PathologyBill, error) {
	if err := utils.ValidateBill(in); err != nil {
		return nil, err
	}
	bill := &models.PathologyBill{
		BillingBase:   newBillingBase(in, s.now(), createdBy),
		PathologistID: in.PathologistID,
	}
	recomputePathology(bill)

	if err := withRetry(ctx, func() error { return s.bills.Create(ctx, bill) }); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"bill_id":        bill.ID,
		"invoice_number": bill.InvoiceNumber,
	}).Info("Pathology bill created")
	return s.bills.GetByID(ctx, bill.ID)
}

func (s *PathologyBillService) GetByID(ctx context.Context, id uint) (*models.PathologyBill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *PathologyBillService) GetAll(ctx context.Context) ([]models.PathologyBill, error) {
	return s.bills.GetAll(ctx)
}

func (s *PathologyBillService) Update(ctx context.Context, id uint, in models.BillInput) (*models.PathologyBill, error) {
	if err := utils.ValidateBill(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(bill *models.PathologyBill) error {
		applyBillInput(bill.Base(), in)
		bill.PathologistID = in.PathologistID
		return nil
	})
}

// AddItem appends a test priced at its current catalog price unless the
// input names a price.
func (s *PathologyBillService) AddItem(ctx context.Context, billID uint, in models.LineItemInput) (*models.PathologyBill, error) {
	if err := utils.ValidateLineItem(in); err != nil {
		return nil, err
	}
	test, err := resolveEntry(ctx, s.tests, in.CatalogID)
	if err != nil {
		return nil, err
	}
	if !test.Active {
		return nil, inactiveEntry()
	}
	return s.mutate(ctx, billID, func(bill *models.PathologyBill) error {
		bill.Items = append(bill.Items, models.PathologyLineItem{
			BillID:    bill.ID,
			TestID:    test.ID,
			Quantity:  in.Quantity,
			UnitPrice: capturedPrice(in, test.Price),
			Test:      *test,
		})
		return nil
	})
}

// UpdateItem changes a line; see OPDBillService.UpdateItem.
func (s *PathologyBillService) UpdateItem(ctx context.Context, billID, lineID uint, in models.LineItemInput) (*models.PathologyBill, error) {
	if err := utils.ValidateLineItem(in); err != nil {
		return nil, err
	}
	test, err := resolveEntry(ctx, s.tests, in.CatalogID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, billID, func(bill *models.PathologyBill) error {
		for i := range bill.Items {
			line := &bill.Items[i]
			if line.ID != lineID {
				continue
			}
			switch {
			case line.TestID != test.ID && !test.Active:
				return inactiveEntry()
			case line.TestID != test.ID:
				line.UnitPrice = capturedPrice(in, test.Price)
			case in.UnitPrice != nil:
				line.UnitPrice = in.UnitPrice.Round(2)
			}
			line.TestID = test.ID
			line.Test = *test
			line.Quantity = in.Quantity
			return nil
		}
		return repositories.ErrNotFound
	})
}

func (s *PathologyBillService) RemoveItem(ctx context.Context, billID, lineID uint) (*models.PathologyBill, error) {
	return s.mutate(ctx, billID, func(bill *models.PathologyBill) error {
		for i, line := range bill.Items {
			if line.ID == lineID {
				bill.Items = append(bill.Items[:i], bill.Items[i+1:]...)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

// AddReport records an uploaded report reference against a bill.
func (s *PathologyBillService) AddReport(ctx context.Context, billID uint, in models.ReportInput) (*models.PathologyReport, error) {
	if err := utils.ValidateReport(in); err != nil {
		return nil, err
	}
	report := &models.PathologyReport{BillID: billID, ReportFile: in.ReportFile}
	if err := s.bills.AddReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *PathologyBillService) Reports(ctx context.Context, billID uint) ([]models.PathologyReport, error) {
	if _, err := s.bills.GetByID(ctx, billID); err != nil {
		return nil, err
	}
	return s.bills.Reports(ctx, billID)
}

func (s *PathologyBillService) Delete(ctx context.Context, id uint) error {
	return s.bills.Delete(ctx, id)
}

func (s *PathologyBillService) mutate(ctx context.Context, id uint, fn func(bill *models.PathologyBill) error) (*models.PathologyBill, error) {
	var out *models.PathologyBill
	err := withRetry(ctx, func() error {
		var err error
		out, err = s.bills.Mutate(ctx, id, func(bill *models.PathologyBill) error {
			if err := fn(bill); err != nil {
				return err
			}
			recomputePathology(bill)
			return utils.CheckBillTotals(bill.Totals())
		})
		return err
	})
	return out, err
}

func recomputePathology(bill *models.PathologyBill) {
	bill.ApplyTotals(billing.Recompute(bill.Items, bill.Discount, bill.PaidAmount))
}
