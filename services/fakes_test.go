package services

import (
	"context"
	"sync"

	"HospitalMgmt/billing"
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
)

type memoryCounter struct {
	values map[string]int64
}

func (c *memoryCounter) Increment(_ context.Context, key string) (int64, error) {
	c.values[key]++
	return c.values[key], nil
}

// fakeOPDBills mimics the gorm repository: it allocates numbers, checks the
// totals and restores the invoice number after a mutation.
type fakeOPDBills struct {
	mu        sync.Mutex
	bills     map[uint]models.OPDBill
	counter   *memoryCounter
	nextID    uint
	nextLine  uint
	retryable int
	creates   int
}

func newFakeOPDBills() *fakeOPDBills {
	return &fakeOPDBills{bills: map[uint]models.OPDBill{}, counter: &memoryCounter{values: map[string]int64{}}}
}

func (f *fakeOPDBills) Create(ctx context.Context, bill *models.OPDBill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.retryable > 0 {
		f.retryable--
		return repositories.ErrRetryable
	}
	if !models.TotalsMatch[models.OPDLineItem](bill.Base(), nil) {
		return repositories.ErrStaleTotals
	}
	number, err := billing.NextInvoiceNumber(ctx, f.counter, bill.BillingTime())
	if err != nil {
		return err
	}
	f.nextID++
	bill.ID = f.nextID
	bill.InvoiceNumber = number
	f.bills[bill.ID] = copyOPD(*bill)
	return nil
}

func (f *fakeOPDBills) GetByID(_ context.Context, id uint) (*models.OPDBill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bill, ok := f.bills[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := copyOPD(bill)
	return &out, nil
}

func (f *fakeOPDBills) GetAll(context.Context) ([]models.OPDBill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.OPDBill
	for _, bill := range f.bills {
		out = append(out, copyOPD(bill))
	}
	return out, nil
}

func (f *fakeOPDBills) Mutate(_ context.Context, id uint, fn func(bill *models.OPDBill) error) (*models.OPDBill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bills[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	bill := copyOPD(stored)
	if err := fn(&bill); err != nil {
		return nil, err
	}
	bill.ID = id
	bill.InvoiceNumber = stored.InvoiceNumber
	if !models.TotalsMatch(bill.Base(), bill.Items) {
		return nil, repositories.ErrStaleTotals
	}
	for i := range bill.Items {
		if bill.Items[i].ID == 0 {
			f.nextLine++
			bill.Items[i].ID = f.nextLine
		}
	}
	f.bills[id] = copyOPD(bill)
	out := copyOPD(bill)
	return &out, nil
}

func (f *fakeOPDBills) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bills[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.bills, id)
	return nil
}

func (f *fakeOPDBills) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bills)), nil
}

func copyOPD(bill models.OPDBill) models.OPDBill {
	bill.Items = append([]models.OPDLineItem(nil), bill.Items...)
	return bill
}

type fakePathologyBills struct {
	mu       sync.Mutex
	bills    map[uint]models.PathologyBill
	reports  map[uint][]models.PathologyReport
	counter  *memoryCounter
	nextID   uint
	nextLine uint
}

func newFakePathologyBills() *fakePathologyBills {
	return &fakePathologyBills{
		bills:   map[uint]models.PathologyBill{},
		reports: map[uint][]models.PathologyReport{},
		counter: &memoryCounter{values: map[string]int64{}},
	}
}

func (f *fakePathologyBills) Create(ctx context.Context, bill *models.PathologyBill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	number, err := billing.NextInvoiceNumber(ctx, f.counter, bill.BillingTime())
	if err != nil {
		return err
	}
	f.nextID++
	bill.ID = f.nextID
	bill.InvoiceNumber = number
	f.bills[bill.ID] = copyPathology(*bill)
	return nil
}

func (f *fakePathologyBills) GetByID(_ context.Context, id uint) (*models.PathologyBill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bill, ok := f.bills[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := copyPathology(bill)
	return &out, nil
}

func (f *fakePathologyBills) GetAll(context.Context) ([]models.PathologyBill, error) {
	return nil, nil
}

func (f *fakePathologyBills) Mutate(_ context.Context, id uint, fn func(bill *models.PathologyBill) error) (*models.PathologyBill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bills[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	bill := copyPathology(stored)
	if err := fn(&bill); err != nil {
		return nil, err
	}
	bill.InvoiceNumber = stored.InvoiceNumber
	if !models.TotalsMatch(bill.Base(), bill.Items) {
		return nil, repositories.ErrStaleTotals
	}
	for i := range bill.Items {
		if bill.Items[i].ID == 0 {
			f.nextLine++
			bill.Items[i].ID = f.nextLine
		}
	}
	f.bills[id] = copyPathology(bill)
	out := copyPathology(bill)
	return &out, nil
}

func (f *fakePathologyBills) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bills, id)
	delete(f.reports, id)
	return nil
}

func (f *fakePathologyBills) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bills)), nil
}

func (f *fakePathologyBills) AddReport(_ context.Context, report *models.PathologyReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bills[report.BillID]; !ok {
		return repositories.ErrNotFound
	}
	report.ID = uint(len(f.reports[report.BillID]) + 1)
	f.reports[report.BillID] = append(f.reports[report.BillID], *report)
	return nil
}

func (f *fakePathologyBills) Reports(_ context.Context, billID uint) ([]models.PathologyReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PathologyReport(nil), f.reports[billID]...), nil
}

func copyPathology(bill models.PathologyBill) models.PathologyBill {
	bill.Items = append([]models.PathologyLineItem(nil), bill.Items...)
	return bill
}

// fakeCatalog is an in-memory CatalogStore.
type fakeCatalog[T any, P repositories.CatalogEntry[T]] struct {
	entries map[uint]*T
	inUse   map[uint]bool
	nextID  uint
}

func newFakeCatalog[T any, P repositories.CatalogEntry[T]](entries ...*T) *fakeCatalog[T, P] {
	f := &fakeCatalog[T, P]{entries: map[uint]*T{}, inUse: map[uint]bool{}}
	for _, entry := range entries {
		f.nextID++
		P(entry).Entry().ID = f.nextID
		f.entries[f.nextID] = entry
	}
	return f
}

func (f *fakeCatalog[T, P]) Create(_ context.Context, entry *T) error {
	f.nextID++
	P(entry).Entry().ID = f.nextID
	stored := *entry
	f.entries[f.nextID] = &stored
	return nil
}

func (f *fakeCatalog[T, P]) GetByID(_ context.Context, id uint) (*T, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *entry
	return &out, nil
}

func (f *fakeCatalog[T, P]) GetAll(context.Context) ([]T, error) {
	var out []T
	for _, entry := range f.entries {
		out = append(out, *entry)
	}
	return out, nil
}

func (f *fakeCatalog[T, P]) Update(_ context.Context, entry *T) error {
	id := P(entry).Entry().ID
	if _, ok := f.entries[id]; !ok {
		return repositories.ErrNotFound
	}
	stored := *entry
	f.entries[id] = &stored
	return nil
}

func (f *fakeCatalog[T, P]) Delete(_ context.Context, id uint) error {
	if f.inUse[id] {
		return repositories.ErrInUse
	}
	if _, ok := f.entries[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.entries, id)
	return nil
}
