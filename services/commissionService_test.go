package services

import (
	"context"
	"testing"

	"HospitalMgmt/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommissions struct {
	records []models.CommissionRecord
}

func (f *fakeCommissions) Create(_ context.Context, record *models.CommissionRecord) error {
	record.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeCommissions) GetAll(context.Context) ([]models.CommissionRecord, error) {
	return f.records, nil
}

func (f *fakeCommissions) ByStaff(_ context.Context, staffID uint) ([]models.CommissionRecord, error) {
	var out []models.CommissionRecord
	for _, r := range f.records {
		if r.StaffID == staffID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestCommissionService_RecordAndList(t *testing.T) {
	store := &fakeCommissions{}
	svc := NewCommissionService(store)
	ctx := context.Background()

	_, err := svc.Record(ctx, models.CommissionInput{StaffID: 1, Role: models.CommissionDoctor, BillReference: "202501-0001", Amount: dec("50")})
	require.NoError(t, err)
	_, err = svc.Record(ctx, models.CommissionInput{StaffID: 2, Role: models.CommissionPathologist, BillReference: "202501-0002", Amount: dec("65")})
	require.NoError(t, err)

	_, err = svc.Record(ctx, models.CommissionInput{StaffID: 2, Role: "nurse", BillReference: "x", Amount: dec("1")})
	assert.Error(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	staff := uint(2)
	mine, err := svc.List(ctx, &staff)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "65.00", mine[0].Amount.StringFixed(2))
}

func TestDashboardService_Summary(t *testing.T) {
	f := newOPDFixture()
	_, err := f.svc.Create(context.Background(), models.BillInput{PatientID: 1}, nil)
	require.NoError(t, err)

	svc := NewDashboardService(fixedCount(4), f.bills, newFakePathologyBills())
	d, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Dashboard{TotalPatients: 4, TotalOPDBills: 1}, d)
}

type fixedCount int64

func (c fixedCount) Count(context.Context) (int64, error) {
	return int64(c), nil
}
