package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/models"
)

func TestNormalizeLineItems_RecomputesDerivedFields(t *testing.T) {
	items, err := normalizeLineItems([]models.BillLineItem{
		{ItemName: "Hinge", CostPrice: 100, SalePrice: 150, Quantity: 2, Subtotal: 999, Profit: -5},
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, items[0].Subtotal)
	assert.Equal(t, 100.0, items[0].Profit)
}

func TestNormalizeLineItems_RejectsBadInput(t *testing.T) {
	_, err := normalizeLineItems(nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = normalizeLineItems([]models.BillLineItem{{ItemName: "Hinge", Quantity: 0}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = normalizeLineItems([]models.BillLineItem{{ItemName: "Hinge", Quantity: -3}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestFormatBillNumber(t *testing.T) {
	day := time.Date(2025, 2, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "BILL-20250215-001", formatBillNumber(day, 1))
	assert.Equal(t, "BILL-20250215-042", formatBillNumber(day, 42))
	// Past 999 the sequence grows beyond three digits
	assert.Equal(t, "BILL-20250215-1000", formatBillNumber(day, 1000))
}

func TestUtcDayWindow(t *testing.T) {
	start, end := utcDayWindow(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestBillService_CreateBill_Paid(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_create_paid")
	svc := NewBillService(db, testConfig())
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, BillCreate{
		Items: []models.BillLineItem{
			{ItemID: "item-1", ItemName: "Hinge", CostPrice: 100, SalePrice: 150, Quantity: 2},
		},
		PricingMode: models.PricingModeCustomer,
		TotalAmount: 300,
		AmountPaid:  300,
		BillType:    models.BillTypePaid,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, bill.Profit)
	assert.Nil(t, bill.RemainingBalance)
	assert.Equal(t, 300.0, bill.Items[0].Subtotal)
	today := time.Now().UTC().Format("20060102")
	assert.Equal(t, fmt.Sprintf("BILL-%s-001", today), bill.BillNumber)

	// The stored document matches what was returned
	got, err := svc.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.BillNumber, got.BillNumber)
	assert.Nil(t, got.RemainingBalance)
}

func TestBillService_SequentialBillNumbers(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_sequence")
	svc := NewBillService(db, testConfig())
	ctx := context.Background()

	today := time.Now().UTC().Format("20060102")
	for i := 1; i <= 3; i++ {
		bill, err := svc.CreateBill(ctx, BillCreate{
			Items:       []models.BillLineItem{{ItemName: "Hinge", CostPrice: 10, SalePrice: 15, Quantity: 1}},
			PricingMode: models.PricingModeCustomer,
			TotalAmount: 15,
			AmountPaid:  15,
			BillType:    models.BillTypePaid,
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("BILL-%s-%03d", today, i), bill.BillNumber)
	}
}

func TestBillService_CreateBill_Credit(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_create_credit")
	svc := NewBillService(db, testConfig())
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, BillCreate{
		Items:         []models.BillLineItem{{ItemName: "Plank", CostPrice: 100, SalePrice: 130, Quantity: 1}},
		PricingMode:   models.PricingModeCarpenter,
		TotalAmount:   130,
		AmountPaid:    65,
		BillType:      models.BillTypeCredit,
		CustomerName:  "Ravi",
		CustomerPhone: "9876543210",
	})
	require.NoError(t, err)

	require.NotNil(t, bill.RemainingBalance)
	assert.Equal(t, 65.0, *bill.RemainingBalance)
	assert.Equal(t, 30.0, bill.Profit)
}

func TestBillService_CreateBill_CreditOverpaidRejected(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_overpaid")
	svc := NewBillService(db, testConfig())

	_, err := svc.CreateBill(context.Background(), BillCreate{
		Items:       []models.BillLineItem{{ItemName: "Plank", CostPrice: 100, SalePrice: 130, Quantity: 1}},
		PricingMode: models.PricingModeCarpenter,
		TotalAmount: 130,
		AmountPaid:  200,
		BillType:    models.BillTypeCredit,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestBillService_CreateBill_BackfillsCustomerName(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_backfill")
	svc := NewBillService(db, testConfig())
	ctx := context.Background()

	first, err := svc.CreateBill(ctx, BillCreate{
		Items:         []models.BillLineItem{{ItemName: "Plank", CostPrice: 100, SalePrice: 130, Quantity: 1}},
		PricingMode:   models.PricingModeCarpenter,
		TotalAmount:   130,
		AmountPaid:    0,
		BillType:      models.BillTypeCredit,
		CustomerName:  "Rvi",
		CustomerPhone: "9876543210",
	})
	require.NoError(t, err)

	// Second bill for the same phone carries the corrected spelling
	_, err = svc.CreateBill(ctx, BillCreate{
		Items:         []models.BillLineItem{{ItemName: "Plank", CostPrice: 100, SalePrice: 130, Quantity: 1}},
		PricingMode:   models.PricingModeCarpenter,
		TotalAmount:   130,
		AmountPaid:    0,
		BillType:      models.BillTypeCredit,
		CustomerName:  "Ravi",
		CustomerPhone: "9876543210",
	})
	require.NoError(t, err)

	got, err := svc.GetBill(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", got.CustomerName)
}

func TestBillService_UpdateBill_RecomputesFromMergedState(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_update")
	svc := NewBillService(db, testConfig())
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, BillCreate{
		Items:         []models.BillLineItem{{ItemName: "Plank", CostPrice: 100, SalePrice: 130, Quantity: 1}},
		PricingMode:   models.PricingModeCarpenter,
		TotalAmount:   130,
		AmountPaid:    65,
		BillType:      models.BillTypeCredit,
		CustomerPhone: "9876543210",
	})
	require.NoError(t, err)

	// Changing amount_paid alone recomputes the balance from merged values
	paid := 100.0
	updated, err := svc.UpdateBill(ctx, bill.ID, BillUpdate{AmountPaid: &paid})
	require.NoError(t, err)
	require.NotNil(t, updated.RemainingBalance)
	assert.Equal(t, 30.0, *updated.RemainingBalance)
	assert.True(t, updated.UpdatedAt.After(bill.UpdatedAt))

	// Changing the item list recomputes profit
	newItems := []models.BillLineItem{
		{ItemName: "Plank", CostPrice: 100, SalePrice: 130, Quantity: 2},
	}
	updated, err = svc.UpdateBill(ctx, bill.ID, BillUpdate{Items: &newItems})
	require.NoError(t, err)
	assert.Equal(t, 60.0, updated.Profit)

	// Converting to paid clears the balance
	paidType := models.BillTypePaid
	updated, err = svc.UpdateBill(ctx, bill.ID, BillUpdate{BillType: &paidType})
	require.NoError(t, err)
	assert.Nil(t, updated.RemainingBalance)

	// Bill number never changes across updates
	assert.Equal(t, bill.BillNumber, updated.BillNumber)
}

func TestBillService_UpdateBill_NotFound(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_update_missing")
	svc := NewBillService(db, testConfig())

	total := 10.0
	_, err := svc.UpdateBill(context.Background(), "missing-id", BillUpdate{TotalAmount: &total})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBillService_DeleteBill_CascadesPayments(t *testing.T) {
	db := setupTestDB(t, "testdb_bill_delete")
	svc := NewBillService(db, testConfig())
	creditSvc := NewCreditService(db)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, BillCreate{
		Items:         []models.BillLineItem{{ItemName: "Plank", CostPrice: 100, SalePrice: 130, Quantity: 1}},
		PricingMode:   models.PricingModeCarpenter,
		TotalAmount:   130,
		AmountPaid:    0,
		BillType:      models.BillTypeCredit,
		CustomerPhone: "9876543210",
	})
	require.NoError(t, err)

	_, err = creditSvc.ApplyPayment(ctx, bill.ID, 50, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBill(ctx, bill.ID))

	_, err = svc.GetBill(ctx, bill.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	count, err := db.Collection(paymentsCollection).CountDocuments(ctx, bson.M{"bill_id": bill.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, svc.DeleteBill(ctx, bill.ID), apperr.ErrNotFound)
}
