package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Sanjeev1695/billing-software/internal/models"
	"github.com/Sanjeev1695/billing-software/internal/services"
)

// --- Mocks ---

// MockItemService
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(ctx context.Context, req services.ItemCreate) (*models.Item, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemService) ListItems(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemService) SearchItems(ctx context.Context, query string) ([]models.Item, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, itemID string, upd services.ItemUpdate) (*models.Item, error) {
	args := m.Called(ctx, itemID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemService) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockBillService
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) CreateBill(ctx context.Context, req services.BillCreate) (*models.Bill, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

func (m *MockBillService) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

func (m *MockBillService) ListBills(ctx context.Context, filter services.BillFilter) ([]models.Bill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bill), args.Error(1)
}

func (m *MockBillService) UpdateBill(ctx context.Context, billID string, upd services.BillUpdate) (*models.Bill, error) {
	args := m.Called(ctx, billID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

func (m *MockBillService) DeleteBill(ctx context.Context, billID string) error {
	args := m.Called(ctx, billID)
	return args.Error(0)
}

// MockCreditService
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) ApplyPayment(ctx context.Context, billID string, amount float64, notes string) (*models.Payment, error) {
	args := m.Called(ctx, billID, amount, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockCreditService) ListCreditCustomers(ctx context.Context) ([]models.CreditCustomer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CreditCustomer), args.Error(1)
}

func (m *MockCreditService) ListPayments(ctx context.Context, customerPhone string) ([]models.Payment, error) {
	args := m.Called(ctx, customerPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

// MockAnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) DailyStats(ctx context.Context) (*services.DailyStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DailyStats), args.Error(1)
}

func (m *MockAnalyticsService) StatsForPeriod(ctx context.Context, period string, start, end *time.Time) (*services.PeriodStats, error) {
	args := m.Called(ctx, period, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PeriodStats), args.Error(1)
}

func (m *MockAnalyticsService) TopSellingItems(ctx context.Context, start, end *time.Time, limit int) ([]services.ItemSales, error) {
	args := m.Called(ctx, start, end, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ItemSales), args.Error(1)
}
