package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/config"
	"github.com/Sanjeev1695/billing-software/internal/db"
	"github.com/Sanjeev1695/billing-software/internal/models"
)

// IBillService defines the interface for bill composition and maintenance.
type IBillService interface {
	CreateBill(ctx context.Context, req BillCreate) (*models.Bill, error)
	GetBill(ctx context.Context, billID string) (*models.Bill, error)
	ListBills(ctx context.Context, filter BillFilter) ([]models.Bill, error)
	UpdateBill(ctx context.Context, billID string, upd BillUpdate) (*models.Bill, error)
	DeleteBill(ctx context.Context, billID string) error
}

const (
	billsCollection    = "bills"
	paymentsCollection = "payments"
)

// BillCreate carries the fields for a new bill. TotalAmount is taken from the
// caller as-is; line subtotals and profits are recomputed server-side.
type BillCreate struct {
	Items         []models.BillLineItem
	PricingMode   string
	TotalAmount   float64
	AmountPaid    float64
	BillType      string
	CustomerName  string
	CustomerPhone string
}

// BillUpdate carries a partial update; nil fields are left untouched.
// bill_number is immutable and deliberately absent.
type BillUpdate struct {
	Items         *[]models.BillLineItem
	PricingMode   *string
	TotalAmount   *float64
	AmountPaid    *float64
	BillType      *string
	CustomerName  *string
	CustomerPhone *string
}

// BillFilter narrows ListBills. Zero values mean "no constraint".
type BillFilter struct {
	BillType      string
	CustomerPhone string
	Search        string // case-insensitive match on bill_number or customer_name
	Start         *time.Time
	End           *time.Time
	Limit         int
}

// billService implements IBillService.
type billService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewBillService creates a new BillService.
func NewBillService(database *mongo.Database, cfg *config.Config) IBillService {
	return &billService{db: database, cfg: cfg}
}

// normalizeLineItems recomputes subtotal and profit for every line from its
// prices and quantity, refusing non-positive quantities. Caller-supplied
// values for the derived fields are ignored.
func normalizeLineItems(items []models.BillLineItem) ([]models.BillLineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: bill requires at least one line item", apperr.ErrInvalidInput)
	}
	out := make([]models.BillLineItem, len(items))
	for i, it := range items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for item %q", apperr.ErrInvalidInput, it.ItemName)
		}
		it.Subtotal = it.SalePrice * float64(it.Quantity)
		it.Profit = (it.SalePrice - it.CostPrice) * float64(it.Quantity)
		out[i] = it
	}
	return out, nil
}

func sumProfit(items []models.BillLineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Profit
	}
	return total
}

// formatBillNumber renders the day-scoped human-readable number. Sequences
// past 999 simply grow beyond three digits.
func formatBillNumber(day time.Time, seq int) string {
	return fmt.Sprintf("BILL-%s-%03d", day.UTC().Format("20060102"), seq)
}

// utcDayWindow returns [start of the UTC day containing t, start of next day).
func utcDayWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// nextBillNumber counts the bills created today and proposes the next number.
// This is count-then-use, not an atomic counter; the unique bill_number index
// plus the retry in CreateBill turns a concurrent collision into a recount.
func (s *billService) nextBillNumber(ctx context.Context, now time.Time) (string, error) {
	dayStart, dayEnd := utcDayWindow(now)
	count, err := s.db.Collection(billsCollection).CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": dayStart, "$lt": dayEnd},
	})
	if err != nil {
		return "", fmt.Errorf("failed to count today's bills: %w", err)
	}
	return formatBillNumber(now, int(count)+1), nil
}

// CreateBill validates and materializes a bill, assigns its number and
// persists it. For credit bills with a customer name, the name is back-filled
// onto all existing credit bills for the same phone number first (a
// correction propagation, not a balance merge).
func (s *billService) CreateBill(ctx context.Context, req BillCreate) (*models.Bill, error) {
	if req.BillType != models.BillTypePaid && req.BillType != models.BillTypeCredit {
		return nil, fmt.Errorf("%w: unknown bill_type %q", apperr.ErrInvalidInput, req.BillType)
	}
	if req.PricingMode != models.PricingModeCustomer && req.PricingMode != models.PricingModeCarpenter {
		return nil, fmt.Errorf("%w: unknown pricing_mode %q", apperr.ErrInvalidInput, req.PricingMode)
	}

	items, err := normalizeLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	var remaining *float64
	if req.BillType == models.BillTypeCredit {
		if req.AmountPaid > req.TotalAmount {
			return nil, fmt.Errorf("%w: amount_paid %.2f exceeds total_amount %.2f", apperr.ErrInvalidInput, req.AmountPaid, req.TotalAmount)
		}
		balance := req.TotalAmount - req.AmountPaid
		remaining = &balance

		if req.CustomerPhone != "" && req.CustomerName != "" {
			// Propagate the (possibly corrected) name to this customer's
			// existing credit bills so the credit ledger groups cleanly.
			_, err := s.db.Collection(billsCollection).UpdateMany(ctx,
				bson.M{"bill_type": models.BillTypeCredit, "customer_phone": req.CustomerPhone},
				bson.M{"$set": bson.M{"customer_name": req.CustomerName}},
			)
			if err != nil {
				return nil, fmt.Errorf("failed to back-fill customer name for %s: %w", req.CustomerPhone, err)
			}
		}
	}

	collection := s.db.Collection(billsCollection)
	var bill *models.Bill

	operation := func() error {
		now := time.Now().UTC()
		billNumber, err := s.nextBillNumber(ctx, now)
		if err != nil {
			return err
		}
		bill = &models.Bill{
			Base:             models.NewBase(),
			BillNumber:       billNumber,
			Items:            items,
			PricingMode:      req.PricingMode,
			TotalAmount:      req.TotalAmount,
			AmountPaid:       req.AmountPaid,
			Profit:           sumProfit(items),
			BillType:         req.BillType,
			CustomerName:     req.CustomerName,
			CustomerPhone:    req.CustomerPhone,
			RemainingBalance: remaining,
		}
		_, err = collection.InsertOne(ctx, bill)
		return err
	}

	if err := db.Try(operation); err != nil {
		return nil, fmt.Errorf("failed to insert bill: %w", err)
	}
	return bill, nil
}

// GetBill retrieves a bill by id.
func (s *billService) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.Collection(billsCollection).FindOne(ctx, bson.M{"_id": billID}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: bill %s", apperr.ErrNotFound, billID)
		}
		return nil, fmt.Errorf("error finding bill %s: %w", billID, err)
	}
	return &bill, nil
}

// ListBills returns bills newest first, optionally narrowed by type, phone,
// a search term and a created_at window.
func (s *billService) ListBills(ctx context.Context, filter BillFilter) ([]models.Bill, error) {
	query := bson.M{}
	if filter.BillType != "" {
		query["bill_type"] = filter.BillType
	}
	if filter.CustomerPhone != "" {
		query["customer_phone"] = filter.CustomerPhone
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = []bson.M{
			{"bill_number": regex},
			{"customer_name": regex},
		}
	}
	created := bson.M{}
	if filter.Start != nil {
		created["$gte"] = filter.Start.UTC()
	}
	if filter.End != nil {
		created["$lt"] = filter.End.UTC()
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	limit := filter.Limit
	if limit <= 0 || limit > s.cfg.MaxListLimit {
		limit = s.cfg.MaxListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.db.Collection(billsCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []models.Bill
	if err = cursor.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}
	return bills, nil
}

// UpdateBill overlays the supplied fields on the stored bill and recomputes
// the derived fields from the merged result: profit from the (possibly new)
// item list, remaining_balance from the merged totals when the merged bill is
// credit, cleared when it is paid.
func (s *billService) UpdateBill(ctx context.Context, billID string, upd BillUpdate) (*models.Bill, error) {
	bill, err := s.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	if upd.Items != nil {
		items, err := normalizeLineItems(*upd.Items)
		if err != nil {
			return nil, err
		}
		bill.Items = items
	}
	if upd.PricingMode != nil {
		if *upd.PricingMode != models.PricingModeCustomer && *upd.PricingMode != models.PricingModeCarpenter {
			return nil, fmt.Errorf("%w: unknown pricing_mode %q", apperr.ErrInvalidInput, *upd.PricingMode)
		}
		bill.PricingMode = *upd.PricingMode
	}
	if upd.TotalAmount != nil {
		bill.TotalAmount = *upd.TotalAmount
	}
	if upd.AmountPaid != nil {
		bill.AmountPaid = *upd.AmountPaid
	}
	if upd.BillType != nil {
		if *upd.BillType != models.BillTypePaid && *upd.BillType != models.BillTypeCredit {
			return nil, fmt.Errorf("%w: unknown bill_type %q", apperr.ErrInvalidInput, *upd.BillType)
		}
		bill.BillType = *upd.BillType
	}
	if upd.CustomerName != nil {
		bill.CustomerName = *upd.CustomerName
	}
	if upd.CustomerPhone != nil {
		bill.CustomerPhone = *upd.CustomerPhone
	}

	bill.Profit = sumProfit(bill.Items)
	if bill.IsCredit() {
		if bill.AmountPaid > bill.TotalAmount {
			return nil, fmt.Errorf("%w: amount_paid %.2f exceeds total_amount %.2f", apperr.ErrInvalidInput, bill.AmountPaid, bill.TotalAmount)
		}
		balance := bill.TotalAmount - bill.AmountPaid
		bill.RemainingBalance = &balance
	} else {
		bill.RemainingBalance = nil
	}
	bill.UpdatedAt = time.Now().UTC()

	result, err := s.db.Collection(billsCollection).ReplaceOne(ctx, bson.M{"_id": billID}, bill)
	if err != nil {
		return nil, fmt.Errorf("db error updating bill %s: %w", billID, err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: bill %s", apperr.ErrNotFound, billID)
	}
	return bill, nil
}

// DeleteBill hard-deletes a bill and its payment history. Keeping payments
// for a bill that no longer exists has no meaning in this system.
func (s *billService) DeleteBill(ctx context.Context, billID string) error {
	result, err := s.db.Collection(billsCollection).DeleteOne(ctx, bson.M{"_id": billID})
	if err != nil {
		return fmt.Errorf("db error deleting bill %s: %w", billID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: bill %s", apperr.ErrNotFound, billID)
	}
	if _, err := s.db.Collection(paymentsCollection).DeleteMany(ctx, bson.M{"bill_id": billID}); err != nil {
		return fmt.Errorf("failed to delete payments for bill %s: %w", billID, err)
	}
	return nil
}
