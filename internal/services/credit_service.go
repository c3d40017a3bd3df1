package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/models"
)

// ICreditService defines the interface for the credit ledger.
type ICreditService interface {
	ApplyPayment(ctx context.Context, billID string, amount float64, notes string) (*models.Payment, error)
	ListCreditCustomers(ctx context.Context) ([]models.CreditCustomer, error)
	ListPayments(ctx context.Context, customerPhone string) ([]models.Payment, error)
}

// creditService implements ICreditService.
type creditService struct {
	db *mongo.Database
}

// NewCreditService creates a new CreditService.
func NewCreditService(database *mongo.Database) ICreditService {
	return &creditService{db: database}
}

// ApplyPayment applies a payment against a credit bill and records an
// immutable ledger entry. The balance update is a single conditional update
// whose filter requires remaining_balance >= amount, so two concurrent
// payments can never jointly overdraw: the loser's filter no longer matches.
// The payment record is inserted only after the balance moves; a crash
// between the two writes can lose a history entry but never leaves a payment
// recorded against an undecremented balance.
func (s *creditService) ApplyPayment(ctx context.Context, billID string, amount float64, notes string) (*models.Payment, error) {
	var bill models.Bill
	err := s.db.Collection(billsCollection).FindOne(ctx, bson.M{"_id": billID}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: bill %s", apperr.ErrNotFound, billID)
		}
		return nil, fmt.Errorf("error finding bill %s: %w", billID, err)
	}

	if !bill.IsCredit() {
		return nil, fmt.Errorf("%w: bill %s is not a credit bill", apperr.ErrInvalidOperation, billID)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperr.ErrInvalidInput)
	}
	var balance float64
	if bill.RemainingBalance != nil {
		balance = *bill.RemainingBalance
	}
	if amount > balance {
		return nil, fmt.Errorf("%w: payment %.2f exceeds remaining balance %.2f", apperr.ErrInvalidInput, amount, balance)
	}

	now := time.Now().UTC()
	result, err := s.db.Collection(billsCollection).UpdateOne(ctx,
		bson.M{
			"_id":               billID,
			"bill_type":         models.BillTypeCredit,
			"remaining_balance": bson.M{"$gte": amount},
		},
		bson.M{
			"$inc": bson.M{"amount_paid": amount, "remaining_balance": -amount},
			"$set": bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("db error applying payment to bill %s: %w", billID, err)
	}
	if result.MatchedCount == 0 {
		// Lost a race: the balance moved between the read and the update.
		return nil, fmt.Errorf("%w: payment %.2f exceeds remaining balance", apperr.ErrInvalidInput, amount)
	}

	payment := &models.Payment{
		ID:            uuid.NewString(),
		BillID:        billID,
		CustomerPhone: bill.CustomerPhone,
		CustomerName:  bill.CustomerName,
		Amount:        amount,
		PaymentDate:   now,
		Notes:         notes,
	}
	if _, err := s.db.Collection(paymentsCollection).InsertOne(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment for bill %s: %w", billID, err)
	}
	return payment, nil
}

// ListCreditCustomers groups open credit bills by phone number and returns
// the aggregates sorted by outstanding balance, largest first. Customers
// whose summed balance has reached zero are excluded.
func (s *creditService) ListCreditCustomers(ctx context.Context) ([]models.CreditCustomer, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"bill_type":      models.BillTypeCredit,
			"customer_phone": bson.M{"$exists": true, "$nin": bson.A{nil, ""}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":               "$customer_phone",
			"customer_name":     bson.M{"$first": "$customer_name"},
			"total_amount":      bson.M{"$sum": "$total_amount"},
			"paid_amount":       bson.M{"$sum": "$amount_paid"},
			"remaining_balance": bson.M{"$sum": "$remaining_balance"},
			"last_payment_date": bson.M{"$max": "$updated_at"},
			"bill_count":        bson.M{"$sum": 1},
			"bills":             bson.M{"$push": "$_id"},
		}}},
		{{Key: "$match", Value: bson.M{"remaining_balance": bson.M{"$gt": 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "remaining_balance", Value: -1}}}},
	}

	cursor, err := s.db.Collection(billsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate credit customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.CreditCustomer
	if err = cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode credit customers: %w", err)
	}
	return customers, nil
}

// ListPayments returns a customer's payment history, newest first.
func (s *creditService) ListPayments(ctx context.Context, customerPhone string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "payment_date", Value: -1}})
	cursor, err := s.db.Collection(paymentsCollection).Find(ctx, bson.M{"customer_phone": customerPhone}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for %s: %w", customerPhone, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}
