package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/config"
	"github.com/Sanjeev1695/billing-software/internal/models"
)

// IItemService defines the interface for catalog operations.
type IItemService interface {
	CreateItem(ctx context.Context, req ItemCreate) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	SearchItems(ctx context.Context, query string) ([]models.Item, error)
	UpdateItem(ctx context.Context, itemID string, upd ItemUpdate) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
}

const (
	itemsCollection  = "items"
	itemListCacheKey = "cache:items:list"
)

// ItemCreate carries the fields for a new catalog item.
type ItemCreate struct {
	Name           string
	CostPrice      float64
	CustomerPrice  float64
	CarpenterPrice float64
}

// ItemUpdate carries a partial update; nil fields are left untouched.
type ItemUpdate struct {
	Name           *string
	CostPrice      *float64
	CustomerPrice  *float64
	CarpenterPrice *float64
}

// itemService implements IItemService.
type itemService struct {
	db  *mongo.Database
	cfg *config.Config
	rdb *redis.Client
}

// NewItemService creates a new ItemService.
func NewItemService(db *mongo.Database, cfg *config.Config, rdb *redis.Client) IItemService {
	return &itemService{db: db, cfg: cfg, rdb: rdb}
}

// CreateItem inserts a new catalog item.
func (s *itemService) CreateItem(ctx context.Context, req ItemCreate) (*models.Item, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", apperr.ErrInvalidInput)
	}

	item := &models.Item{
		Base:           models.NewBase(),
		Name:           req.Name,
		CostPrice:      req.CostPrice,
		CustomerPrice:  req.CustomerPrice,
		CarpenterPrice: req.CarpenterPrice,
	}
	if _, err := s.db.Collection(itemsCollection).InsertOne(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	s.invalidateCache(ctx)
	return item, nil
}

// ListItems returns the whole catalog sorted by name. The listing is cached
// in Redis with a short TTL; ledger aggregations are never cached, but the
// catalog is read on every billing screen and changes rarely.
func (s *itemService) ListItems(ctx context.Context) ([]models.Item, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, itemListCacheKey).Result(); err == nil {
			var items []models.Item
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("Item cache read failed: %v", err)
		}
	}

	collection := s.db.Collection(itemsCollection)
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(s.cfg.MaxListLimit))
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, itemListCacheKey, data, s.cfg.ItemCacheTTL).Err(); err != nil {
				log.Printf("Item cache write failed: %v", err)
			}
		}
	}
	return items, nil
}

// SearchItems performs a case-insensitive substring match on item names.
func (s *itemService) SearchItems(ctx context.Context, query string) ([]models.Item, error) {
	collection := s.db.Collection(itemsCollection)
	filter := bson.M{"name": bson.M{"$regex": query, "$options": "i"}}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(50)
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// UpdateItem applies only the supplied fields and refreshes updated_at.
func (s *itemService) UpdateItem(ctx context.Context, itemID string, upd ItemUpdate) (*models.Item, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: item name cannot be empty", apperr.ErrInvalidInput)
		}
		set["name"] = *upd.Name
	}
	if upd.CostPrice != nil {
		set["cost_price"] = *upd.CostPrice
	}
	if upd.CustomerPrice != nil {
		set["customer_price"] = *upd.CustomerPrice
	}
	if upd.CarpenterPrice != nil {
		set["carpenter_price"] = *upd.CarpenterPrice
	}

	collection := s.db.Collection(itemsCollection)
	result, err := collection.UpdateOne(ctx, bson.M{"_id": itemID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("db error updating item %s: %w", itemID, err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: item %s", apperr.ErrNotFound, itemID)
	}

	var item models.Item
	if err := collection.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to reload item %s: %w", itemID, err)
	}
	s.invalidateCache(ctx)
	return &item, nil
}

// DeleteItem hard-deletes a catalog item.
func (s *itemService) DeleteItem(ctx context.Context, itemID string) error {
	result, err := s.db.Collection(itemsCollection).DeleteOne(ctx, bson.M{"_id": itemID})
	if err != nil {
		return fmt.Errorf("db error deleting item %s: %w", itemID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: item %s", apperr.ErrNotFound, itemID)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *itemService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, itemListCacheKey).Err(); err != nil {
		log.Printf("Item cache invalidation failed: %v", err)
	}
}
