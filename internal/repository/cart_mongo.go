package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sarab71/fossnflories/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// Concurrent adds that lose a race on the unique user_id index retry the
// merge/append pair. Each losing attempt means another writer committed, so
// one extra pass normally settles it.
const maxAddItemAttempts = 3

// AddItem merges the item into the cart using single atomic update commands.
// Two concurrent adds for the same owner can never produce two lines for the
// same product or clobber each other's quantity.
func (m *mongoCartRepository) AddItem(ctx context.Context, userID string, item domain.CartItem) error {
	now := time.Now()
	item.AddedAt = now

	mergeFilter := bson.M{
		"user_id":          userID,
		"items.product_id": item.ProductID,
	}
	mergeUpdate := bson.M{
		"$inc": bson.M{"items.$.quantity": item.Quantity},
		"$set": bson.M{"updated_at": now},
	}

	appendFilter := bson.M{
		"user_id":          userID,
		"items.product_id": bson.M{"$ne": item.ProductID},
	}
	appendUpdate := bson.M{
		"$push":        bson.M{"items": item},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	for attempt := 0; attempt < maxAddItemAttempts; attempt++ {
		// Merge path: a line for this product already exists, bump its
		// quantity.
		res, err := m.collection.UpdateOne(ctx, mergeFilter, mergeUpdate)
		if err != nil {
			return fmt.Errorf("failed to merge cart line: %w", err)
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// Append path: no line for this product yet. The $ne guard keeps a
		// concurrent add from pushing a second line for the same product,
		// and the upsert creates the cart lazily on first add.
		_, err = m.collection.UpdateOne(ctx, appendFilter, appendUpdate, opts)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to append cart line: %w", err)
		}
		// Lost the upsert race: either a concurrent first-add created the
		// cart, or a concurrent add pushed this product between the two
		// commands. The line or the cart exists now, so the next merge
		// pass picks it up.
	}

	return fmt.Errorf("failed to add cart line for product %s: concurrent updates kept winning", item.ProductID)
}

// UpdateItemQuantity overwrites the quantity of an existing line. A quantity
// of zero or less removes the line entirely; a line is never kept at zero.
func (m *mongoCartRepository) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) error {
	filter := bson.M{
		"user_id":          userID,
		"items.product_id": productID,
	}

	if quantity <= 0 {
		update := bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now()},
		}
		result, err := m.collection.UpdateOne(ctx, filter, update)
		if err != nil {
			return fmt.Errorf("failed to remove cart line: %w", err)
		}
		if result.MatchedCount == 0 {
			return ErrItemNotFound
		}
		return nil
	}

	update := bson.M{
		"$set": bson.M{
			"items.$[elem].quantity": quantity,
			"updated_at":             time.Now(),
		},
	}

	arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.product_id": productID},
		},
	})

	result, err := m.collection.UpdateOne(ctx, filter, update, arrayFilters)
	if err != nil {
		return fmt.Errorf("failed to update item quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$pull": bson.M{
			"items": bson.M{"product_id": productID},
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

func (m *mongoCartRepository) DeleteCart(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
