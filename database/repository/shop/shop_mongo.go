package shopRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"wrenchly/models"
)

// ErrNotFound is returned when no shop matches the query.
var ErrNotFound = errors.New("shop not found")

func (r *mongoShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	shop.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, shop)
	return err
}

func (r *mongoShopRepo) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	err := r.coll.FindOne(ctx, bson.M{"id": shopID}).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *mongoShopRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	err := r.coll.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *mongoShopRepo) UpdateProfile(ctx context.Context, shop *models.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":            shop.Name,
		"address":         shop.Address,
		"phone":           shop.Phone,
		"description":     shop.Description,
		"slotGranularity": shop.SlotGranularity,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": shop.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoShopRepo) UpdateWorkingHours(ctx context.Context, shopID string, hours []models.WorkingHours) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": shopID},
		bson.M{"$set": bson.M{"workingHours": hours}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoShopRepo) UpdateFCMToken(ctx context.Context, shopID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": shopID},
		bson.M{"$set": bson.M{"fcmToken": token}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
