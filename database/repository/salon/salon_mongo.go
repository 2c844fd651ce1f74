package salonRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoSalonRepo implements SalonRepository using MongoDB.
type MongoSalonRepo struct {
	coll *mongo.Collection
}

// NewMongoSalonRepo creates a new instance of SalonRepository using MongoDB.
func NewMongoSalonRepo(db *mongo.Database) *MongoSalonRepo {
	repo := &MongoSalonRepo{coll: db.Collection("salons")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("failed to create salon indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoSalonRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "name", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a salon by its unique ID.
func (r *MongoSalonRepo) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var salon models.Salon
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&salon); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch salon with id %s: %w", id, err)
	}
	return &salon, nil
}

// ListApproved retrieves approved salons for public browsing.
func (r *MongoSalonRepo) ListApproved(ctx context.Context) ([]models.Salon, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"approved": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve salons: %w", err)
	}
	defer cursor.Close(ctx)

	salons := []models.Salon{}
	if err := cursor.All(ctx, &salons); err != nil {
		return nil, fmt.Errorf("failed to decode salons: %w", err)
	}
	return salons, nil
}

// IDsByOwner returns the ids of every salon the owner manages.
func (r *MongoSalonRepo) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve salons for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var s struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode salon: %w", err)
		}
		ids = append(ids, s.ID)
	}
	return ids, cursor.Err()
}

// Create inserts a new salon document.
func (r *MongoSalonRepo) Create(ctx context.Context, salon *models.Salon) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	salon.CreatedAt = now
	salon.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, salon); err != nil {
		return fmt.Errorf("failed to create salon: %w", err)
	}
	return nil
}

// UpdateServices replaces the catalogue and returns the updated salon.
func (r *MongoSalonRepo) UpdateServices(ctx context.Context, id string, services []models.SalonService) (*models.Salon, error) {
	return r.update(ctx, id, bson.M{"services": services})
}

// SetApproval toggles the moderation flag.
func (r *MongoSalonRepo) SetApproval(ctx context.Context, id string, approved bool) (*models.Salon, error) {
	return r.update(ctx, id, bson.M{"approved": approved})
}

func (r *MongoSalonRepo) update(ctx context.Context, id string, set bson.M) (*models.Salon, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var salon models.Salon
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&salon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update salon with id %s: %w", id, err)
	}
	return &salon, nil
}
