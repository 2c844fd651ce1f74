package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Transition performs a conditional status update keyed on the expected
// current status, so two concurrent transitions can never both apply.
// Soft-deleted bookings never match.
func (r *MongoBookingRepo) Transition(ctx context.Context, id string, from, to models.BookingStatus, set bson.M) (*models.Booking, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("transition %s -> %s: %w", from, to, ErrStatusConflict)
	}

	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":        id,
		"status":    from,
		"isDeleted": bson.M{"$ne": true},
	}
	fields := bson.M{"status": to, "updatedAt": r.now()}
	for k, v := range set {
		fields[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to transition booking %s: %w", id, err)
	}

	// Nothing matched: tell a missing booking apart from a lost race.
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id, "isDeleted": bson.M{"$ne": true}})
	if err != nil {
		return nil, fmt.Errorf("failed to re-check booking %s: %w", id, err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrStatusConflict
}
