package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildFilter translates a BookingFilter into a Mongo query document.
func buildFilter(f models.BookingFilter) bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["userId"] = f.UserID
	}
	switch {
	case f.SalonID != "" && f.SalonIDs != nil:
		// Scoped caller asking for one salon: the salon must be in scope.
		if contains(f.SalonIDs, f.SalonID) {
			q["salonId"] = f.SalonID
		} else {
			q["salonId"] = bson.M{"$in": []string{}}
		}
	case f.SalonID != "":
		q["salonId"] = f.SalonID
	case f.SalonIDs != nil:
		q["salonId"] = bson.M{"$in": f.SalonIDs}
	}

	switch f.Range {
	case models.RangeUpcoming:
		q["date"] = bson.M{"$gte": f.Today}
	case models.RangePast:
		q["date"] = bson.M{"$lt": f.Today}
	}

	switch f.Status {
	case models.FilterActive:
		q["status"] = models.StatusPending
	case models.FilterCompleted:
		q["status"] = models.StatusCompleted
	case models.FilterCanceled:
		q["status"] = models.StatusCanceled
	}

	if !f.IncludeDeleted {
		q["isDeleted"] = bson.M{"$ne": true}
	}
	return q
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var listSort = bson.D{{Key: "startsAt", Value: 1}, {Key: "id", Value: 1}}

// List returns one page of bookings ordered by appointment time.
func (r *MongoBookingRepo) List(ctx context.Context, filter models.BookingFilter, page models.Page) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	page = page.Normalize()
	q := buildFilter(filter)

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(listSort).
		SetSkip(page.Skip()).
		SetLimit(int64(page.PageSize))

	cursor, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("booking cursor failed: %w", err)
	}
	return bookings, total, nil
}

// Iterate walks every matching booking in appointment order. Each call opens
// a fresh cursor, so a walk can be restarted by calling Iterate again.
func (r *MongoBookingRepo) Iterate(ctx context.Context, filter models.BookingFilter, fn func(*models.Booking) error) error {
	cursor, err := r.coll.Find(ctx, buildFilter(filter), options.Find().SetSort(listSort).SetBatchSize(100))
	if err != nil {
		return fmt.Errorf("failed to open booking cursor: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return fmt.Errorf("failed to decode booking: %w", err)
		}
		if err := fn(&b); err != nil {
			return err
		}
	}
	return cursor.Err()
}
