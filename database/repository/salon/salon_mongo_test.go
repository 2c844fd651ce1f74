package salonRepo

import (
	"context"
	"testing"

	"salonbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ns = "salonbook.salons"

func TestMongoSalonRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by id", func(mt *mtest.T) {
		repo := &MongoSalonRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "s1"},
			{Key: "ownerId", Value: "o1"},
			{Key: "name", Value: "Glow"},
			{Key: "approved", Value: true},
			{Key: "services", Value: bson.A{bson.D{{Key: "name", Value: "Haircut"}, {Key: "price", Value: 15.0}}}},
		}))

		salon, err := repo.GetByID(context.Background(), "s1")
		require.NoError(mt, err)
		assert.Equal(mt, "Glow", salon.Name)
		assert.True(mt, salon.Approved)
		require.Len(mt, salon.Services, 1)
		assert.Equal(mt, 15.0, salon.Services[0].Price)
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := &MongoSalonRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "s1")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("ids by owner", func(mt *mtest.T) {
		repo := &MongoSalonRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "id", Value: "s1"}},
			bson.D{{Key: "id", Value: "s2"}},
		))

		ids, err := repo.IDsByOwner(context.Background(), "o1")
		require.NoError(mt, err)
		assert.Equal(mt, []string{"s1", "s2"}, ids)
	})

	mt.Run("set approval missing", func(mt *mtest.T) {
		repo := &MongoSalonRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.SetApproval(context.Background(), "s1", true)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update services", func(mt *mtest.T) {
		repo := &MongoSalonRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "id", Value: "s1"},
			{Key: "services", Value: bson.A{bson.D{{Key: "name", Value: "Color"}, {Key: "price", Value: 40.0}}}},
		}}))

		salon, err := repo.UpdateServices(context.Background(), "s1", []models.SalonService{{Name: "Color", Price: 40}})
		require.NoError(mt, err)
		require.Len(mt, salon.Services, 1)
		assert.Equal(mt, "Color", salon.Services[0].Name)
	})
}
