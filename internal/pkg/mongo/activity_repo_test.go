package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestActivityRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewActivityRepo(mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.CreateActivity(context.Background(), &ActivityModel{
			Action:    "create",
			Entity:    "post",
			EntityID:  "p1",
			Title:     "Hello World",
			CreatedAt: time.Now(),
		})
		assert.NoError(mt, err)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewActivityRepo(mt.DB, mt.Coll.Name())
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "action", Value: "delete"},
			{Key: "entity", Value: "category"},
			{Key: "entity_id", Value: "c1"},
			{Key: "title", Value: "Go"},
		})
		end := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, end)

		list, err := repo.ListActivities(context.Background(), 10)
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, "delete", list[0].Action)
		assert.Equal(mt, "c1", list[0].EntityID)
	})
}
