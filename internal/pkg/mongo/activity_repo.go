package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityRepo interface {
	CreateActivity(ctx context.Context, activity *ActivityModel) error
	ListActivities(ctx context.Context, limit int64) ([]*ActivityModel, error)
}

type activityRepoImpl struct {
	col *mongo.Collection
}

func NewActivityRepo(db *mongo.Database, collection string) ActivityRepo {
	return &activityRepoImpl{
		col: db.Collection(collection),
	}
}

// CreateActivity 插入一条操作记录
func (s *activityRepoImpl) CreateActivity(ctx context.Context, activity *ActivityModel) error {
	_, err := s.col.InsertOne(ctx, activity)
	return err
}

// ListActivities 按时间倒序获取最近的操作记录
func (s *activityRepoImpl) ListActivities(ctx context.Context, limit int64) ([]*ActivityModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*ActivityModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
