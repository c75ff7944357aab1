package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityModel 后台操作记录
type ActivityModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    string             `bson:"action" json:"action"`      // create / update / delete
	Entity    string             `bson:"entity" json:"entity"`      // post / category
	EntityID  string             `bson:"entity_id" json:"entityId"` // 被操作对象 ID
	Title     string             `bson:"title" json:"title"`        // 标题或分类名快照
	Actor     string             `bson:"actor" json:"actor"`        // 操作人，未启用登录时为空
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
