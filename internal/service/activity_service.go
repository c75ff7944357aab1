package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"
)

const activityWriteTimeout = 2 * time.Second

type ActivityService interface {
	Record(ctx context.Context, action, entity, entityID, title string)
	ListActivities(ctx context.Context, limit int) ([]*dto.ActivityDTO, error)
}

type activityServiceImpl struct {
	activityRepo mongo.ActivityRepo
}

// NewActivityService activityRepo 为 nil 时不记录，列表恒为空
func NewActivityService(activityRepo mongo.ActivityRepo) ActivityService {
	return &activityServiceImpl{activityRepo: activityRepo}
}

// Record 写入失败不影响主流程
func (s *activityServiceImpl) Record(ctx context.Context, action, entity, entityID, title string) {
	if s.activityRepo == nil {
		return
	}

	actor, _ := ctx.Value(consts.ActorKey).(string)
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), activityWriteTimeout)
	defer cancel()

	err := s.activityRepo.CreateActivity(writeCtx, &mongo.ActivityModel{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Title:     title,
		Actor:     actor,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.WarnContext(ctx, "record activity failed", "action", action, "entity", entity, "entity_id", entityID, "err", err)
	}
}

func (s *activityServiceImpl) ListActivities(ctx context.Context, limit int) ([]*dto.ActivityDTO, error) {
	if s.activityRepo == nil {
		return []*dto.ActivityDTO{}, nil
	}
	if limit <= 0 || limit > consts.ActivityLimit {
		limit = consts.ActivityLimit
	}

	list, err := s.activityRepo.ListActivities(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	activities := make([]*dto.ActivityDTO, 0, len(list))
	for _, a := range list {
		activities = append(activities, &dto.ActivityDTO{
			ID:        a.ID.Hex(),
			Action:    a.Action,
			Entity:    a.Entity,
			EntityID:  a.EntityID,
			Title:     a.Title,
			Actor:     a.Actor,
			CreatedAt: a.CreatedAt,
		})
	}
	return activities, nil
}
