package wire

import (
	"Quill/internal/api"
	"Quill/internal/api/config"
	"Quill/internal/api/handler"
	"Quill/internal/job"
	"Quill/internal/pkg/cron"
	"Quill/internal/pkg/es"
	"Quill/internal/pkg/kafka"
	"Quill/internal/pkg/minio"
	"Quill/internal/pkg/mongo"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"Quill/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	robfigcron "github.com/robfig/cron/v3"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // 未配置 Kafka 时为 nil
	Publisher    kafka.Publisher        // 未配置搜索时为 nil
}

// BuildApplication 可选组件（ES/Kafka/Mongo/Redis/MinIO）需在此之前完成初始化，未初始化的以空实现接入
func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	var postESRepo es.PostRepo
	if es.Client != nil {
		postESRepo = es.NewPostRepo(es.Client, es.PostIndex)
	}

	var activityRepo mongo.ActivityRepo
	if mongoDB != nil {
		activityRepo = mongo.NewActivityRepo(mongoDB, cfg.Mongo.ActivityCollection)
	}

	var blacklist redis.TokenBlacklist
	if redis.Rdb != nil {
		blacklist = redis.NewTokenBlacklist()
	}

	var objectStore minio.ObjectStore
	if minio.Client != nil {
		objectStore = minio.NewObjectStore(minio.Client, cfg.MinIO)
	}

	// 搜索同步：有 Kafka 走消息队列，只有 ES 时请求内同步，都没有则不同步
	var (
		publisher kafka.Publisher
		kafkaMgr  *kafka.ConsumerManager
	)
	if postESRepo != nil {
		postsHandler := kafka.NewPostsHandler(postRepo, postESRepo)
		if len(cfg.Kafka.Brokers) > 0 {
			producer, err := kafka.NewPublisher(cfg.Kafka)
			if err != nil {
				return nil, err
			}
			publisher = producer

			kafkaMgr, err = kafka.NewConsumerManager(cfg.Kafka, postsHandler)
			if err != nil {
				_ = producer.Close()
				return nil, err
			}
		} else {
			publisher = kafka.NewInlinePublisher(postsHandler)
		}
	} else if len(cfg.Kafka.Brokers) > 0 {
		log.Warn("kafka configured without elasticsearch, post events are not published")
	}

	activityService := service.NewActivityService(activityRepo)
	postService := service.NewPostService(postRepo, categoryRepo, postESRepo, publisher, activityService)
	categoryService := service.NewCategoryService(categoryRepo, publisher, activityService)
	authService := service.NewAuthService(cfg.Auth, blacklist)
	mediaService := service.NewMediaService(objectStore, cfg.MinIO)

	handlers := &api.HandlersGroup{
		PostHandler:     handler.NewPostHandler(postService),
		CategoryHandler: handler.NewCategoryHandler(categoryService),
		AuthHandler:     handler.NewAuthHandler(authService),
		MediaHandler:    handler.NewMediaHandler(mediaService),
		ActivityHandler: handler.NewActivityHandler(activityService),
		AuthSvc:         authService,
	}

	router := api.SetupRouter(handlers, cfg)

	cronMgr := cron.NewCronManager(cfg.Cron, map[string]robfigcron.Job{
		cron.JobOrphanClean:   job.NewOrphanCleanJob(postRepo),
		cron.JobSearchReindex: job.NewSearchReindexJob(postService),
	})

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		Publisher:    publisher,
	}, nil
}
