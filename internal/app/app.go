package app

import (
	"os"
	"os/signal"
	"syscall"

	"CourseForge/internal/app/server"
	"CourseForge/internal/config"
	"CourseForge/internal/delivery/http"
	redisnotify "CourseForge/internal/notify/redis"
	"CourseForge/internal/service"
	"CourseForge/internal/service/curriculum"
	"CourseForge/internal/storage/minio_storage"
	"CourseForge/internal/storage/postgres"
	"CourseForge/pkg/logger"
)

func Run(cfg *config.Config) {

	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	minioStorage, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	contentMedia, err := minio_storage.NewContentMedia(minioStorage, cfg.Minio.MediaBucket)
	if err != nil {
		log.FatalErr("error preparing media bucket", err)
	}

	notifier, err := redisnotify.NewNotifier(log, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.NotifyChannel)
	if err != nil {
		log.FatalErr("error connecting to redis", err)
	}
	defer notifier.Close()

	curriculumRepo := postgres.NewCurriculumPostgres(pg.Pool)
	toggles := curriculum.NewToggleController(cfg.Curriculum.PublishLockedTypes)
	editor := curriculum.NewEditorService(log, curriculumRepo, contentMedia, notifier, toggles)
	u := service.Collection{EditorService: editor}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
