package main

import (
	"CloudVault/config"
	"CloudVault/internal/handler"
	"CloudVault/internal/repo"
	"CloudVault/internal/service"
	"CloudVault/internal/storage"
	"CloudVault/router"
	"CloudVault/utils"
	"time"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	cache := utils.NewRedisCache(repo.Redis)
	sessions := service.NewSessionManager(cache, config.AppConfig.SessionTTL)

	files := service.NewFileService(
		repo.Db,
		storage.Default,
		config.MinioEndpoint(),
		config.AppConfig.BucketPrefix,
	).WithLockFactory(func(key string) service.Locker {
		return repo.NewRedisLock(repo.Redis, key, 30*time.Second)
	})

	r := router.InitRouter(
		handler.NewAuthHandler(sessions),
		handler.NewFileHandler(files),
		sessions,
	)

	r.Run(":8000")
}
