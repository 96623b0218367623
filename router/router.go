package router

import (
	"CloudVault/config"
	"CloudVault/internal/handler"
	"CloudVault/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// InitRouter builds API routes. Every file route sits behind the session
// gate; registration and login are rate limited per client IP.
func InitRouter(auth *handler.AuthHandler, files *handler.FileHandler, sessions utils.SessionResolver) *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	limited := r.Group("")
	limited.Use(utils.RateLimitMiddleware(rate.Limit(config.AppConfig.LoginRate), config.AppConfig.LoginBurst))
	{
		limited.POST("/register", auth.Register)
		limited.POST("/login", auth.Login)
	}
	r.GET("/logout", auth.Logout)

	gated := r.Group("")
	gated.Use(utils.SessionAuthMiddleware(sessions))
	{
		gated.POST("/upload-file", files.Upload)
		gated.GET("/download-file/:filename", files.Download)
		gated.PUT("/update-file/:filename", files.Update)
		gated.DELETE("/delete-file/:filename", files.Delete)
	}
	return r
}
