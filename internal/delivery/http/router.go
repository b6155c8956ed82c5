package http

import (
	"time"

	"CourseForge/internal/delivery/http/controllers"
	"CourseForge/internal/service"
	"CourseForge/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	curriculumController := controllers.NewCurriculumHandler(l, u.EditorService)

	v1 := r.Group("/v1", controllers.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		courses := v1.Group("/courses/:course_id")
		{
			courses.GET("/structure", curriculumController.Structure)
			courses.PATCH("/structure/reorder", curriculumController.Reorder)
			courses.POST("/sections", curriculumController.CreateSection)
			courses.POST("/sections/:section_id/items", curriculumController.CreateItem)
			courses.PATCH("/items/:content_id/free", curriculumController.ToggleFree)
			courses.PATCH("/items/:content_id/publish", curriculumController.TogglePublish)
			courses.POST("/items/:content_id/delete-request", curriculumController.RequestDelete)
			courses.POST("/save-order-request", curriculumController.RequestSaveOrder)
		}

		confirmations := v1.Group("/confirmations")
		{
			confirmations.POST("/:token/confirm", curriculumController.Confirm)
			confirmations.POST("/:token/cancel", curriculumController.Cancel)
		}
	}
	return r
}
