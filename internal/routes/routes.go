package routes

import (
	"article-backend/internal/config"
	"article-backend/internal/handlers"
	"article-backend/internal/middleware"
	"article-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg.Server.RequestsPerMinute))

	tagService := services.NewTagService(db)
	articleService := services.NewArticleService(db, tagService)

	articleHandler := handlers.NewArticleHandler(articleService)
	tagHandler := handlers.NewTagHandler(tagService)

	api := router.Group("/api")
	{
		article := api.Group("/article")
		{
			article.POST("", articleHandler.CreateArticle)
			article.POST("/folder", articleHandler.CreateFolder)
			article.GET("", articleHandler.ListArticles)
			article.GET("/:id", articleHandler.GetArticle)
			article.PATCH("/:id", articleHandler.UpdateArticle)
			article.DELETE("/:id", articleHandler.DeleteArticle)
			article.DELETE("", articleHandler.DeleteArticles)
		}

		tag := api.Group("/tag")
		{
			tag.GET("", tagHandler.ListTags)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	return router
}
