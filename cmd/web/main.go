// backend/cmd/web/main.go
package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/radarimovel/backend/internal/config"
	"github.com/radarimovel/backend/internal/middleware"
	"github.com/radarimovel/backend/internal/page"
	"github.com/radarimovel/backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting Radar Imóvel web frontend...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	renderer, err := page.NewRenderer()
	if err != nil {
		logger.WithError(err).Fatal("Failed to build page renderer")
	}

	client := page.NewClient(cfg.Web.APIBase, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())

	render := func(c *gin.Context, state page.State) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := renderer.Render(c.Writer, state); err != nil {
			logger.WithError(err).Error("Failed to render page")
		}
	}

	router.GET("/", func(c *gin.Context) {
		controller := page.NewController(client, cfg.App.City)
		render(c, controller.State())
	})

	router.POST("/analisar", func(c *gin.Context) {
		controller := page.NewController(client, cfg.App.City)
		controller.SetQuery(c.PostForm("query"))
		controller.Submit(c.Request.Context())
		render(c, controller.State())
	})

	logger.WithField("port", cfg.Web.Port).Info("Web frontend listening")
	if err := router.Run(":" + cfg.Web.Port); err != nil {
		logger.WithError(err).Fatal("Web frontend failed")
	}
}
