package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/config"
	"github.com/barberdev/barberdev-web/internal/logging"
	"github.com/barberdev/barberdev-web/internal/routes"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	r := gin.New()
	r.Use(gin.Recovery())
	r.LoadHTMLGlob(cfg.TemplatesGlob)
	r.Static("/static", "web/static")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := routes.RegisterRoutes(r, cfg, logger); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server listening", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
