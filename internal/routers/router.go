// Package routers assembles the gin engine.
package routers

import (
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/app"
	"github.com/AlirezaNezami96/note-reminder-service/internal/middleware"
	"github.com/AlirezaNezami96/note-reminder-service/internal/routers/api_router"
	pkgapp "github.com/AlirezaNezami96/note-reminder-service/pkg/app"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP routing tree over the app container.
func NewRouter(appContainer *app.App) *gin.Engine {

	cfg := appContainer.Config()
	gin.SetMode(cfg.Server.RunMode)

	r := gin.New()

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		appContainer.Registry(),
		promhttp.HandlerOpts{},
	)))

	api := r.Group("/api")
	{
		api.Use(middleware.Tracer())
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.AccessLog(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		noteHandler := api_router.NewNoteHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/version", versionHandler.ServerVersion)

		api.POST("/notes", noteHandler.Create)
		api.GET("/notes", noteHandler.List)
		api.GET("/notes/search", noteHandler.Search)
		api.GET("/notes/:id", noteHandler.Get)
		api.PUT("/notes/:id", noteHandler.Update)
		api.DELETE("/notes/:id", noteHandler.Delete)

		api.PUT("/notes/:id/reminder", noteHandler.SetReminder)
		api.DELETE("/notes/:id/reminder", noteHandler.ClearReminder)
	}

	r.NoRoute(func(c *gin.Context) {
		pkgapp.NewResponse(c).ToResponse(code.ErrorNotFound)
	})

	return r
}
