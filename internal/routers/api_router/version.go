package api_router

import (
	"github.com/AlirezaNezami96/note-reminder-service/internal/app"
	pkgapp "github.com/AlirezaNezami96/note-reminder-service/pkg/app"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/code"

	"github.com/gin-gonic/gin"
)

type VersionHandler struct {
	app *app.App
}

func NewVersionHandler(appContainer *app.App) *VersionHandler {
	return &VersionHandler{app: appContainer}
}

// ServerVersion returns the build version information.
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(h.app.Version()))
}
