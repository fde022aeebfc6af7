// Package api_router implements the HTTP API handlers.
package api_router

import (
	"errors"
	"strconv"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/app"
	"github.com/AlirezaNezami96/note-reminder-service/internal/dto"
	"github.com/AlirezaNezami96/note-reminder-service/internal/recurrence"
	"github.com/AlirezaNezami96/note-reminder-service/internal/service"
	pkgapp "github.com/AlirezaNezami96/note-reminder-service/pkg/app"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// reminderTimeLayout wall-clock layout accepted by the reminder API.
const reminderTimeLayout = "2006-01-02 15:04:05"

type NoteHandler struct {
	app *app.App
}

func NewNoteHandler(appContainer *app.App) *NoteHandler {
	return &NoteHandler{app: appContainer}
}

func noteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *NoteHandler) Create(c *gin.Context) {
	params := &dto.NoteCreateRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.app.Logger().Error("apiRouter.Note.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	note, err := h.app.NoteService.Create(c.Request.Context(), params)
	if err != nil {
		h.app.Logger().Error("apiRouter.Note.Create err", zap.Error(err))
		response.ToResponse(code.ErrorNoteCreateFailed.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams)
		return
	}

	params := &dto.NoteUpdateRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.app.Logger().Error("apiRouter.Note.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	note, err := h.app.NoteService.Update(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.ToResponse(code.ErrorNoteNotFound)
			return
		}
		h.app.Logger().Error("apiRouter.Note.Update err", zap.Error(err))
		response.ToResponse(code.ErrorNoteUpdateFailed.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := noteID(c)
	response := pkgapp.NewResponse(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	note, err := h.app.NoteService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.ToResponse(code.ErrorNoteNotFound)
			return
		}
		h.app.Logger().Error("apiRouter.Note.Get err", zap.Error(err))
		response.ToResponse(code.Failed.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := noteID(c)
	response := pkgapp.NewResponse(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	if err := h.app.NoteService.Delete(c.Request.Context(), id); err != nil {
		h.app.Logger().Error("apiRouter.Note.Delete err", zap.Error(err))
		response.ToResponse(code.ErrorNoteDeleteFailed.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success)
}

func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: h.app.Config().App.DefaultPageSize,
		MaxPageSize:     h.app.Config().App.MaxPageSize,
	})

	notes, total, err := h.app.NoteService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.app.Logger().Error("apiRouter.Note.List err", zap.Error(err))
		response.ToResponse(code.ErrorNoteListFailed.WithDetails(err.Error()))
		return
	}
	response.ToResponseList(code.Success, notes, page, pageSize, total)
}

func (h *NoteHandler) Search(c *gin.Context) {
	params := &dto.NoteSearchRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	notes, err := h.app.NoteService.Search(c.Request.Context(), params.Query)
	if err != nil {
		h.app.Logger().Error("apiRouter.Note.Search err", zap.Error(err))
		response.ToResponse(code.ErrorNoteListFailed.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success.WithData(notes))
}

func (h *NoteHandler) SetReminder(c *gin.Context) {
	id, ok := noteID(c)
	response := pkgapp.NewResponse(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	params := &dto.ReminderSetRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.app.Logger().Error("apiRouter.Note.SetReminder.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	at, err := time.ParseInLocation(reminderTimeLayout, params.Time, time.Local)
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	interval := recurrence.None
	if params.RepeatInterval != "" {
		interval, err = recurrence.Parse(params.RepeatInterval)
		if err != nil {
			response.ToResponse(code.ErrorInvalidInterval.WithDetails(err.Error()))
			return
		}
	}

	enabled := true
	if params.IsEnabled != nil {
		enabled = *params.IsEnabled
	}

	note, err := h.app.NoteService.SetReminder(c.Request.Context(), id, at, interval, enabled)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.ToResponse(code.ErrorNoteNotFound)
			return
		}
		h.app.Logger().Error("apiRouter.Note.SetReminder err", zap.Error(err))
		response.ToResponse(code.ErrorReminderSetFailed.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

func (h *NoteHandler) ClearReminder(c *gin.Context) {
	id, ok := noteID(c)
	response := pkgapp.NewResponse(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	if err := h.app.NoteService.ClearReminder(c.Request.Context(), id); err != nil {
		h.app.Logger().Error("apiRouter.Note.ClearReminder err", zap.Error(err))
		response.ToResponse(code.ErrorReminderClearFailed.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success)
}
