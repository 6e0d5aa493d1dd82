package handler

import (
	"errors"
	"net/http"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type NoteHandler struct {
	repo    repository.NoteRepository
	adminID int64
	log     *logrus.Logger
}

func NewNoteHandler(repo repository.NoteRepository, adminID int64, log *logrus.Logger) *NoteHandler {
	return &NoteHandler{repo: repo, adminID: adminID, log: log}
}

// List GET /api/notes?subjectId=|boardId=
func (h *NoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		notes []models.Note
		err   error
	)
	if subjectID, ok := queryID(c, "subjectId"); ok {
		notes, err = h.repo.ListNotesBySubject(ctx, subjectID)
	} else if boardID, ok := queryID(c, "boardId"); ok {
		notes, err = h.repo.ListNotesByBoard(ctx, boardID)
	} else {
		notes, err = h.repo.ListNotes(ctx)
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch notes", err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Get GET /api/notes/:id，每次读取浏览数 +1，返回存储里 +1 之后的值
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	note, err := h.repo.GetNote(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Note not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch note", err)
		return
	}

	// 读取和计数之间记录被删除时仍返回已读到的内容
	views, err := h.repo.IncrementNoteViews(ctx, id)
	switch {
	case err == nil:
		note.Views = views
	case errors.Is(err, repository.ErrNotFound):
	default:
		serverError(c, h.log, "Failed to fetch note", err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Create POST /api/notes，createdBy 固定为管理员
func (h *NoteHandler) Create(c *gin.Context) {
	var in models.InsertNote
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid note data", err)
		return
	}
	in.CreatedBy = h.adminID
	if err := models.Validate(in); err != nil {
		badRequest(c, "Invalid note data", err)
		return
	}
	note, err := h.repo.CreateNote(c.Request.Context(), in)
	if err != nil {
		serverError(c, h.log, "Failed to create note", err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// Update PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.NotePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid note data", err)
		return
	}
	if err := models.Validate(patch); err != nil {
		badRequest(c, "Invalid note data", err)
		return
	}
	note, err := h.repo.UpdateNote(c.Request.Context(), id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Note not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to update note", err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Delete DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.DeleteNote(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.log, "Failed to delete note", err)
		return
	}
	if !deleted {
		notFound(c, "Note not found")
		return
	}
	c.Status(http.StatusNoContent)
}
