package handler

import (
	"errors"
	"net/http"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SubjectHandler struct {
	repo repository.SubjectRepository
	log  *logrus.Logger
}

func NewSubjectHandler(repo repository.SubjectRepository, log *logrus.Logger) *SubjectHandler {
	return &SubjectHandler{repo: repo, log: log}
}

// List GET /api/subjects?boardId=
func (h *SubjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		subjects []models.Subject
		err      error
	)
	if boardID, ok := queryID(c, "boardId"); ok {
		subjects, err = h.repo.ListSubjectsByBoard(ctx, boardID)
	} else {
		subjects, err = h.repo.ListSubjects(ctx)
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch subjects", err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// Get GET /api/subjects/:id
func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	subject, err := h.repo.GetSubject(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Subject not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch subject", err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

// Create POST /api/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var in models.InsertSubject
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid subject data", err)
		return
	}
	if err := models.Validate(in); err != nil {
		badRequest(c, "Invalid subject data", err)
		return
	}
	subject, err := h.repo.CreateSubject(c.Request.Context(), in)
	if err != nil {
		serverError(c, h.log, "Failed to create subject", err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// Update PUT /api/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.SubjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid subject data", err)
		return
	}
	if err := models.Validate(patch); err != nil {
		badRequest(c, "Invalid subject data", err)
		return
	}
	subject, err := h.repo.UpdateSubject(c.Request.Context(), id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Subject not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to update subject", err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

// Delete DELETE /api/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.DeleteSubject(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.log, "Failed to delete subject", err)
		return
	}
	if !deleted {
		notFound(c, "Subject not found")
		return
	}
	c.Status(http.StatusNoContent)
}
