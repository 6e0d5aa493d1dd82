package handler

import (
	"errors"
	"net/http"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PyqHandler struct {
	repo    repository.PyqPaperRepository
	uploads service.UploadService
	adminID int64
	log     *logrus.Logger
}

func NewPyqHandler(repo repository.PyqPaperRepository, uploads service.UploadService, adminID int64, log *logrus.Logger) *PyqHandler {
	return &PyqHandler{repo: repo, uploads: uploads, adminID: adminID, log: log}
}

// List GET /api/pyq-papers?subjectId=|boardId=|year=，按这个顺序取第一个有效的过滤条件
func (h *PyqHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		papers []models.PyqPaper
		err    error
	)
	if subjectID, ok := queryID(c, "subjectId"); ok {
		papers, err = h.repo.ListPyqPapersBySubject(ctx, subjectID)
	} else if boardID, ok := queryID(c, "boardId"); ok {
		papers, err = h.repo.ListPyqPapersByBoard(ctx, boardID)
	} else if year, ok := queryInt(c, "year"); ok {
		papers, err = h.repo.ListPyqPapersByYear(ctx, year)
	} else {
		papers, err = h.repo.ListPyqPapers(ctx)
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch PYQ papers", err)
		return
	}
	c.JSON(http.StatusOK, papers)
}

// Get GET /api/pyq-papers/:id
func (h *PyqHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	paper, err := h.repo.GetPyqPaper(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "PYQ paper not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch PYQ paper", err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

// Create POST /api/pyq-papers，multipart 表单
func (h *PyqHandler) Create(c *gin.Context) {
	fh, err := formFile(c, h.uploads.MaxBytes())
	if err != nil {
		badRequest(c, "Invalid PYQ paper data", err)
		return
	}

	form := newUploadForm(c)
	in := models.InsertPyqPaper{
		Title:          c.PostForm("title"),
		Year:           form.int("year"),
		Duration:       form.optionalInt("duration"),
		TotalQuestions: form.optionalInt("totalQuestions"),
		SubjectID:      form.int64("subjectId"),
		BoardID:        form.int64("boardId"),
		HasSolutions:   form.bool("hasSolutions"),
		HasAnswerKey:   form.bool("hasAnswerKey"),
		UploadedBy:     h.adminID,
	}
	if err := form.err(); err != nil {
		badRequest(c, "Invalid PYQ paper data", err)
		return
	}
	paper, err := h.uploads.CreatePyqPaper(c.Request.Context(), fh, in)
	if isClientError(err) {
		badRequest(c, "Invalid PYQ paper data", err)
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to upload PYQ paper", err)
		return
	}
	c.JSON(http.StatusCreated, paper)
}

// Update PUT /api/pyq-papers/:id，只更新元数据
func (h *PyqHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.PyqPaperPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid PYQ paper data", err)
		return
	}
	if err := models.Validate(patch); err != nil {
		badRequest(c, "Invalid PYQ paper data", err)
		return
	}
	paper, err := h.repo.UpdatePyqPaper(c.Request.Context(), id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "PYQ paper not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to update PYQ paper", err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

// Delete DELETE /api/pyq-papers/:id
func (h *PyqHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.DeletePyqPaper(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.log, "Failed to delete PYQ paper", err)
		return
	}
	if !deleted {
		notFound(c, "PYQ paper not found")
		return
	}
	c.Status(http.StatusNoContent)
}
