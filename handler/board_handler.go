package handler

import (
	"errors"
	"net/http"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BoardHandler struct {
	repo repository.BoardRepository
	log  *logrus.Logger
}

func NewBoardHandler(repo repository.BoardRepository, log *logrus.Logger) *BoardHandler {
	return &BoardHandler{repo: repo, log: log}
}

// List GET /api/boards
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.repo.ListBoards(c.Request.Context())
	if err != nil {
		serverError(c, h.log, "Failed to fetch boards", err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// Get GET /api/boards/:id
func (h *BoardHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	board, err := h.repo.GetBoard(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Board not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch board", err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Create POST /api/boards
func (h *BoardHandler) Create(c *gin.Context) {
	var in models.InsertBoard
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid board data", err)
		return
	}
	if err := models.Validate(in); err != nil {
		badRequest(c, "Invalid board data", err)
		return
	}
	board, err := h.repo.CreateBoard(c.Request.Context(), in)
	if err != nil {
		serverError(c, h.log, "Failed to create board", err)
		return
	}
	h.log.WithField("id", board.ID).Info("BoardHandler Create: created")
	c.JSON(http.StatusCreated, board)
}

// Update PUT /api/boards/:id
func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.BoardPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid board data", err)
		return
	}
	if err := models.Validate(patch); err != nil {
		badRequest(c, "Invalid board data", err)
		return
	}
	board, err := h.repo.UpdateBoard(c.Request.Context(), id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Board not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to update board", err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Delete DELETE /api/boards/:id
func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.DeleteBoard(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.log, "Failed to delete board", err)
		return
	}
	if !deleted {
		notFound(c, "Board not found")
		return
	}
	c.Status(http.StatusNoContent)
}
