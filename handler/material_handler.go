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

type MaterialHandler struct {
	repo    repository.MaterialRepository
	uploads service.UploadService
	adminID int64
	log     *logrus.Logger
}

// NewMaterialHandler adminID 作为上传记录的 uploadedBy
func NewMaterialHandler(repo repository.MaterialRepository, uploads service.UploadService, adminID int64, log *logrus.Logger) *MaterialHandler {
	return &MaterialHandler{repo: repo, uploads: uploads, adminID: adminID, log: log}
}

// List GET /api/materials?subjectId=|boardId=
func (h *MaterialHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		materials []models.Material
		err       error
	)
	if subjectID, ok := queryID(c, "subjectId"); ok {
		materials, err = h.repo.ListMaterialsBySubject(ctx, subjectID)
	} else if boardID, ok := queryID(c, "boardId"); ok {
		materials, err = h.repo.ListMaterialsByBoard(ctx, boardID)
	} else {
		materials, err = h.repo.ListMaterials(ctx)
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch materials", err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// Get GET /api/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	material, err := h.repo.GetMaterial(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Material not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to fetch material", err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// Create POST /api/materials，multipart 表单，文件字段为 file
func (h *MaterialHandler) Create(c *gin.Context) {
	fh, err := formFile(c, h.uploads.MaxBytes())
	if err != nil {
		badRequest(c, "Invalid material data", err)
		return
	}

	form := newUploadForm(c)
	in := models.InsertMaterial{
		Title:       c.PostForm("title"),
		Description: form.optionalString("description"),
		SubjectID:   form.int64("subjectId"),
		BoardID:     form.int64("boardId"),
		UploadedBy:  h.adminID,
	}
	if err := form.err(); err != nil {
		badRequest(c, "Invalid material data", err)
		return
	}
	material, err := h.uploads.CreateMaterial(c.Request.Context(), fh, in)
	if isClientError(err) {
		badRequest(c, "Invalid material data", err)
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to upload material", err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// Update PUT /api/materials/:id，只更新元数据，不能替换文件
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.MaterialPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid material data", err)
		return
	}
	if err := models.Validate(patch); err != nil {
		badRequest(c, "Invalid material data", err)
		return
	}
	material, err := h.repo.UpdateMaterial(c.Request.Context(), id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, "Material not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to update material", err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// Delete DELETE /api/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.DeleteMaterial(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.log, "Failed to delete material", err)
		return
	}
	if !deleted {
		notFound(c, "Material not found")
		return
	}
	c.Status(http.StatusNoContent)
}
