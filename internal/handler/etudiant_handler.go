package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/pkg/response"
)

type etudiantService interface {
	List(ctx context.Context) ([]models.Etudiant, error)
	Get(ctx context.Context, id int64) (*models.Etudiant, error)
	Create(ctx context.Context, req dto.EtudiantPayload) (*models.Etudiant, error)
	Update(ctx context.Context, id int64, req dto.EtudiantPayload) (*models.Etudiant, error)
	Delete(ctx context.Context, id int64) error
}

// EtudiantHandler serves /api/etudiants.
type EtudiantHandler struct {
	service etudiantService
	render  *response.Renderer
}

// NewEtudiantHandler constructs a student handler.
func NewEtudiantHandler(svc etudiantService, render *response.Renderer) *EtudiantHandler {
	return &EtudiantHandler{service: svc, render: render}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {array} models.Etudiant
// @Router /etudiants [get]
func (h *EtudiantHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path int true "Etudiant ID"
// @Success 200 {object} models.Etudiant
// @Router /etudiants/{id} [get]
func (h *EtudiantHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.EtudiantPayload true "Etudiant payload"
// @Success 201 {object} models.Etudiant
// @Router /etudiants [post]
func (h *EtudiantHandler) Create(c *gin.Context) {
	var req dto.EtudiantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Created(c, "etudiant", item)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Etudiant ID"
// @Param payload body dto.EtudiantPayload true "Etudiant payload"
// @Success 200 {object} models.Etudiant
// @Router /etudiants/{id} [put]
func (h *EtudiantHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	var req dto.EtudiantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Entity(c, http.StatusOK, "etudiant", item)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Param id path int true "Etudiant ID"
// @Success 204
// @Router /etudiants/{id} [delete]
func (h *EtudiantHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.NoContent(c)
}
