package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/pkg/response"
)

type parcoursService interface {
	List(ctx context.Context) ([]models.Parcours, error)
	Get(ctx context.Context, id int64) (*models.Parcours, error)
	Create(ctx context.Context, req dto.ParcoursPayload) (*models.Parcours, error)
	Update(ctx context.Context, id int64, req dto.ParcoursPayload) (*models.Parcours, error)
	Delete(ctx context.Context, id int64) error
}

// ParcoursHandler serves /api/parcours.
type ParcoursHandler struct {
	service parcoursService
	render  *response.Renderer
}

// NewParcoursHandler constructs a track handler.
func NewParcoursHandler(svc parcoursService, render *response.Renderer) *ParcoursHandler {
	return &ParcoursHandler{service: svc, render: render}
}

// List godoc
// @Summary List training tracks
// @Tags Parcours
// @Produce json
// @Success 200 {array} models.Parcours
// @Router /parcours [get]
func (h *ParcoursHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get training track
// @Tags Parcours
// @Produce json
// @Param id path int true "Parcours ID"
// @Success 200 {object} models.Parcours
// @Router /parcours/{id} [get]
func (h *ParcoursHandler) Get(c *gin.Context) {
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
// @Summary Create training track
// @Tags Parcours
// @Accept json
// @Produce json
// @Param payload body dto.ParcoursPayload true "Parcours payload"
// @Success 201 {object} models.Parcours
// @Router /parcours [post]
func (h *ParcoursHandler) Create(c *gin.Context) {
	var req dto.ParcoursPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Created(c, "parcours", item)
}

// Update godoc
// @Summary Update training track
// @Tags Parcours
// @Accept json
// @Produce json
// @Param id path int true "Parcours ID"
// @Param payload body dto.ParcoursPayload true "Parcours payload"
// @Success 200 {object} models.Parcours
// @Router /parcours/{id} [put]
func (h *ParcoursHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	var req dto.ParcoursPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Entity(c, http.StatusOK, "parcours", item)
}

// Delete godoc
// @Summary Delete training track
// @Tags Parcours
// @Param id path int true "Parcours ID"
// @Success 204
// @Router /parcours/{id} [delete]
func (h *ParcoursHandler) Delete(c *gin.Context) {
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
