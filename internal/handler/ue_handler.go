package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/pkg/response"
)

type ueService interface {
	List(ctx context.Context) ([]models.UE, error)
	Get(ctx context.Context, id int64) (*models.UE, error)
	Create(ctx context.Context, req dto.UePayload) (*models.UE, error)
	Update(ctx context.Context, id int64, req dto.UePayload) (*models.UE, error)
	Delete(ctx context.Context, id int64) error
}

// UeHandler serves /api/ues.
type UeHandler struct {
	service ueService
	render  *response.Renderer
}

// NewUeHandler constructs a course unit handler.
func NewUeHandler(svc ueService, render *response.Renderer) *UeHandler {
	return &UeHandler{service: svc, render: render}
}

// List godoc
// @Summary List course units
// @Tags UEs
// @Produce json
// @Success 200 {array} models.UE
// @Router /ues [get]
func (h *UeHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get course unit
// @Tags UEs
// @Produce json
// @Param id path int true "UE ID"
// @Success 200 {object} models.UE
// @Router /ues/{id} [get]
func (h *UeHandler) Get(c *gin.Context) {
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
// @Summary Create course unit
// @Tags UEs
// @Accept json
// @Produce json
// @Param payload body dto.UePayload true "UE payload"
// @Success 201 {object} models.UE
// @Router /ues [post]
func (h *UeHandler) Create(c *gin.Context) {
	var req dto.UePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Created(c, "ue", item)
}

// Update godoc
// @Summary Update course unit
// @Tags UEs
// @Accept json
// @Produce json
// @Param id path int true "UE ID"
// @Param payload body dto.UePayload true "UE payload"
// @Success 200 {object} models.UE
// @Router /ues/{id} [put]
func (h *UeHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	var req dto.UePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Entity(c, http.StatusOK, "ue", item)
}

// Delete godoc
// @Summary Delete course unit
// @Tags UEs
// @Param id path int true "UE ID"
// @Success 204
// @Router /ues/{id} [delete]
func (h *UeHandler) Delete(c *gin.Context) {
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
