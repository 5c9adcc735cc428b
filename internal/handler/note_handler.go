package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/pkg/response"
)

type noteService interface {
	List(ctx context.Context) ([]models.Note, error)
	ListByUE(ctx context.Context, ueID int64) ([]models.Note, error)
	ListByEtudiant(ctx context.Context, etudiantID int64) ([]models.Note, error)
	Find(ctx context.Context, etudiantID, ueID int64) (*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Create(ctx context.Context, req dto.NoteCreatePayload) (*models.Note, error)
	Update(ctx context.Context, id int64, req dto.NoteUpdatePayload) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

// NoteHandler serves /api/notes and the grade lookups.
type NoteHandler struct {
	service noteService
	render  *response.Renderer
}

// NewNoteHandler constructs a grade handler.
func NewNoteHandler(svc noteService, render *response.Renderer) *NoteHandler {
	return &NoteHandler{service: svc, render: render}
}

// List godoc
// @Summary List grades
// @Tags Notes
// @Produce json
// @Success 200 {array} models.Note
// @Router /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, items)
}

// ListByUE godoc
// @Summary List the grades of a course unit
// @Tags Notes
// @Produce json
// @Param ueId path int true "UE ID"
// @Success 200 {array} models.Note
// @Router /notes/ue/{ueId} [get]
func (h *NoteHandler) ListByUE(c *gin.Context) {
	ueID, err := pathID(c, "ueId")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	items, err := h.service.ListByUE(c.Request.Context(), ueID)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, items)
}

// ListByEtudiant godoc
// @Summary List the grades of a student
// @Tags Notes
// @Produce json
// @Param etudiantId path int true "Etudiant ID"
// @Success 200 {array} models.Note
// @Router /notes/etudiant/{etudiantId} [get]
func (h *NoteHandler) ListByEtudiant(c *gin.Context) {
	etudiantID, err := pathID(c, "etudiantId")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	items, err := h.service.ListByEtudiant(c.Request.Context(), etudiantID)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, items)
}

// Find godoc
// @Summary Get the grade of a student in a course unit
// @Description Answers null when no grade was recorded.
// @Tags Notes
// @Produce json
// @Param etudiantId path int true "Etudiant ID"
// @Param ueId path int true "UE ID"
// @Success 200 {object} models.Note
// @Router /notes/etudiant/{etudiantId}/ue/{ueId} [get]
func (h *NoteHandler) Find(c *gin.Context) {
	etudiantID, err := pathID(c, "etudiantId")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	ueID, err := pathID(c, "ueId")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	note, err := h.service.Find(c.Request.Context(), etudiantID, ueID)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, note)
}

// Get godoc
// @Summary Get grade
// @Tags Notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} models.Note
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	note, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.JSON(c, http.StatusOK, note)
}

// Create godoc
// @Summary Record grade
// @Tags Notes
// @Accept json
// @Produce json
// @Param payload body dto.NoteCreatePayload true "Note payload"
// @Success 201 {object} models.Note
// @Failure 409 {object} map[string]string
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.NoteCreatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	note, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Created(c, "note", note)
}

// Update godoc
// @Summary Change grade value
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param payload body dto.NoteUpdatePayload true "Note payload"
// @Success 200 {object} models.Note
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.render.Error(c, err)
		return
	}
	var req dto.NoteUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Error(c, invalidBody(err))
		return
	}
	note, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.render.Error(c, err)
		return
	}
	h.render.Entity(c, http.StatusOK, "note", note)
}

// Delete godoc
// @Summary Delete grade
// @Tags Notes
// @Param id path int true "Note ID"
// @Success 204
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
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
