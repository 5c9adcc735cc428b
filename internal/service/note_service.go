package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/internal/repository"
)

// NoteService handles grades for the mock backend.
type NoteService struct {
	repo      repository.NoteStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService creates a new grade service.
func NewNoteService(repo repository.NoteStore, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, validator: validate, logger: logger}
}

func (s *NoteService) List(ctx context.Context) ([]models.Note, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "", "échec du chargement des notes")
	}
	return items, nil
}

func (s *NoteService) ListByUE(ctx context.Context, ueID int64) ([]models.Note, error) {
	items, err := s.repo.ListByUE(ctx, ueID)
	if err != nil {
		return nil, storeFailure(err, "", "échec du chargement des notes de l'UE")
	}
	return items, nil
}

func (s *NoteService) ListByEtudiant(ctx context.Context, etudiantID int64) ([]models.Note, error) {
	items, err := s.repo.ListByEtudiant(ctx, etudiantID)
	if err != nil {
		return nil, storeFailure(err, "", "échec du chargement des notes de l'étudiant")
	}
	return items, nil
}

// Find returns the grade of a student in a course unit, or nil when none was recorded.
func (s *NoteService) Find(ctx context.Context, etudiantID, ueID int64) (*models.Note, error) {
	n, err := s.repo.FindByEtudiantAndUE(ctx, etudiantID, ueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeFailure(err, "", "échec du chargement de la note")
	}
	return n, nil
}

func (s *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err, "Note introuvable", "échec du chargement de la note")
	}
	return n, nil
}

func (s *NoteService) Create(ctx context.Context, req dto.NoteCreatePayload) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	n := &models.Note{Valeur: *req.Valeur, EtudiantID: req.EtudiantID, UeID: req.UeID}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, storeFailure(err, "", "échec de l'enregistrement de la note")
	}
	s.logger.Info("note created", zap.Int64("id", n.ID), zap.Int64("etudiant_id", n.EtudiantID), zap.Int64("ue_id", n.UeID))
	return n, nil
}

func (s *NoteService) Update(ctx context.Context, id int64, req dto.NoteUpdatePayload) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	n := &models.Note{ID: id, Valeur: *req.Valeur}
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, storeFailure(err, "Note introuvable", "échec de la mise à jour de la note")
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure(err, "Note introuvable", "échec de la suppression de la note")
	}
	return nil
}
