package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/internal/repository"
)

// EtudiantService handles students for the mock backend.
type EtudiantService struct {
	repo      repository.Store[models.Etudiant]
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEtudiantService creates a new student service.
func NewEtudiantService(repo repository.Store[models.Etudiant], validate *validator.Validate, logger *zap.Logger) *EtudiantService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EtudiantService{repo: repo, validator: validate, logger: logger}
}

func (s *EtudiantService) List(ctx context.Context) ([]models.Etudiant, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "", "échec du chargement des étudiants")
	}
	return items, nil
}

func (s *EtudiantService) Get(ctx context.Context, id int64) (*models.Etudiant, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err, "Etudiant introuvable", "échec du chargement de l'étudiant")
	}
	return e, nil
}

// Create stores the student then reloads it so the answer embeds the full Parcours.
func (s *EtudiantService) Create(ctx context.Context, req dto.EtudiantPayload) (*models.Etudiant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	e := etudiantFromPayload(req)
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, storeFailure(err, "", "échec de la création de l'étudiant")
	}
	s.logger.Info("etudiant created", zap.Int64("id", e.ID))
	return s.Get(ctx, e.ID)
}

func (s *EtudiantService) Update(ctx context.Context, id int64, req dto.EtudiantPayload) (*models.Etudiant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	e := etudiantFromPayload(req)
	e.ID = id
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, storeFailure(err, "Etudiant introuvable", "échec de la mise à jour de l'étudiant")
	}
	return s.Get(ctx, id)
}

func (s *EtudiantService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure(err, "Etudiant introuvable", "échec de la suppression de l'étudiant")
	}
	return nil
}

func etudiantFromPayload(req dto.EtudiantPayload) *models.Etudiant {
	e := &models.Etudiant{Nom: req.Nom, Prenom: req.Prenom, Email: req.Email}
	if req.Parcours != nil {
		e.Parcours = &models.Parcours{ID: req.Parcours.ID}
	}
	return e
}
