package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/internal/repository"
)

// ParcoursService handles training tracks for the mock backend.
type ParcoursService struct {
	repo      repository.Store[models.Parcours]
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParcoursService creates a new track service.
func NewParcoursService(repo repository.Store[models.Parcours], validate *validator.Validate, logger *zap.Logger) *ParcoursService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParcoursService{repo: repo, validator: validate, logger: logger}
}

func (s *ParcoursService) List(ctx context.Context) ([]models.Parcours, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "", "échec du chargement des parcours")
	}
	return items, nil
}

func (s *ParcoursService) Get(ctx context.Context, id int64) (*models.Parcours, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err, "Parcours introuvable", "échec du chargement du parcours")
	}
	return p, nil
}

func (s *ParcoursService) Create(ctx context.Context, req dto.ParcoursPayload) (*models.Parcours, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	p := &models.Parcours{NomParcours: req.NomParcours, AnneeFormation: req.AnneeFormation}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, storeFailure(err, "", "échec de la création du parcours")
	}
	s.logger.Info("parcours created", zap.Int64("id", p.ID))
	return p, nil
}

func (s *ParcoursService) Update(ctx context.Context, id int64, req dto.ParcoursPayload) (*models.Parcours, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	p := &models.Parcours{ID: id, NomParcours: req.NomParcours, AnneeFormation: req.AnneeFormation}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, storeFailure(err, "Parcours introuvable", "échec de la mise à jour du parcours")
	}
	return p, nil
}

func (s *ParcoursService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure(err, "Parcours introuvable", "échec de la suppression du parcours")
	}
	return nil
}
