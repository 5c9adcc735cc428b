package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/internal/repository"
)

// UeService handles course units for the mock backend.
type UeService struct {
	repo      repository.Store[models.UE]
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUeService creates a new course unit service.
func NewUeService(repo repository.Store[models.UE], validate *validator.Validate, logger *zap.Logger) *UeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UeService{repo: repo, validator: validate, logger: logger}
}

func (s *UeService) List(ctx context.Context) ([]models.UE, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "", "échec du chargement des UEs")
	}
	return items, nil
}

func (s *UeService) Get(ctx context.Context, id int64) (*models.UE, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err, "UE introuvable", "échec du chargement de l'UE")
	}
	return u, nil
}

func (s *UeService) Create(ctx context.Context, req dto.UePayload) (*models.UE, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	u := ueFromPayload(req)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, storeFailure(err, "", "échec de la création de l'UE")
	}
	s.logger.Info("ue created", zap.Int64("id", u.ID))
	return s.Get(ctx, u.ID)
}

func (s *UeService) Update(ctx context.Context, id int64, req dto.UePayload) (*models.UE, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	u := ueFromPayload(req)
	u.ID = id
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, storeFailure(err, "UE introuvable", "échec de la mise à jour de l'UE")
	}
	return s.Get(ctx, id)
}

func (s *UeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure(err, "UE introuvable", "échec de la suppression de l'UE")
	}
	return nil
}

func ueFromPayload(req dto.UePayload) *models.UE {
	u := &models.UE{Intitule: req.Intitule, NumeroUe: req.NumeroUe, Parcours: make([]models.Parcours, 0, len(req.Parcours))}
	for _, id := range req.Parcours {
		u.Parcours = append(u.Parcours, models.Parcours{ID: id})
	}
	return u
}
