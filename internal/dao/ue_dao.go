package dao

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
)

// UeDAO reads and writes course units on /api/ues.
type UeDAO struct {
	res *resource[models.UE]
}

var _ DAO[models.UE] = (*UeDAO)(nil)

func NewUeDAO(c requester, logger *zap.Logger, metrics callObserver) *UeDAO {
	return &UeDAO{res: newResource[models.UE]("ue", "/api/ues", "ue", messages{
		create: "Impossible de créer la nouvelle UE",
		get:    "Impossible de récupérer l'UE",
		update: "Impossible de mettre à jour l'UE",
		delete: "Impossible de supprimer l'UE",
		list:   "Impossible de récupérer la liste des UEs",
	}, c, logger, metrics)}
}

// Create registers a course unit. Attached Parcours are sent as ids.
func (d *UeDAO) Create(ctx context.Context, data models.UE) (*models.UE, error) {
	return d.res.create(ctx, dto.NewUePayload(data))
}

func (d *UeDAO) Get(ctx context.Context, id int64) (*models.UE, error) {
	return d.res.get(ctx, id)
}

func (d *UeDAO) Update(ctx context.Context, id int64, data models.UE) (*models.UE, error) {
	return d.res.update(ctx, id, dto.NewUePayload(data))
}

func (d *UeDAO) Delete(ctx context.Context, id int64) error {
	return d.res.delete(ctx, id)
}

func (d *UeDAO) List(ctx context.Context) ([]models.UE, error) {
	return d.res.list(ctx)
}
