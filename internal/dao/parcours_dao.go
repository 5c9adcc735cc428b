package dao

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
)

// ParcoursDAO reads and writes tracks on /api/parcours.
type ParcoursDAO struct {
	res *resource[models.Parcours]
}

var _ DAO[models.Parcours] = (*ParcoursDAO)(nil)

func NewParcoursDAO(c requester, logger *zap.Logger, metrics callObserver) *ParcoursDAO {
	return &ParcoursDAO{res: newResource[models.Parcours]("parcours", "/api/parcours", "parcours", messages{
		create: "Impossible de créer le nouveau parcours",
		get:    "Impossible de récupérer le parcours",
		update: "Impossible de mettre à jour le parcours",
		delete: "Impossible de supprimer le parcours",
		list:   "Impossible de récupérer la liste des parcours",
	}, c, logger, metrics)}
}

func (d *ParcoursDAO) Create(ctx context.Context, data models.Parcours) (*models.Parcours, error) {
	return d.res.create(ctx, dto.NewParcoursPayload(data))
}

func (d *ParcoursDAO) Get(ctx context.Context, id int64) (*models.Parcours, error) {
	return d.res.get(ctx, id)
}

func (d *ParcoursDAO) Update(ctx context.Context, id int64, data models.Parcours) (*models.Parcours, error) {
	return d.res.update(ctx, id, dto.NewParcoursPayload(data))
}

func (d *ParcoursDAO) Delete(ctx context.Context, id int64) error {
	return d.res.delete(ctx, id)
}

func (d *ParcoursDAO) List(ctx context.Context) ([]models.Parcours, error) {
	return d.res.list(ctx)
}
