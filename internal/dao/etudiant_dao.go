package dao

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
)

// EtudiantDAO reads and writes students on /api/etudiants.
type EtudiantDAO struct {
	res *resource[models.Etudiant]
}

var _ DAO[models.Etudiant] = (*EtudiantDAO)(nil)

// NewEtudiantDAO constructs an EtudiantDAO.
func NewEtudiantDAO(c requester, logger *zap.Logger, metrics callObserver) *EtudiantDAO {
	return &EtudiantDAO{res: newResource[models.Etudiant]("etudiant", "/api/etudiants", "etudiant", messages{
		create: "Impossible de créer le nouvel étudiant",
		get:    "Impossible de récupérer l'étudiant",
		update: "Impossible de mettre à jour l'étudiant",
		delete: "Impossible de supprimer l'étudiant",
		list:   "Impossible de récupérer la liste des étudiants",
	}, c, logger, metrics)}
}

// Create registers a student. The Parcours, if any, is sent as a partial object.
func (d *EtudiantDAO) Create(ctx context.Context, data models.Etudiant) (*models.Etudiant, error) {
	return d.res.create(ctx, dto.NewEtudiantPayload(data))
}

func (d *EtudiantDAO) Get(ctx context.Context, id int64) (*models.Etudiant, error) {
	return d.res.get(ctx, id)
}

func (d *EtudiantDAO) Update(ctx context.Context, id int64, data models.Etudiant) (*models.Etudiant, error) {
	return d.res.update(ctx, id, dto.NewEtudiantPayload(data))
}

func (d *EtudiantDAO) Delete(ctx context.Context, id int64) error {
	return d.res.delete(ctx, id)
}

// List returns every student ordered by id.
func (d *EtudiantDAO) List(ctx context.Context) ([]models.Etudiant, error) {
	return d.res.list(ctx)
}
