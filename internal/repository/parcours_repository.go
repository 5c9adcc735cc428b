package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

// ParcoursRepository persists training tracks.
type ParcoursRepository struct {
	db *sqlx.DB
}

// NewParcoursRepository creates a new repository instance.
func NewParcoursRepository(db *sqlx.DB) *ParcoursRepository {
	return &ParcoursRepository{db: db}
}

// Create inserts a track and assigns its id.
func (r *ParcoursRepository) Create(ctx context.Context, p *models.Parcours) error {
	const query = `INSERT INTO parcours (nom_parcours, annee_formation) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowxContext(ctx, query, p.NomParcours, p.AnneeFormation).Scan(&p.ID)
}

// FindByID returns a track or sql.ErrNoRows.
func (r *ParcoursRepository) FindByID(ctx context.Context, id int64) (*models.Parcours, error) {
	var p models.Parcours
	if err := r.db.GetContext(ctx, &p, `SELECT id, nom_parcours, annee_formation FROM parcours WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update rewrites the scalar fields of a track.
func (r *ParcoursRepository) Update(ctx context.Context, p *models.Parcours) error {
	res, err := r.db.ExecContext(ctx, `UPDATE parcours SET nom_parcours = $1, annee_formation = $2 WHERE id = $3`, p.NomParcours, p.AnneeFormation, p.ID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a track; students keep existing with no track.
func (r *ParcoursRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parcours WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// List returns every track in storage order.
func (r *ParcoursRepository) List(ctx context.Context) ([]models.Parcours, error) {
	items := make([]models.Parcours, 0)
	if err := r.db.SelectContext(ctx, &items, `SELECT id, nom_parcours, annee_formation FROM parcours`); err != nil {
		return nil, err
	}
	return items, nil
}
