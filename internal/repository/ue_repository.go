package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

// UeRepository persists course units and their track links.
type UeRepository struct {
	db *sqlx.DB
}

type ueParcoursRow struct {
	UeID           int64  `db:"ue_id"`
	ID             int64  `db:"id"`
	NomParcours    string `db:"nom_parcours"`
	AnneeFormation int    `db:"annee_formation"`
}

// NewUeRepository creates a new repository instance.
func NewUeRepository(db *sqlx.DB) *UeRepository {
	return &UeRepository{db: db}
}

// Create inserts the course unit and its links in one transaction.
func (r *UeRepository) Create(ctx context.Context, u *models.UE) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO ues (intitule, numero_ue) VALUES ($1, $2) RETURNING id`
	if err := tx.QueryRowxContext(ctx, query, u.Intitule, u.NumeroUe).Scan(&u.ID); err != nil {
		return err
	}
	if err := linkParcours(ctx, tx, u); err != nil {
		return err
	}
	return tx.Commit()
}

// FindByID returns a course unit with its tracks resolved.
func (r *UeRepository) FindByID(ctx context.Context, id int64) (*models.UE, error) {
	var u models.UE
	if err := r.db.GetContext(ctx, &u, `SELECT id, intitule, numero_ue FROM ues WHERE id = $1`, id); err != nil {
		return nil, err
	}
	items := []models.UE{u}
	if err := r.attachParcours(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update rewrites the course unit and replaces its links.
func (r *UeRepository) Update(ctx context.Context, u *models.UE) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `UPDATE ues SET intitule = $1, numero_ue = $2 WHERE id = $3`, u.Intitule, u.NumeroUe, u.ID)
	if err != nil {
		return err
	}
	if err := expectAffected(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ue_parcours WHERE ue_id = $1`, u.ID); err != nil {
		return err
	}
	if err := linkParcours(ctx, tx, u); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a course unit; links and grades cascade.
func (r *UeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// List returns every course unit in storage order.
func (r *UeRepository) List(ctx context.Context) ([]models.UE, error) {
	items := make([]models.UE, 0)
	if err := r.db.SelectContext(ctx, &items, `SELECT id, intitule, numero_ue FROM ues`); err != nil {
		return nil, err
	}
	if err := r.attachParcours(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func linkParcours(ctx context.Context, tx *sqlx.Tx, u *models.UE) error {
	seen := make(map[int64]struct{}, len(u.Parcours))
	for _, p := range u.Parcours {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if _, err := tx.ExecContext(ctx, `INSERT INTO ue_parcours (ue_id, parcours_id) VALUES ($1, $2)`, u.ID, p.ID); err != nil {
			return translate(err)
		}
	}
	return nil
}

func (r *UeRepository) attachParcours(ctx context.Context, items []models.UE) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	index := make(map[int64]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
		items[i].Parcours = make([]models.Parcours, 0)
	}
	query, args, err := sqlx.In(`SELECT up.ue_id, p.id, p.nom_parcours, p.annee_formation
FROM ue_parcours up JOIN parcours p ON p.id = up.parcours_id
WHERE up.ue_id IN (?) ORDER BY up.ue_id, p.id`, ids)
	if err != nil {
		return err
	}
	var rows []ueParcoursRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range rows {
		i, ok := index[row.UeID]
		if !ok {
			continue
		}
		items[i].Parcours = append(items[i].Parcours, models.Parcours{
			ID:             row.ID,
			NomParcours:    row.NomParcours,
			AnneeFormation: row.AnneeFormation,
		})
	}
	return nil
}
