package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

const selectEtudiant = `SELECT e.id, e.nom, e.prenom, e.email, p.id AS parcours_id, p.nom_parcours, p.annee_formation
FROM etudiants e LEFT JOIN parcours p ON p.id = e.parcours_id`

// EtudiantRepository persists students with their optional track.
type EtudiantRepository struct {
	db *sqlx.DB
}

type etudiantRow struct {
	ID             int64          `db:"id"`
	Nom            string         `db:"nom"`
	Prenom         string         `db:"prenom"`
	Email          string         `db:"email"`
	ParcoursID     sql.NullInt64  `db:"parcours_id"`
	NomParcours    sql.NullString `db:"nom_parcours"`
	AnneeFormation sql.NullInt64  `db:"annee_formation"`
}

func (row etudiantRow) toModel() models.Etudiant {
	e := models.Etudiant{ID: row.ID, Nom: row.Nom, Prenom: row.Prenom, Email: row.Email}
	if row.ParcoursID.Valid {
		e.Parcours = &models.Parcours{
			ID:             row.ParcoursID.Int64,
			NomParcours:    row.NomParcours.String,
			AnneeFormation: int(row.AnneeFormation.Int64),
		}
	}
	return e
}

// NewEtudiantRepository creates a new repository instance.
func NewEtudiantRepository(db *sqlx.DB) *EtudiantRepository {
	return &EtudiantRepository{db: db}
}

func parcoursIDOf(e *models.Etudiant) sql.NullInt64 {
	if e.Parcours == nil {
		return sql.NullInt64{}
	}
	return nullableID(e.Parcours.ID)
}

// Create inserts a student and assigns its id.
func (r *EtudiantRepository) Create(ctx context.Context, e *models.Etudiant) error {
	const query = `INSERT INTO etudiants (nom, prenom, email, parcours_id) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, e.Nom, e.Prenom, e.Email, parcoursIDOf(e)).Scan(&e.ID)
	return translate(err)
}

// FindByID returns a student with its track resolved.
func (r *EtudiantRepository) FindByID(ctx context.Context, id int64) (*models.Etudiant, error) {
	var row etudiantRow
	if err := r.db.GetContext(ctx, &row, selectEtudiant+` WHERE e.id = $1`, id); err != nil {
		return nil, err
	}
	e := row.toModel()
	return &e, nil
}

// Update rewrites a student.
func (r *EtudiantRepository) Update(ctx context.Context, e *models.Etudiant) error {
	const query = `UPDATE etudiants SET nom = $1, prenom = $2, email = $3, parcours_id = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, e.Nom, e.Prenom, e.Email, parcoursIDOf(e), e.ID)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

// Delete removes a student; grades cascade.
func (r *EtudiantRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM etudiants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// List returns every student in storage order.
func (r *EtudiantRepository) List(ctx context.Context) ([]models.Etudiant, error) {
	var rows []etudiantRow
	if err := r.db.SelectContext(ctx, &rows, selectEtudiant); err != nil {
		return nil, err
	}
	items := make([]models.Etudiant, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}
