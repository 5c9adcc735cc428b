package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

const selectNote = `SELECT id, valeur, etudiant_id, ue_id FROM notes`

// NoteRepository persists grades.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new repository instance.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a grade; a second grade for the same pair is rejected.
func (r *NoteRepository) Create(ctx context.Context, n *models.Note) error {
	const query = `INSERT INTO notes (valeur, etudiant_id, ue_id) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, n.Valeur, n.EtudiantID, n.UeID).Scan(&n.ID)
	return translate(err)
}

// FindByID returns a grade or sql.ErrNoRows.
func (r *NoteRepository) FindByID(ctx context.Context, id int64) (*models.Note, error) {
	var n models.Note
	if err := r.db.GetContext(ctx, &n, selectNote+` WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update changes the value and reloads the stored row into n.
func (r *NoteRepository) Update(ctx context.Context, n *models.Note) error {
	const query = `UPDATE notes SET valeur = $1 WHERE id = $2 RETURNING id, valeur, etudiant_id, ue_id`
	return r.db.QueryRowxContext(ctx, query, n.Valeur, n.ID).StructScan(n)
}

// Delete removes a grade.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// List returns every grade in storage order.
func (r *NoteRepository) List(ctx context.Context) ([]models.Note, error) {
	return r.selectNotes(ctx, selectNote)
}

// ListByUE returns the grades recorded in a course unit.
func (r *NoteRepository) ListByUE(ctx context.Context, ueID int64) ([]models.Note, error) {
	return r.selectNotes(ctx, selectNote+` WHERE ue_id = $1`, ueID)
}

// ListByEtudiant returns the grades of a student.
func (r *NoteRepository) ListByEtudiant(ctx context.Context, etudiantID int64) ([]models.Note, error) {
	return r.selectNotes(ctx, selectNote+` WHERE etudiant_id = $1`, etudiantID)
}

// FindByEtudiantAndUE returns the single grade of a student in a course unit.
func (r *NoteRepository) FindByEtudiantAndUE(ctx context.Context, etudiantID, ueID int64) (*models.Note, error) {
	var n models.Note
	if err := r.db.GetContext(ctx, &n, selectNote+` WHERE etudiant_id = $1 AND ue_id = $2`, etudiantID, ueID); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) selectNotes(ctx context.Context, query string, args ...interface{}) ([]models.Note, error) {
	items := make([]models.Note, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}
