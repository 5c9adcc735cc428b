package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

var (
	// ErrNotFound is returned when no row matches; it aliases sql.ErrNoRows so
	// both stores answer the same way.
	ErrNotFound = sql.ErrNoRows
	// ErrInvalidReference is returned when a write points at a missing entity.
	ErrInvalidReference = errors.New("referenced entity does not exist")
	// ErrDuplicateNote is returned when a student already has a grade in a course unit.
	ErrDuplicateNote = errors.New("note already recorded for this etudiant and ue")
)

// Store persists one entity type. Create and Update use the scalar fields and
// the references (Etudiant.Parcours.ID, UE.Parcours[].ID); FindByID and List
// resolve references into full objects.
type Store[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]T, error)
}

// NoteStore adds the grade lookups.
type NoteStore interface {
	Store[models.Note]
	ListByUE(ctx context.Context, ueID int64) ([]models.Note, error)
	ListByEtudiant(ctx context.Context, etudiantID int64) ([]models.Note, error)
	FindByEtudiantAndUE(ctx context.Context, etudiantID, ueID int64) (*models.Note, error)
}

// Set groups the stores backing the mock backend.
type Set struct {
	Parcours  Store[models.Parcours]
	Etudiants Store[models.Etudiant]
	UEs       Store[models.UE]
	Notes     NoteStore
}

// NewPostgresSet wires the PostgreSQL repositories on db.
func NewPostgresSet(db *sqlx.DB) Set {
	return Set{
		Parcours:  NewParcoursRepository(db),
		Etudiants: NewEtudiantRepository(db),
		UEs:       NewUeRepository(db),
		Notes:     NewNoteRepository(db),
	}
}
