package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

func seedMemory(t *testing.T) (Set, models.Parcours, models.Etudiant, models.UE) {
	t.Helper()
	ctx := context.Background()
	set := NewMemorySet()

	p := models.Parcours{NomParcours: "Informatique", AnneeFormation: 2024}
	require.NoError(t, set.Parcours.Create(ctx, &p))
	e := models.Etudiant{Nom: "Martin", Prenom: "Alice", Email: "alice@example.com", Parcours: &models.Parcours{ID: p.ID}}
	require.NoError(t, set.Etudiants.Create(ctx, &e))
	u := models.UE{Intitule: "Algorithmique", NumeroUe: "UE101", Parcours: []models.Parcours{{ID: p.ID}}}
	require.NoError(t, set.UEs.Create(ctx, &u))
	return set, p, e, u
}

func TestMemoryEtudiantResolvesParcours(t *testing.T) {
	set, p, e, _ := seedMemory(t)

	found, err := set.Etudiants.FindByID(context.Background(), e.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Parcours)
	assert.Equal(t, p, *found.Parcours)
}

func TestMemoryEtudiantRejectsUnknownParcours(t *testing.T) {
	set := NewMemorySet()
	e := models.Etudiant{Nom: "Durand", Prenom: "Paul", Email: "paul@example.com", Parcours: &models.Parcours{ID: 42}}

	err := set.Etudiants.Create(context.Background(), &e)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestMemoryUEResolvesParcoursList(t *testing.T) {
	set, p, _, u := seedMemory(t)

	found, err := set.UEs.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Parcours{p}, found.Parcours)
}

func TestMemoryNotesDuplicateAndLookups(t *testing.T) {
	ctx := context.Background()
	set, _, e, u := seedMemory(t)

	n := models.Note{Valeur: 14.5, EtudiantID: e.ID, UeID: u.ID}
	require.NoError(t, set.Notes.Create(ctx, &n))
	assert.NotZero(t, n.ID)

	dup := models.Note{Valeur: 9, EtudiantID: e.ID, UeID: u.ID}
	assert.ErrorIs(t, set.Notes.Create(ctx, &dup), ErrDuplicateNote)

	byUE, err := set.Notes.ListByUE(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, byUE, 1)

	byEtudiant, err := set.Notes.ListByEtudiant(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, byEtudiant, 1)

	found, err := set.Notes.FindByEtudiantAndUE(ctx, e.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 14.5, found.Valeur)

	_, err = set.Notes.FindByEtudiantAndUE(ctx, e.ID, u.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryNoteUpdateKeepsPair(t *testing.T) {
	ctx := context.Background()
	set, _, e, u := seedMemory(t)
	n := models.Note{Valeur: 10, EtudiantID: e.ID, UeID: u.ID}
	require.NoError(t, set.Notes.Create(ctx, &n))

	update := models.Note{ID: n.ID, Valeur: 17}
	require.NoError(t, set.Notes.Update(ctx, &update))
	assert.Equal(t, e.ID, update.EtudiantID)
	assert.Equal(t, u.ID, update.UeID)
	assert.Equal(t, 17.0, update.Valeur)
}

func TestMemoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	set, p, e, u := seedMemory(t)
	n := models.Note{Valeur: 12, EtudiantID: e.ID, UeID: u.ID}
	require.NoError(t, set.Notes.Create(ctx, &n))

	require.NoError(t, set.Parcours.Delete(ctx, p.ID))
	etudiant, err := set.Etudiants.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, etudiant.Parcours)
	ue, err := set.UEs.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, ue.Parcours)

	require.NoError(t, set.Etudiants.Delete(ctx, e.ID))
	_, err = set.Notes.FindByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryMissingEntities(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet()

	_, err := set.Parcours.FindByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, set.Etudiants.Delete(ctx, 1), ErrNotFound)
	assert.ErrorIs(t, set.UEs.Update(ctx, &models.UE{ID: 1}), ErrNotFound)
	assert.ErrorIs(t, set.Notes.Update(ctx, &models.Note{ID: 1}), ErrNotFound)

	items, err := set.Notes.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
