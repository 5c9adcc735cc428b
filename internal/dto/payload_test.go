package dto

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

func TestEtudiantPayloadWireShape(t *testing.T) {
	payload := NewEtudiantPayload(models.Etudiant{
		ID: 10, Nom: "Dupont", Prenom: "Jean", Email: "j@d.fr",
		Parcours: &models.Parcours{ID: 1, NomParcours: "Info", AnneeFormation: 2024},
	})
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nom":"Dupont","prenom":"Jean","email":"j@d.fr","parcours":{"id":1,"nomParcours":"Info","anneeFormation":2024}}`, string(raw))

	noTrack, err := json.Marshal(NewEtudiantPayload(models.Etudiant{Nom: "A", Prenom: "B", Email: "a@b.fr"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"nom":"A","prenom":"B","email":"a@b.fr","parcours":null}`, string(noTrack))
}

func TestUePayloadSendsParcoursIDs(t *testing.T) {
	raw, err := json.Marshal(NewUePayload(models.UE{
		ID: 3, Intitule: "Algorithmique", NumeroUe: "UE01",
		Parcours: []models.Parcours{{ID: 1, NomParcours: "Info"}, {ID: 2}},
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"intitule":"Algorithmique","numeroUe":"UE01","parcours":[1,2]}`, string(raw))
}

func TestNotePayloadsWireShape(t *testing.T) {
	note := models.Note{ID: 9, Valeur: 0, EtudiantID: 10, UeID: 7}

	created, err := json.Marshal(NewNoteCreatePayload(note))
	require.NoError(t, err)
	assert.JSONEq(t, `{"etudiant_id":10,"ue_id":7,"valeur":0}`, string(created))

	updated, err := json.Marshal(NewNoteUpdatePayload(note))
	require.NoError(t, err)
	assert.JSONEq(t, `{"valeur":0}`, string(updated))
}

func TestPayloadValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(NewNoteCreatePayload(models.Note{Valeur: 0, EtudiantID: 1, UeID: 2})))
	assert.Error(t, v.Struct(NewNoteCreatePayload(models.Note{Valeur: 21, EtudiantID: 1, UeID: 2})))
	assert.Error(t, v.Struct(NoteUpdatePayload{}))

	assert.Error(t, v.Struct(EtudiantPayload{Nom: "A", Prenom: "B", Email: "not-an-email"}))
	assert.NoError(t, v.Struct(EtudiantPayload{Nom: "A", Prenom: "B", Email: "a@b.fr"}))
	assert.Error(t, v.Struct(EtudiantPayload{Nom: "A", Prenom: "B", Email: "a@b.fr", Parcours: &ParcoursRef{}}))

	assert.Error(t, v.Struct(ParcoursPayload{NomParcours: "Info"}))
	assert.Error(t, v.Struct(UePayload{Intitule: "Algo"}))
}
