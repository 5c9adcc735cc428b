package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEtudiantCasingNormalizesIdentically(t *testing.T) {
	camel := `{"id":5,"nom":"Dupont","prenom":"Jean","email":"j@d.fr","parcours":{"id":1,"nomParcours":"Info","anneeFormation":2024}}`
	pascal := `{"Id":5,"Nom":"Dupont","Prenom":"Jean","Email":"j@d.fr","Parcours":{"Id":1,"NomParcours":"Info","AnneeFormation":2024}}`

	var a, b Etudiant
	require.NoError(t, json.Unmarshal([]byte(camel), &a))
	require.NoError(t, json.Unmarshal([]byte(pascal), &b))

	assert.Equal(t, a, b)
	assert.Equal(t, int64(5), a.ID)
	require.NotNil(t, a.Parcours)
	assert.Equal(t, Parcours{ID: 1, NomParcours: "Info", AnneeFormation: 2024}, *a.Parcours)
}

func TestEtudiantWithoutParcours(t *testing.T) {
	for _, raw := range []string{
		`{"id":3,"nom":"Martin"}`,
		`{"id":3,"nom":"Martin","parcours":null}`,
	} {
		var e Etudiant
		require.NoError(t, json.Unmarshal([]byte(raw), &e))
		assert.Nil(t, e.Parcours, raw)
		assert.Equal(t, "Martin", e.Nom)
	}
}

func TestEtudiantCanonicalKeyWinsWhenSet(t *testing.T) {
	var e Etudiant
	require.NoError(t, json.Unmarshal([]byte(`{"nom":"Petit","Nom":"Grand","prenom":"","Prenom":"Lea"}`), &e))
	assert.Equal(t, "Petit", e.Nom)
	assert.Equal(t, "Lea", e.Prenom)
}

func TestEtudiantNullIDDecodesAsUnassigned(t *testing.T) {
	var e Etudiant
	require.NoError(t, json.Unmarshal([]byte(`{"id":null,"nom":"Durand"}`), &e))
	assert.Equal(t, int64(0), e.Identifier())
}

func TestParcoursCasing(t *testing.T) {
	var a, b Parcours
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"nomParcours":"MIAGE","anneeFormation":3}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"Id":2,"NomParcours":"MIAGE","AnneeFormation":3}`), &b))
	assert.Equal(t, a, b)
}

func TestUECasingAndParcoursReferences(t *testing.T) {
	camel := `{"id":7,"intitule":"Réseaux","numeroUe":"UE07","parcours":[{"id":1,"nomParcours":"Info","anneeFormation":2024}]}`
	pascal := `{"Id":7,"Intitule":"Réseaux","NumeroUe":"UE07","Parcours":[{"Id":1,"NomParcours":"Info","AnneeFormation":2024}]}`

	var a, b UE
	require.NoError(t, json.Unmarshal([]byte(camel), &a))
	require.NoError(t, json.Unmarshal([]byte(pascal), &b))
	assert.Equal(t, a, b)

	var refs UE
	require.NoError(t, json.Unmarshal([]byte(`{"id":8,"intitule":"BD","numeroUe":"UE08","parcours":[1,4]}`), &refs))
	assert.Equal(t, []int64{1, 4}, refs.ParcoursIDs())
}

func TestUEEmptyParcoursIsKept(t *testing.T) {
	var u UE
	require.NoError(t, json.Unmarshal([]byte(`{"id":9,"parcours":[],"Parcours":[{"id":2}]}`), &u))
	assert.NotNil(t, u.Parcours)
	assert.Empty(t, u.Parcours)
}

func TestNoteForeignKeysAreSnakeCaseOnly(t *testing.T) {
	var snake, pascal Note
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"valeur":12.5,"etudiant_id":10,"ue_id":7}`), &snake))
	require.NoError(t, json.Unmarshal([]byte(`{"Id":4,"Valeur":12.5,"EtudiantId":10,"UeId":7}`), &pascal))

	assert.Equal(t, Note{ID: 4, Valeur: 12.5, EtudiantID: 10, UeID: 7}, snake)
	assert.Equal(t, int64(4), pascal.ID)
	assert.Equal(t, 12.5, pascal.Valeur)
	assert.Zero(t, pascal.EtudiantID)
	assert.Zero(t, pascal.UeID)
}

func TestNoteForeignKeysIgnoreOtherCasings(t *testing.T) {
	for _, body := range []string{
		`{"Id":3,"Valeur":12,"Etudiant_id":7,"UE_ID":9}`,
		`{"id":3,"valeur":12,"ETUDIANT_ID":7,"Ue_Id":9}`,
	} {
		var n Note
		require.NoError(t, json.Unmarshal([]byte(body), &n), body)
		assert.Equal(t, Note{ID: 3, Valeur: 12}, n, body)
	}

	var n Note
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"valeur":12,"etudiant_id":null,"ue_id":9,"UE_ID":4}`), &n))
	assert.Equal(t, Note{ID: 3, Valeur: 12, UeID: 9}, n)
}

func TestNoteZeroGradeIsKept(t *testing.T) {
	var n Note
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"valeur":0,"Valeur":15}`), &n))
	assert.Equal(t, 0.0, n.Valeur)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"valeur":null,"Valeur":15}`), &n))
	assert.Equal(t, 15.0, n.Valeur)
}

func TestUnwrap(t *testing.T) {
	wrapped := []byte(`{"note":{"id":3,"valeur":14}}`)
	assert.JSONEq(t, `{"id":3,"valeur":14}`, string(Unwrap(wrapped, "note")))

	bare := []byte(`{"id":3,"valeur":14}`)
	assert.Equal(t, bare, Unwrap(bare, "note"))

	// an Etudiant carries a "parcours" object, which is not an envelope for it
	etudiant := []byte(`{"id":1,"parcours":{"id":2}}`)
	assert.Equal(t, etudiant, Unwrap(etudiant, "etudiant"))

	ids := []byte(`{"parcours":[1,2]}`)
	assert.Equal(t, ids, Unwrap(ids, "parcours"))
	assert.Equal(t, []byte(`[1,2]`), Unwrap([]byte(`[1,2]`), "ue"))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Jean Dupont", Etudiant{Nom: "Dupont", Prenom: "Jean"}.FullName())
	assert.Equal(t, "Dupont", Etudiant{Nom: "Dupont"}.FullName())
}
