package dao

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/client"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/internal/service"
	appErrors "github.com/noah-isme/scolarite-dao/pkg/errors"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// fakeBackend answers every request with the configured status and body and
// records what it received.
type fakeBackend struct {
	status   int
	body     string
	requests []recordedRequest
}

func newFakeBackend(t *testing.T, status int, body string) (*fakeBackend, *Registry, *service.MetricsService) {
	t.Helper()
	fb := &fakeBackend{status: status, body: body}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		fb.requests = append(fb.requests, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fb.status)
		_, _ = w.Write([]byte(fb.body))
	}))
	t.Cleanup(server.Close)

	metrics := service.NewMetricsService()
	c := client.NewWithHTTPClient(server.URL, server.Client(), zap.NewNop())
	return fb, NewRegistry(c, zap.NewNop(), metrics), metrics
}

func (fb *fakeBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	require.NotEmpty(t, fb.requests)
	return fb.requests[len(fb.requests)-1]
}

func requireAppError(t *testing.T, err error, kind *appErrors.Error, message string) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.True(t, errors.Is(err, kind), "expected %s, got %s", kind.Code, appErr.Code)
	assert.Equal(t, message, err.Error())
	return appErr
}

func TestEtudiantCreateUnwrapsAndNormalizes(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusCreated,
		`{"etudiant":{"id":10,"Nom":"Dupont","Prenom":"Jean","Email":"j@d.fr","Parcours":{"Id":1,"NomParcours":"Info","AnneeFormation":2024}}}`)

	input := models.Etudiant{
		Nom: "Dupont", Prenom: "Jean", Email: "j@d.fr",
		Parcours: &models.Parcours{ID: 1, NomParcours: "Info", AnneeFormation: 2024},
	}
	created, err := reg.Etudiants.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, input.Nom, created.Nom)
	assert.Equal(t, input.Prenom, created.Prenom)
	assert.Equal(t, input.Email, created.Email)
	assert.Equal(t, input.Parcours, created.Parcours)

	req := fb.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/etudiants", req.Path)
	assert.NotContains(t, req.Body, "id")
	assert.Equal(t, map[string]interface{}{"id": 1.0, "nomParcours": "Info", "anneeFormation": 2024.0}, req.Body["parcours"])
}

func TestEtudiantCreateErrorMessageChain(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "error field first", status: http.StatusBadRequest, body: `{"error":"email invalide","message":"validation"}`, want: "email invalide"},
		{name: "message field next", status: http.StatusConflict, body: `{"message":"email déjà utilisé"}`, want: "email déjà utilisé"},
		{name: "fallback", status: http.StatusInternalServerError, body: `oops`, want: "Impossible de créer le nouvel étudiant"},
		{name: "undecodable success", status: http.StatusCreated, body: `{"etudiant":`, want: "Impossible de créer le nouvel étudiant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reg, _ := newFakeBackend(t, tt.status, tt.body)
			_, err := reg.Etudiants.Create(context.Background(), models.Etudiant{Nom: "A", Prenom: "B", Email: "a@b.fr"})
			requireAppError(t, err, appErrors.ErrCreationFailed, tt.want)
		})
	}
}

func TestCreateSurfacesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	reg := NewRegistry(client.NewWithHTTPClient(url, nil, nil), nil, nil)
	_, err := reg.Parcours.Create(context.Background(), models.Parcours{NomParcours: "Info", AnneeFormation: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrCreationFailed))
	assert.NotEqual(t, "Impossible de créer le nouveau parcours", err.Error())
	assert.Contains(t, err.Error(), "/api/parcours")
}

func TestGetNotFoundUsesLocalizedMessage(t *testing.T) {
	_, reg, metrics := newFakeBackend(t, http.StatusNotFound, `{"message":"Etudiant 99 introuvable"}`)

	etudiant, err := reg.Etudiants.Get(context.Background(), 99)
	assert.Nil(t, etudiant)
	appErr := requireAppError(t, err, appErrors.ErrRetrievalFailed, "Impossible de récupérer l'étudiant")
	assert.Equal(t, http.StatusNotFound, appErr.Status)

	var be *client.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Etudiant 99 introuvable", be.MessageField)
	assert.Equal(t, uint64(1), metrics.Snapshot().CallFailures)
}

func TestGetEntityEquivalentMessages(t *testing.T) {
	_, reg, _ := newFakeBackend(t, http.StatusNotFound, `{}`)
	ctx := context.Background()

	_, err := reg.Parcours.Get(ctx, 1)
	requireAppError(t, err, appErrors.ErrRetrievalFailed, "Impossible de récupérer le parcours")
	_, err = reg.UEs.Get(ctx, 1)
	requireAppError(t, err, appErrors.ErrRetrievalFailed, "Impossible de récupérer l'UE")
	_, err = reg.Notes.Get(ctx, 1)
	requireAppError(t, err, appErrors.ErrRetrievalFailed, "Impossible de récupérer la note")
}

func TestGetBareResponse(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusOK, `{"Id":3,"Intitule":"Réseaux","NumeroUe":"UE03","Parcours":[{"Id":1,"NomParcours":"Info","AnneeFormation":2024}]}`)

	ue, err := reg.UEs.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "/api/ues/3", fb.last(t).Path)
	assert.Equal(t, models.UE{
		ID: 3, Intitule: "Réseaux", NumeroUe: "UE03",
		Parcours: []models.Parcours{{ID: 1, NomParcours: "Info", AnneeFormation: 2024}},
	}, *ue)
}

func TestUpdateSendsMutableSubset(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusOK, `{"ue":{"id":3,"intitule":"Réseaux avancés","numeroUe":"UE03","parcours":[1,2]}}`)

	updated, err := reg.UEs.Update(context.Background(), 3, models.UE{
		ID: 3, Intitule: "Réseaux avancés", NumeroUe: "UE03",
		Parcours: []models.Parcours{{ID: 1}, {ID: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Réseaux avancés", updated.Intitule)
	assert.Equal(t, []int64{1, 2}, updated.ParcoursIDs())

	req := fb.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/ues/3", req.Path)
	assert.Equal(t, map[string]interface{}{
		"intitule": "Réseaux avancés",
		"numeroUe": "UE03",
		"parcours": []interface{}{1.0, 2.0},
	}, req.Body)
}

func TestUpdateErrorMessageChain(t *testing.T) {
	_, reg, _ := newFakeBackend(t, http.StatusBadRequest, `{"error":"valeur hors barème"}`)
	_, err := reg.Notes.Update(context.Background(), 4, models.Note{Valeur: 25})
	requireAppError(t, err, appErrors.ErrUpdateFailed, "valeur hors barème")

	_, reg, _ = newFakeBackend(t, http.StatusInternalServerError, ``)
	_, err = reg.Parcours.Update(context.Background(), 4, models.Parcours{NomParcours: "Info"})
	requireAppError(t, err, appErrors.ErrUpdateFailed, "Impossible de mettre à jour le parcours")
}

func TestDelete(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusOK, `{"deleted":true}`)
	require.NoError(t, reg.Parcours.Delete(context.Background(), 8))
	req := fb.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/parcours/8", req.Path)

	_, reg, _ = newFakeBackend(t, http.StatusConflict, `{"error":"parcours utilisé"}`)
	err := reg.Parcours.Delete(context.Background(), 8)
	requireAppError(t, err, appErrors.ErrDeletionFailed, "Impossible de supprimer le parcours")
}

func TestListSortsByID(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusOK,
		`[{"id":5,"valeur":12,"etudiant_id":1,"ue_id":1},{"id":1,"valeur":8,"etudiant_id":1,"ue_id":2},{"Id":3,"Valeur":15,"etudiant_id":2,"ue_id":1}]`)

	notes, err := reg.Notes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{notes[0].ID, notes[1].ID, notes[2].ID})
	assert.Equal(t, 15.0, notes[1].Valeur)
	assert.Equal(t, "/api/notes", fb.last(t).Path)
}

func TestListTreatsMissingIDAsZeroAndIsStable(t *testing.T) {
	_, reg, _ := newFakeBackend(t, http.StatusOK,
		`[{"id":2,"nom":"B"},{"nom":"sans id 1"},{"id":null,"nom":"sans id 2"},{"id":1,"nom":"A"}]`)

	etudiants, err := reg.Etudiants.List(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(etudiants))
	for _, e := range etudiants {
		names = append(names, e.Nom)
	}
	assert.Equal(t, []string{"sans id 1", "sans id 2", "A", "B"}, names)
}

func TestListEmptyAndFailures(t *testing.T) {
	_, reg, _ := newFakeBackend(t, http.StatusOK, `[]`)
	ues, err := reg.UEs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ues)

	_, reg, _ = newFakeBackend(t, http.StatusOK, `{"items":[]}`)
	_, err = reg.UEs.List(context.Background())
	requireAppError(t, err, appErrors.ErrListFailed, "Impossible de récupérer la liste des UEs")

	_, reg, _ = newFakeBackend(t, http.StatusOK, `null`)
	_, err = reg.Parcours.List(context.Background())
	requireAppError(t, err, appErrors.ErrListFailed, "Impossible de récupérer la liste des parcours")

	_, reg, _ = newFakeBackend(t, http.StatusServiceUnavailable, `{"error":"maintenance"}`)
	_, err = reg.Etudiants.List(context.Background())
	requireAppError(t, err, appErrors.ErrListFailed, "Impossible de récupérer la liste des étudiants")
}

func TestNoteCreateSendsOnlyValueAndForeignKeys(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusCreated, `{"note":{"id":12,"valeur":14.5,"etudiant_id":10,"ue_id":3}}`)

	note, err := reg.Notes.Create(context.Background(), models.Note{ID: 99, Valeur: 14.5, EtudiantID: 10, UeID: 3})
	require.NoError(t, err)
	assert.Equal(t, models.Note{ID: 12, Valeur: 14.5, EtudiantID: 10, UeID: 3}, *note)
	assert.Equal(t, map[string]interface{}{"etudiant_id": 10.0, "ue_id": 3.0, "valeur": 14.5}, fb.last(t).Body)
}

func TestNoteUpdateSendsOnlyValue(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusOK, `{"id":12,"valeur":16,"etudiant_id":10,"ue_id":3}`)

	note, err := reg.Notes.Update(context.Background(), 12, models.Note{Valeur: 16, EtudiantID: 10, UeID: 3})
	require.NoError(t, err)
	assert.Equal(t, 16.0, note.Valeur)
	assert.Equal(t, map[string]interface{}{"valeur": 16.0}, fb.last(t).Body)
}

func TestNoteCollectionLookups(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusOK, `[{"id":9,"valeur":10,"etudiant_id":4,"ue_id":2},{"id":2,"valeur":11,"etudiant_id":5,"ue_id":2}]`)
	ctx := context.Background()

	byUE, err := reg.Notes.ListByCourseUnit(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "/api/notes/ue/2", fb.last(t).Path)
	assert.Equal(t, int64(2), byUE[0].ID)

	byStudent, err := reg.Notes.ListByStudent(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "/api/notes/etudiant/4", fb.last(t).Path)
	assert.Equal(t, []int64{2, 9}, []int64{byStudent[0].ID, byStudent[1].ID})

	fb.status = http.StatusInternalServerError
	_, err = reg.Notes.ListByCourseUnit(ctx, 2)
	requireAppError(t, err, appErrors.ErrListFailed, "Impossible de récupérer les notes de l'UE")
	_, err = reg.Notes.ListByStudent(ctx, 4)
	requireAppError(t, err, appErrors.ErrListFailed, "Impossible de récupérer les notes de l'étudiant")
}

func TestFindByStudentAndCourseUnit(t *testing.T) {
	fb, reg, _ := newFakeBackend(t, http.StatusOK, `{"id":7,"valeur":13,"etudiant_id":4,"ue_id":2}`)
	ctx := context.Background()

	note := reg.Notes.FindByStudentAndCourseUnit(ctx, 4, 2)
	require.NotNil(t, note)
	assert.Equal(t, int64(7), note.ID)
	assert.Equal(t, "/api/notes/etudiant/4/ue/2", fb.last(t).Path)

	fb.status, fb.body = http.StatusNotFound, `{"message":"Note introuvable"}`
	assert.Nil(t, reg.Notes.FindByStudentAndCourseUnit(ctx, 4, 2))

	fb.status, fb.body = http.StatusInternalServerError, `{"error":"db down"}`
	assert.Nil(t, reg.Notes.FindByStudentAndCourseUnit(ctx, 4, 2))

	fb.status, fb.body = http.StatusOK, `null`
	assert.Nil(t, reg.Notes.FindByStudentAndCourseUnit(ctx, 4, 2))
}

func TestCallsAreObserved(t *testing.T) {
	_, reg, metrics := newFakeBackend(t, http.StatusOK, `[]`)
	_, err := reg.Parcours.List(context.Background())
	require.NoError(t, err)
	_, err = reg.Notes.List(context.Background())
	require.NoError(t, err)

	snap := metrics.Snapshot()
	assert.Equal(t, uint64(2), snap.CallsTotal)
	assert.Zero(t, snap.CallFailures)
}

func TestFindWithoutGradeIsNotAFailure(t *testing.T) {
	fb, reg, metrics := newFakeBackend(t, http.StatusOK, `null`)
	ctx := context.Background()

	assert.Nil(t, reg.Notes.FindByStudentAndCourseUnit(ctx, 4, 2))
	snap := metrics.Snapshot()
	assert.Equal(t, uint64(1), snap.CallsTotal)
	assert.Zero(t, snap.CallFailures)

	fb.status, fb.body = http.StatusInternalServerError, `{"error":"db down"}`
	assert.Nil(t, reg.Notes.FindByStudentAndCourseUnit(ctx, 4, 2))
	snap = metrics.Snapshot()
	assert.Equal(t, uint64(2), snap.CallsTotal)
	assert.Equal(t, uint64(1), snap.CallFailures)
}
