package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/scolarite-dao/pkg/errors"
)

func render(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestRendererPascalCaseKeepsSnakeKeys(t *testing.T) {
	r := NewRenderer(Options{PascalCase: true})
	w := render(t, func(c *gin.Context) {
		r.JSON(c, http.StatusOK, []map[string]interface{}{
			{"id": 1, "nomParcours": "Info", "etudiant_id": 4},
		})
	})

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Contains(t, body[0], "Id")
	assert.Contains(t, body[0], "NomParcours")
	assert.Contains(t, body[0], "etudiant_id")
}

func TestRendererWrapsEntities(t *testing.T) {
	r := NewRenderer(Options{Wrap: true})
	w := render(t, func(c *gin.Context) {
		r.Created(c, "etudiant", map[string]interface{}{"id": 10})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"etudiant":{"id":10}}`, w.Body.String())
}

func TestRendererErrorKeys(t *testing.T) {
	r := NewRenderer(Options{})

	notFound := render(t, func(c *gin.Context) {
		r.Error(c, appErrors.Clone(appErrors.ErrNotFound, "Etudiant introuvable"))
	})
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Etudiant introuvable"}`, notFound.Body.String())

	invalid := render(t, func(c *gin.Context) {
		r.Error(c, appErrors.Clone(appErrors.ErrValidation, "le champ nom est obligatoire"))
	})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.JSONEq(t, `{"code":"VALIDATION_ERROR","error":"le champ nom est obligatoire"}`, invalid.Body.String())

	internal := render(t, func(c *gin.Context) { r.Error(c, errors.New("boom")) })
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
}

func TestPascalKey(t *testing.T) {
	assert.Equal(t, "AnneeFormation", PascalKey("anneeFormation"))
	assert.Equal(t, "ue_id", PascalKey("ue_id"))
	assert.Equal(t, "", PascalKey(""))
}

func TestRendererWrapKeepsEnvelopeKey(t *testing.T) {
	r := NewRenderer(Options{Wrap: true, PascalCase: true})
	w := render(t, func(c *gin.Context) {
		r.Entity(c, http.StatusOK, "note", map[string]interface{}{"valeur": 12.5, "ue_id": 3})
	})

	assert.JSONEq(t, `{"note":{"Valeur":12.5,"ue_id":3}}`, w.Body.String())
}
