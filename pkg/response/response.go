package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/scolarite-dao/pkg/errors"
)

// Options reproduce the inconsistencies of real backends: PascalCase keys and
// envelopes around created or updated entities.
type Options struct {
	PascalCase bool
	Wrap       bool
}

// Renderer writes mock backend answers.
type Renderer struct {
	opts Options
}

// NewRenderer builds a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// JSON writes data as is, apart from the key casing.
func (r *Renderer) JSON(c *gin.Context, status int, data interface{}) {
	body, err := r.encode(data)
	if err != nil {
		r.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
		return
	}
	r.write(c, status, body)
}

// Entity writes a created or updated entity, inside {envelope: ...} when
// wrapping is on. The envelope key keeps its casing.
func (r *Renderer) Entity(c *gin.Context, status int, envelope string, data interface{}) {
	body, err := r.encode(data)
	if err == nil && r.opts.Wrap {
		body, err = json.Marshal(map[string]json.RawMessage{envelope: body})
	}
	if err != nil {
		r.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
		return
	}
	r.write(c, status, body)
}

func (r *Renderer) encode(data interface{}) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil || !r.opts.PascalCase {
		return body, err
	}
	return pascalize(body)
}

func (r *Renderer) write(c *gin.Context, status int, body []byte) {
	c.Header("Cache-Control", "no-store")
	c.Data(status, "application/json; charset=utf-8", body)
}

// Created responds with HTTP 201 Created.
func (r *Renderer) Created(c *gin.Context, envelope string, data interface{}) {
	r.Entity(c, http.StatusCreated, envelope, data)
}

// Error writes {"code", "message"} for not found and server failures and
// {"code", "error"} for the other client errors.
func (r *Renderer) Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	key := "error"
	if status == http.StatusNotFound || status >= http.StatusInternalServerError {
		key = "message"
	}
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(status, gin.H{"code": appErr.Code, key: appErr.Message})
}

// NoContent sends a 204 response.
func (r *Renderer) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// pascalize upper-cases the first letter of every object key. Snake_case keys
// are left alone.
func pascalize(body []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return json.Marshal(pascalValue(value))
}

func pascalValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[PascalKey(key)] = pascalValue(item)
		}
		return out
	case []interface{}:
		for i := range v {
			v[i] = pascalValue(v[i])
		}
		return v
	}
	return value
}

// PascalKey converts a camelCase key to PascalCase.
func PascalKey(key string) string {
	if key == "" || strings.Contains(key, "_") {
		return key
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}
