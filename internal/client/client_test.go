package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-dao/pkg/config"
	"github.com/noah-isme/scolarite-dao/pkg/middleware/requestid"
)

func TestDoSendsJSONAndRequestID(t *testing.T) {
	var gotBody map[string]interface{}
	var gotReqID, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/parcours", r.URL.Path)
		gotReqID = r.Header.Get(requestid.HeaderKey)
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	t.Cleanup(server.Close)

	c := New(config.APIConfig{BaseURL: server.URL + "/", Timeout: time.Second}, nil)
	ctx := requestid.WithContext(context.Background(), "req-7")
	resp, err := c.Do(ctx, http.MethodPost, "/api/parcours", map[string]interface{}{"nomParcours": "Info"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":1}`, string(resp.Body))
	assert.Equal(t, "req-7", gotReqID)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Info", gotBody["nomParcours"])
}

func TestDoGeneratesRequestID(t *testing.T) {
	var gotReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReqID = r.Header.Get(requestid.HeaderKey)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	_, err := NewWithHTTPClient(server.URL, server.Client(), nil).Do(context.Background(), http.MethodDelete, "/api/ues/1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, gotReqID)
}

func TestDoBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"email déjà utilisé","message":"validation"}`))
	}))
	t.Cleanup(server.Close)

	_, err := NewWithHTTPClient(server.URL, server.Client(), nil).Do(context.Background(), http.MethodPost, "/api/etudiants", struct{}{})
	require.Error(t, err)

	var be *BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
	assert.Equal(t, "email déjà utilisé", be.ErrorField)
	assert.Equal(t, "validation", be.MessageField)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestDoBackendErrorIgnoresNonStringFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"X"},"message":42}`))
	}))
	t.Cleanup(server.Close)

	_, err := NewWithHTTPClient(server.URL, server.Client(), nil).Do(context.Background(), http.MethodGet, "/api/notes", nil)
	var be *BackendError
	require.True(t, errors.As(err, &be))
	assert.Empty(t, be.ErrorField)
	assert.Empty(t, be.MessageField)
	assert.Equal(t, "backend answered 500 Internal Server Error", be.Error())
}

func TestDoTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewWithHTTPClient(url, nil, nil).Do(context.Background(), http.MethodGet, "/api/notes", nil)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.NotEmpty(t, te.Error())
	assert.Equal(t, 0, StatusCode(err))
}

func TestDoHonoursContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWithHTTPClient(server.URL, server.Client(), nil).Do(ctx, http.MethodGet, "/api/notes", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
