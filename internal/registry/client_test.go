package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inovacc/curatr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, "test-token", ClientOptions{
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	return client, srv
}

func TestListModelsEncodesQuery(t *testing.T) {
	var gotQuery map[string][]string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/models", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		gotQuery = r.URL.Query()

		_ = json.NewEncoder(w).Encode(ListModelsResponse{Total: 0})
	}))

	_, err := client.ListModels(context.Background(), ListModelsRequest{
		Archived:    true,
		Name:        "bert",
		Description: "nlp model",
		Labels:      []string{"prod", "vision"},
		Users:       []string{"maria"},
		SortKey:     model.SortByName,
		SortDesc:    true,
		Limit:       25,
		Offset:      50,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"true"}, gotQuery["archived"])
	assert.Equal(t, []string{"bert"}, gotQuery["name"])
	assert.Equal(t, []string{"nlp model"}, gotQuery["description"])
	assert.Equal(t, []string{"prod", "vision"}, gotQuery["labels"])
	assert.Equal(t, []string{"maria"}, gotQuery["users"])
	assert.Equal(t, []string{"name"}, gotQuery["sort_by"])
	assert.Equal(t, []string{"desc"}, gotQuery["order_by"])
	assert.Equal(t, []string{"25"}, gotQuery["limit"])
	assert.Equal(t, []string{"50"}, gotQuery["offset"])
}

func TestListModelsDecodesPage(t *testing.T) {
	updated := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ListModelsResponse{
			Models: []model.ModelItem{{
				ID:              1,
				Name:            "bert",
				NumVersions:     3,
				LastUpdatedTime: updated,
				Labels:          []string{"nlp"},
				Username:        "maria",
			}},
			Total: 41,
		})
	}))

	resp, err := client.ListModels(context.Background(), ListModelsRequest{Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 41, resp.Total)
	require.Len(t, resp.Models, 1)
	assert.Equal(t, "bert", resp.Models[0].Name)
	assert.True(t, updated.Equal(resp.Models[0].LastUpdatedTime))
}

func TestGetModelNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such model"}`, http.StatusNotFound)
	}))

	_, err := client.GetModel(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAborted(err))
}

func TestServerErrorWrapsAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database down"}`))
	}))

	err := client.DeleteModel(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database down", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestAbortedRequestIsDistinguished(t *testing.T) {
	started := make(chan struct{})

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-started
		cancel()
	}()

	_, err := client.ListModels(ctx, ListModelsRequest{Limit: 20})
	require.Error(t, err)
	assert.True(t, IsAborted(err))
	assert.False(t, IsNotFound(err))
}

func TestPatchModelSendsPartialBody(t *testing.T) {
	var body map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/models/7", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))

	desc := "updated"
	err := client.PatchModel(context.Background(), 7, PatchModelRequest{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"description": "updated"}, body, "nil fields stay out of the patch")
}

func TestArchivePaths(t *testing.T) {
	var paths []string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	ctx := context.Background()
	require.NoError(t, client.ArchiveModel(ctx, 3))
	require.NoError(t, client.UnarchiveModel(ctx, 3))
	require.NoError(t, client.DeleteModelVersion(ctx, 3, 12))

	assert.Equal(t, []string{
		"POST /api/v1/models/3/archive",
		"POST /api/v1/models/3/unarchive",
		"DELETE /api/v1/models/3/versions/12",
	}, paths)
}

func TestPatchVersionLabels(t *testing.T) {
	var body PatchVersionRequest

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/models/3/versions/12", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.PatchModelVersion(context.Background(), 3, 12, PatchVersionRequest{Labels: []string{"staging"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"staging"}, body.Labels)
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(context.Background(), "", "token", ClientOptions{})
	assert.Error(t, err)
}
