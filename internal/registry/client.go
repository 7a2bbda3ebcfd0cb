package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// API is the subset of registry operations consumed by the console pages.
type API interface {
	ListModels(ctx context.Context, req ListModelsRequest) (*ListModelsResponse, error)
	GetModel(ctx context.Context, id int) (*ModelDetail, error)
	PatchModel(ctx context.Context, id int, req PatchModelRequest) error
	ArchiveModel(ctx context.Context, id int) error
	UnarchiveModel(ctx context.Context, id int) error
	DeleteModel(ctx context.Context, id int) error
	PatchModelVersion(ctx context.Context, modelID, versionID int, req PatchVersionRequest) error
	DeleteModelVersion(ctx context.Context, modelID, versionID int) error
}

// ClientOptions configures the registry client creation
type ClientOptions struct {
	Logger *slog.Logger

	// HTTPClient overrides the token-authenticated default, mainly for tests
	HTTPClient *http.Client
}

// Client talks to the model registry REST API.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	logger  *slog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new authenticated registry client for the given base
// URL and API token. This is the standard way to create registry clients
// throughout the codebase.
func NewClient(ctx context.Context, baseURL, token string, opts ClientOptions) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("registry base URL is required")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse registry URL: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpc = oauth2.NewClient(ctx, ts)
	}

	return &Client{baseURL: u, httpc: httpc, logger: logger}, nil
}

// ListModels fetches one page of models matching the request filters.
func (c *Client) ListModels(ctx context.Context, req ListModelsRequest) (*ListModelsResponse, error) {
	q := url.Values{}
	q.Set("archived", strconv.FormatBool(req.Archived))

	if req.Name != "" {
		q.Set("name", req.Name)
	}

	if req.Description != "" {
		q.Set("description", req.Description)
	}

	for _, l := range req.Labels {
		q.Add("labels", l)
	}

	for _, u := range req.Users {
		q.Add("users", u)
	}

	if req.SortKey != "" {
		q.Set("sort_by", req.SortKey)

		order := "asc"
		if req.SortDesc {
			order = "desc"
		}

		q.Set("order_by", order)
	}

	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("offset", strconv.Itoa(req.Offset))

	var out ListModelsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/models?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetModel fetches a single model with its versions, newest first.
func (c *Client) GetModel(ctx context.Context, id int) (*ModelDetail, error) {
	var out ModelDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/models/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// PatchModel applies a partial update to a model.
func (c *Client) PatchModel(ctx context.Context, id int, req PatchModelRequest) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/models/%d", id), req, nil)
}

// ArchiveModel soft-hides a model without deleting it.
func (c *Client) ArchiveModel(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/models/%d/archive", id), nil, nil)
}

// UnarchiveModel restores an archived model.
func (c *Client) UnarchiveModel(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/models/%d/unarchive", id), nil, nil)
}

// DeleteModel permanently removes a model and all its versions.
func (c *Client) DeleteModel(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/models/%d", id), nil, nil)
}

// PatchModelVersion applies a partial update to one version of a model.
func (c *Client) PatchModelVersion(ctx context.Context, modelID, versionID int, req PatchVersionRequest) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/models/%d/versions/%d", modelID, versionID), req, nil)
}

// DeleteModelVersion permanently removes one version of a model.
func (c *Client) DeleteModelVersion(ctx context.Context, modelID, versionID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/models/%d/versions/%d", modelID, versionID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}

		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Unwrap to the context error so teardown-triggered aborts stay
		// recognizable through errors.Is.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}

		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("registry returned not found",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
		)

		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse

		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = json.Unmarshal(payload, &apiErr)

		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErr.Error,
			RequestID:  requestID,
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
