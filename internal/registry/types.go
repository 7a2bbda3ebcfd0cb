package registry

import "github.com/inovacc/curatr/internal/model"

// ListModelsRequest carries the query parameters for the model list endpoint.
// Controllers derive it from the persisted view settings; every field maps to
// exactly one query parameter.
type ListModelsRequest struct {
	Archived    bool
	Name        string
	Description string
	Labels      []string
	Users       []string
	SortKey     string
	SortDesc    bool
	Limit       int
	Offset      int
}

// ListModelsResponse is one page of models plus the unpaginated total.
type ListModelsResponse struct {
	Models []model.ModelItem `json:"models"`
	Total  int               `json:"total"`
}

// ModelDetail is a model together with its versions, newest version first.
type ModelDetail struct {
	Model    model.ModelItem      `json:"model"`
	Versions []model.ModelVersion `json:"versions"`
}

// PatchModelRequest is a partial model update. Nil fields are left unchanged.
type PatchModelRequest struct {
	Description *string        `json:"description,omitempty"`
	Labels      []string       `json:"labels,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// PatchVersionRequest is a partial model version update.
type PatchVersionRequest struct {
	Labels []string `json:"labels,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
