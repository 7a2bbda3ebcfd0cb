package controller

import (
	"context"
	"sync"

	"github.com/inovacc/curatr/internal/model"
	"github.com/inovacc/curatr/internal/registry"
	"github.com/inovacc/curatr/internal/settings"
)

// mockAPI is a mock implementation of registry.API for testing.
type mockAPI struct {
	mu sync.Mutex

	// Canned responses
	ListModelsResp *registry.ListModelsResponse
	GetModelResp   *registry.ModelDetail

	// Error injection
	ListModelsErr error
	GetModelErr   error
	PatchModelErr error
	ArchiveErr    error
	UnarchiveErr  error
	DeleteErr     error
	PatchVerErr   error
	DeleteVerErr  error

	// Behavior override
	ListModelsFn func(ctx context.Context, req registry.ListModelsRequest) (*registry.ListModelsResponse, error)

	// Call tracking
	ListModelsRequests []registry.ListModelsRequest
	GetModelCalls      []int
	PatchModelCalls    []registry.PatchModelRequest
	ArchiveCalls       []int
	UnarchiveCalls     []int
	DeleteModelCalls   []int
	PatchVersionCalls  []patchVersionCall
	DeleteVersionCalls []deleteVersionCall
}

type patchVersionCall struct {
	ModelID   int
	VersionID int
	Req       registry.PatchVersionRequest
}

type deleteVersionCall struct {
	ModelID   int
	VersionID int
}

var _ registry.API = (*mockAPI)(nil)

func newMockAPI() *mockAPI {
	return &mockAPI{
		ListModelsResp: &registry.ListModelsResponse{},
		GetModelResp:   &registry.ModelDetail{},
	}
}

func (m *mockAPI) ListModels(ctx context.Context, req registry.ListModelsRequest) (*registry.ListModelsResponse, error) {
	m.mu.Lock()
	m.ListModelsRequests = append(m.ListModelsRequests, req)
	fn := m.ListModelsFn
	resp, err := m.ListModelsResp, m.ListModelsErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	return resp, err
}

func (m *mockAPI) GetModel(ctx context.Context, id int) (*registry.ModelDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetModelCalls = append(m.GetModelCalls, id)

	return m.GetModelResp, m.GetModelErr
}

func (m *mockAPI) PatchModel(ctx context.Context, id int, req registry.PatchModelRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PatchModelCalls = append(m.PatchModelCalls, req)

	return m.PatchModelErr
}

func (m *mockAPI) ArchiveModel(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ArchiveCalls = append(m.ArchiveCalls, id)

	return m.ArchiveErr
}

func (m *mockAPI) UnarchiveModel(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UnarchiveCalls = append(m.UnarchiveCalls, id)

	return m.UnarchiveErr
}

func (m *mockAPI) DeleteModel(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteModelCalls = append(m.DeleteModelCalls, id)

	return m.DeleteErr
}

func (m *mockAPI) PatchModelVersion(ctx context.Context, modelID, versionID int, req registry.PatchVersionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PatchVersionCalls = append(m.PatchVersionCalls, patchVersionCall{modelID, versionID, req})

	return m.PatchVerErr
}

func (m *mockAPI) DeleteModelVersion(ctx context.Context, modelID, versionID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteVersionCalls = append(m.DeleteVersionCalls, deleteVersionCall{modelID, versionID})

	return m.DeleteVerErr
}

func (m *mockAPI) listRequests() []registry.ListModelsRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]registry.ListModelsRequest, len(m.ListModelsRequests))
	copy(out, m.ListModelsRequests)

	return out
}

// memStore is an in-memory settings.Store recording save modes.
type memStore struct {
	mu      sync.Mutex
	entries map[string][]model.ViewSettings
	index   map[string]int
	Modes   []settings.SaveMode

	SaveErr error
}

var _ settings.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		entries: make(map[string][]model.ViewSettings),
		index:   make(map[string]int),
	}
}

func (s *memStore) Load(page string) (model.ViewSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries := s.entries[page]; len(entries) > 0 {
		return entries[s.index[page]], nil
	}

	return model.DefaultViewSettings(), nil
}

func (s *memStore) Save(page string, vs model.ViewSettings, mode settings.SaveMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.Modes = append(s.Modes, mode)

	entries := s.entries[page]
	idx := s.index[page]

	if len(entries) == 0 {
		s.entries[page] = []model.ViewSettings{vs}
		s.index[page] = 0

		return nil
	}

	if mode == settings.Push {
		entries = append(entries[:idx+1], vs)
		s.entries[page] = entries
		s.index[page] = len(entries) - 1

		return nil
	}

	entries[idx] = vs

	return nil
}

func (s *memStore) Back(page string) (model.ViewSettings, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index[page] <= 0 {
		return model.ViewSettings{}, false, nil
	}

	s.index[page]--

	return s.entries[page][s.index[page]], true, nil
}

func (s *memStore) Forward(page string) (model.ViewSettings, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index[page]+1 >= len(s.entries[page]) {
		return model.ViewSettings{}, false, nil
	}

	s.index[page]++

	return s.entries[page][s.index[page]], true, nil
}

func (s *memStore) GetConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	return &cfg, nil
}

func (s *memStore) SaveConfig(cfg *model.Config) error { return nil }

func (s *memStore) Close() error { return nil }

func (s *memStore) savedModes() []settings.SaveMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]settings.SaveMode, len(s.Modes))
	copy(out, s.Modes)

	return out
}
