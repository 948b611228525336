package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betimvpp/NlwSpacetimeServer/internal/config"
	"github.com/betimvpp/NlwSpacetimeServer/internal/errs"
	"github.com/betimvpp/NlwSpacetimeServer/internal/handler"
	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/identity"
	"github.com/betimvpp/NlwSpacetimeServer/internal/model/memory"
	"github.com/betimvpp/NlwSpacetimeServer/internal/repository"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
	"github.com/betimvpp/NlwSpacetimeServer/internal/service"
)

const testSecret = "router-test-secret"

type memStore struct {
	mu       sync.Mutex
	memories map[string]memory.Memory
	failWith error
	calls    int
}

func newMemStore() *memStore {
	return &memStore{memories: map[string]memory.Memory{}}
}

func (s *memStore) touch() error {
	s.calls++
	return s.failWith
}

func (s *memStore) ListByOwner(_ context.Context, userID string) ([]memory.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}

	var out []memory.Memory
	for _, m := range s.memories {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*memory.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}

	m, ok := s.memories[id]
	if !ok {
		return nil, repository.ErrMemoryNotFound
	}
	return &m, nil
}

func (s *memStore) Create(_ context.Context, m *memory.Memory) (*memory.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}

	s.memories[m.ID] = *m
	created := *m
	return &created, nil
}

func (s *memStore) Update(_ context.Context, m *memory.Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return err
	}

	if _, ok := s.memories[m.ID]; !ok {
		return repository.ErrMemoryNotFound
	}
	s.memories[m.ID] = *m
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return err
	}

	if _, ok := s.memories[id]; !ok {
		return repository.ErrMemoryNotFound
	}
	delete(s.memories, id)
	return nil
}

func (s *memStore) seed(m memory.Memory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories[m.ID] = m
}

func (s *memStore) get(id string) (memory.Memory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.memories[id]
	return m, ok
}

type testAPI struct {
	echo      *echo.Echo
	store     *memStore
	authority *identity.HMACAuthority
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Auth: config.AuthConfig{
				Provider:  config.AuthProviderJWT,
				SecretKey: testSecret,
				TokenTTL:  time.Hour,
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	authService, err := service.NewAuthService(s)
	require.NoError(t, err)

	store := newMemStore()
	var seq int
	clock := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	services := &service.Services{
		Auth: authService,
		Memory: service.NewMemoryService(store, nil,
			service.WithIDGenerator(func() string {
				seq++
				return fmt.Sprintf("generated-%d", seq)
			}),
			service.WithClock(func() time.Time { return clock }),
		),
	}

	authority, err := identity.NewHMACAuthority(testSecret, time.Hour)
	require.NoError(t, err)

	return &testAPI{
		echo:      NewRouter(s, handler.NewHandlers(s, services), services),
		store:     store,
		authority: authority,
	}
}

func (a *testAPI) token(t *testing.T, subject string) string {
	t.Helper()
	tok, _, err := a.authority.Issue(subject)
	require.NoError(t, err)
	return tok
}

func (a *testAPI) do(t *testing.T, method, path, subject, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if subject != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token(t, subject))
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func seedMemory(id, owner string, public bool, created time.Time) memory.Memory {
	return memory.Memory{
		ID:         id,
		Content:    "content of " + id,
		ConvertURL: "https://cdn.example.com/" + id + ".png",
		IsPublic:   public,
		UserID:     owner,
		CreatedAt:  created,
	}
}

func decodeHTTPError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestMemoriesRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/memories"},
		{http.MethodGet, "/memories/abc"},
		{http.MethodPost, "/memories"},
		{http.MethodPut, "/memories/abc"},
		{http.MethodDelete, "/memories/abc"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := api.do(t, route.method, route.path, "", "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeHTTPError(t, rec)
			assert.Equal(t, "UNAUTHORIZED", body.Code)
		})
	}
	assert.Zero(t, api.store.calls)
}

func TestMemoriesRejectForeignToken(t *testing.T) {
	api := newTestAPI(t)

	other, err := identity.NewHMACAuthority("another-secret", time.Hour)
	require.NoError(t, err)
	tok, _, err := other.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/memories", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, api.store.calls)
}

func TestListMemories(t *testing.T) {
	api := newTestAPI(t)
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	api.store.seed(seedMemory("m2", "alice", false, base.Add(2*time.Hour)))
	api.store.seed(seedMemory("m1", "alice", true, base.Add(time.Hour)))
	api.store.seed(seedMemory("b1", "bob", true, base))

	rec := api.do(t, http.MethodGet, "/memories", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)

	assert.Equal(t, "m1", summaries[0]["id"])
	assert.Equal(t, "m2", summaries[1]["id"])
	assert.Equal(t, "content of m1...", summaries[0]["excerpt"])
	assert.Contains(t, summaries[0], "convertUrl")
	assert.Contains(t, summaries[0], "createdAt")
	assert.NotContains(t, summaries[0], "content")
}

func TestListMemoriesEmptyIsArray(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/memories", "carol", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetMemory(t *testing.T) {
	api := newTestAPI(t)
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	api.store.seed(seedMemory("private", "alice", false, created))
	api.store.seed(seedMemory("public", "alice", true, created))

	t.Run("owner reads private memory", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/memories/private", "alice", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got memory.Memory
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "private", got.ID)
		assert.Equal(t, "alice", got.UserID)
		assert.True(t, got.CreatedAt.Equal(created))
	})

	t.Run("stranger reads public memory", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/memories/public", "bob", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isPublic":true`)
	})

	t.Run("stranger cannot read private memory", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/memories/private", "bob", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/memories/missing", "alice", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeHTTPError(t, rec)
		assert.Equal(t, "NOT_FOUND", body.Code)
		assert.Equal(t, "Memory not found", body.Message)
	})
}

func TestCreateMemory(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/memories", "alice",
		`{"content":"first trip","convertUrl":"https://cdn.example.com/a.png","isPublic":"true","userId":"mallory"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got memory.Memory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "generated-1", got.ID)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, "first trip", got.Content)
	assert.True(t, got.IsPublic)

	stored, ok := api.store.get("generated-1")
	require.True(t, ok)
	assert.Equal(t, "alice", stored.UserID)
}

func TestCreateMemoryDefaultsToPrivate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/memories", "alice", `{"content":"","convertUrl":""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isPublic":false`)
}

func TestCreateMemoryValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing content", body: `{"convertUrl":"x"}`, field: "content"},
		{name: "missing convertUrl", body: `{"content":"x"}`, field: "convertUrl"},
		{name: "content not a string", body: `{"content":42,"convertUrl":"x"}`},
		{name: "malformed json", body: `{"content":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			rec := api.do(t, http.MethodPost, "/memories", "alice", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeHTTPError(t, rec)
			assert.Equal(t, http.StatusBadRequest, body.Status)
			if tt.field != "" {
				require.Len(t, body.Errors, 1)
				assert.Equal(t, tt.field, body.Errors[0].Field)
			}
			assert.Zero(t, api.store.calls)
		})
	}
}

func TestUpdateMemory(t *testing.T) {
	api := newTestAPI(t)
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	api.store.seed(seedMemory("m1", "alice", true, created))

	rec := api.do(t, http.MethodPut, "/memories/m1", "alice",
		`{"id":"other","content":"edited","convertUrl":"https://cdn.example.com/b.png"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	stored, ok := api.store.get("m1")
	require.True(t, ok)
	assert.Equal(t, "edited", stored.Content)
	assert.False(t, stored.IsPublic)
	assert.Equal(t, "alice", stored.UserID)
	assert.True(t, stored.CreatedAt.Equal(created))

	_, ok = api.store.get("other")
	assert.False(t, ok)
}

func TestUpdateMemoryDenied(t *testing.T) {
	api := newTestAPI(t)
	original := seedMemory("m1", "alice", true, time.Now().UTC())
	api.store.seed(original)

	rec := api.do(t, http.MethodPut, "/memories/m1", "bob", `{"content":"hijack","convertUrl":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())

	stored, _ := api.store.get("m1")
	assert.Equal(t, original.Content, stored.Content)
}

func TestUpdateMemoryNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPut, "/memories/missing", "alice", `{"content":"a","convertUrl":"b"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMemory(t *testing.T) {
	api := newTestAPI(t)
	api.store.seed(seedMemory("m1", "alice", false, time.Now().UTC()))

	denied := api.do(t, http.MethodDelete, "/memories/m1", "bob", "")
	assert.Equal(t, http.StatusUnauthorized, denied.Code)
	assert.Empty(t, denied.Body.String())
	_, ok := api.store.get("m1")
	assert.True(t, ok)

	rec := api.do(t, http.MethodDelete, "/memories/m1", "alice", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	_, ok = api.store.get("m1")
	assert.False(t, ok)

	again := api.do(t, http.MethodDelete, "/memories/m1", "alice", "")
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestStoreFailureIsInternal(t *testing.T) {
	api := newTestAPI(t)
	api.store.failWith = errors.New("dial tcp 10.0.0.5:5432: connection refused")

	rec := api.do(t, http.MethodGet, "/memories", "alice", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestStatusWithoutProbes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/status", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeHTTPError(t, rec).Message)
}

func TestRequestIDHeader(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/status", "", "")

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
