package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"study-tracker/app"
	"study-tracker/blob"
	"study-tracker/config/setup"
	"study-tracker/database"
	"study-tracker/handlers"
	"study-tracker/identity"
	"study-tracker/middleware"
	"study-tracker/models"
	"study-tracker/repository"
	"study-tracker/services"
	"study-tracker/session"
	"study-tracker/storage"
	"study-tracker/sync"
	"study-tracker/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails collection reads on demand
type flakyStore struct {
	storage.Provider
	failList bool
}

func (s *flakyStore) List(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	if s.failList {
		return nil, errors.New("unavailable")
	}
	return s.Provider.List(ctx, collection, q)
}

// fakeAuth knows only the accounts created through SignUp
type fakeAuth struct {
	accounts map[string]string
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*identity.Result, error) {
	if pw, ok := f.accounts[email]; !ok || pw != password {
		return nil, &identity.AuthError{Code: identity.CodeInvalidCredential}
	}
	return &identity.Result{UID: "uid-" + email, Email: email, IDToken: "token"}, nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*identity.Result, error) {
	f.accounts[email] = password
	return &identity.Result{UID: "uid-" + email, Email: email, IDToken: "token"}, nil
}

type testEnv struct {
	fiber *fiber.App
	store *flakyStore
	app   *app.App
}

func setupTestApp(t *testing.T, user *models.AuthUser) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := database.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { db.Close() })

	blobs, err := blob.NewLocal(filepath.Join(dir, "blobs"), "http://localhost/files")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &flakyStore{Provider: db}
	notifier := sync.NewNotifier()
	v := validator.New()
	repo := repository.New(store, blobs, notifier, v, logger)

	sessions := session.NewMemoryStore()
	gateway := identity.NewGateway(&fakeAuth{accounts: map[string]string{}}, "study.local", logger)
	authService := services.NewAuthService(gateway, sessions, repo, logger)

	application := app.New(repo, authService, sessions, notifier, v, logger)

	f := fiber.New()
	f.Post("/api/auth/login", handlers.Login(application))
	f.Post("/api/auth/logout", handlers.Logout(application))
	f.Get("/api/auth/me", handlers.Me(application))
	f.Get("/secure/profile", middleware.AuthRequired(sessions), handlers.GetProfile(application))
	api := f.Group("/api", func(c *fiber.Ctx) error {
		if user != nil {
			c.SetUserContext(session.WithUser(c.UserContext(), user))
		}
		return c.Next()
	})
	setup.RegisterAPI(api, application)

	return &testEnv{fiber: f, store: store, app: application}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.fiber.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

var testUser = &models.AuthUser{UID: "u1", Email: "asha@study.local", ShortID: "asha"}

func TestLogin(t *testing.T) {
	env := setupTestApp(t, nil)

	resp, body := env.do(t, "POST", "/api/auth/login", fiber.Map{"id": "  Asha "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["newProfile"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "asha@study.local", user["email"])
	assert.Equal(t, "asha", user["shortId"])

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "session cookie should be set")

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	meResp, err := env.fiber.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	// Second login signs in to the existing account and keeps the profile
	resp, body = env.do(t, "POST", "/api/auth/login", fiber.Map{"id": "asha"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["newProfile"])
}

func TestLogout_Bearer(t *testing.T) {
	env := setupTestApp(t, nil)

	resp, body := env.do(t, "POST", "/api/auth/login", fiber.Map{"id": "asha"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionID, _ := body["session_id"].(string)
	require.NotEmpty(t, sessionID)

	bearer := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+sessionID)
		resp, err := env.fiber.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, bearer("GET", "/api/auth/me"))
	assert.Equal(t, http.StatusOK, bearer("GET", "/secure/profile"))

	assert.Equal(t, http.StatusOK, bearer("POST", "/api/auth/logout"))

	assert.Equal(t, http.StatusUnauthorized, bearer("GET", "/secure/profile"))
	assert.Equal(t, http.StatusUnauthorized, bearer("GET", "/api/auth/me"))
}

func TestLogin_Invalid(t *testing.T) {
	env := setupTestApp(t, nil)

	tests := []struct {
		name string
		body any
	}{
		{"missing id", fiber.Map{}},
		{"blank id", fiber.Map{"id": "   "}},
		{"bad characters", fiber.Map{"id": "a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, "POST", "/api/auth/login", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestMe_NoSession(t *testing.T) {
	env := setupTestApp(t, nil)

	resp, body := env.do(t, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["authenticated"])
}

func TestMaterials(t *testing.T) {
	env := setupTestApp(t, testUser)

	resp, _ := env.do(t, "POST", "/api/materials", fiber.Map{"id": "m1", "title": "Anatomy", "isActive": true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = env.do(t, "POST", "/api/materials", fiber.Map{"id": "m2", "title": "Physiology"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = env.do(t, "PUT", "/api/materials/m2/active", fiber.Map{"isActive": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.do(t, "GET", "/api/materials", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	active := map[string]bool{}
	for _, m := range body["materials"].([]any) {
		material := m.(map[string]any)
		active[material["id"].(string)] = material["isActive"].(bool)
	}
	assert.Equal(t, map[string]bool{"m1": false, "m2": true}, active)

	resp, _ = env.do(t, "PATCH", "/api/materials/m2", fiber.Map{"title": "Renal physiology", "id": "ignored"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, "PATCH", "/api/materials/ghost", fiber.Map{"title": "Nowhere"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, "DELETE", "/api/materials/m1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.do(t, "GET", "/api/materials", nil)
	require.Len(t, body["materials"], 1)
	remaining := body["materials"].([]any)[0].(map[string]any)
	assert.Equal(t, "m2", remaining["id"])
	assert.Equal(t, "Renal physiology", remaining["title"])
}

func TestSaveMaterial_Validation(t *testing.T) {
	env := setupTestApp(t, testUser)

	resp, body := env.do(t, "POST", "/api/materials", fiber.Map{"title": "No id"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["error"])
	assert.NotEmpty(t, body["fields"])
}

func TestDayPlan(t *testing.T) {
	env := setupTestApp(t, testUser)

	resp, body := env.do(t, "GET", "/api/plans/2024-03-10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["plan"])

	resp, _ = env.do(t, "PUT", "/api/plans/2024-03-10", fiber.Map{
		"notes":  "Focus on cardio",
		"blocks": []fiber.Map{{"id": "b1", "title": "Cardiology", "start": "09:00", "end": "11:00"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.do(t, "GET", "/api/plans/2024-03-10", nil)
	plan := body["plan"].(map[string]any)
	assert.Equal(t, "2024-03-10", plan["date"])
	assert.Equal(t, "Focus on cardio", plan["notes"])
	assert.Len(t, plan["blocks"], 1)
}

func TestDayPlan_InvalidDate(t *testing.T) {
	env := setupTestApp(t, testUser)

	resp, _ := env.do(t, "GET", "/api/plans/10-03-2024", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := env.do(t, "PUT", "/api/plans/2024.03.10", fiber.Map{"notes": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["error"])
}

func TestKnowledgeBase(t *testing.T) {
	env := setupTestApp(t, testUser)

	entries := make([]fiber.Map, 0, 3)
	for _, page := range []int{2, 0, 1} {
		entries = append(entries, fiber.Map{"pageNumber": page, "title": "Page"})
	}

	resp, body := env.do(t, "POST", "/api/knowledge", entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := body["result"].(map[string]any)
	assert.Equal(t, float64(1), result["committedGroups"])

	_, body = env.do(t, "GET", "/api/knowledge", nil)
	pages := body["entries"].([]any)
	require.Len(t, pages, 3)
	assert.Equal(t, float64(0), pages[0].(map[string]any)["pageNumber"])

	resp, _ = env.do(t, "DELETE", "/api/knowledge/0", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, "DELETE", "/api/knowledge/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKnowledgeBase_Unavailable(t *testing.T) {
	env := setupTestApp(t, testUser)
	env.store.failList = true

	resp, body := env.do(t, "GET", "/api/knowledge", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	// Other collections degrade to an empty list
	resp, body = env.do(t, "GET", "/api/materials", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["materials"])
}

func TestSettings(t *testing.T) {
	env := setupTestApp(t, testUser)

	resp, _ := env.do(t, "PUT", "/api/settings/app", fiber.Map{"theme": "dark"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := env.do(t, "GET", "/api/settings/app", nil)
	settings := body["settings"].(map[string]any)
	assert.Equal(t, "dark", settings["theme"])

	resp, _ = env.do(t, "PUT", "/api/settings/app", fiber.Map{"theme": "neon"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, "GET", "/api/settings/unknown", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignedOut(t *testing.T) {
	env := setupTestApp(t, nil)

	resp, body := env.do(t, "GET", "/api/materials", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["materials"])

	// Writes are silently skipped
	resp, _ = env.do(t, "POST", "/api/materials", fiber.Map{"id": "m1", "title": "Anatomy"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body = env.do(t, "GET", "/api/materials", nil)
	assert.Empty(t, body["materials"])
}

func TestSyncStatus(t *testing.T) {
	env := setupTestApp(t, testUser)

	resp, body := env.do(t, "GET", "/api/sync/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["syncing"])
	assert.Equal(t, float64(0), body["in_flight"])
}
