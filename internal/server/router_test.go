package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantonize/internal/config"
	"plantonize/internal/logger"
	"plantonize/internal/middleware"
	"plantonize/internal/testutil"
	"plantonize/internal/validator"
)

const metricsKey = "scrape-key"

// testApp holds the full application stack backed by an in-memory database.
type testApp struct {
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "error")
	validator.Register()
	config.Set(&config.Config{
		Env:             "test",
		CORSOrigins:     "*",
		MetricsAPIKey:   metricsKey,
		JWTSecret:       "router-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	return &testApp{Router: NewRouter(config.Get(), db, middleware.NewMetrics())}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

type session struct {
	ID      string
	Access  string
	Refresh string
}

// register creates a user, logs in and returns its id and tokens. An empty
// role leaves tipo_usuario out of the payload.
func (app *testApp) register(t *testing.T, username, role string) session {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, testutil.TestPassword)
	if role != "" {
		body = fmt.Sprintf(`{"username":%q,"password":%q,"tipo_usuario":%q}`, username, testutil.TestPassword, role)
	}
	rec := app.request("POST", "/api/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.request("POST", "/api/token",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, testutil.TestPassword), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	login := decode[struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			ID string `json:"id"`
		} `json:"user"`
	}](t, rec)
	return session{ID: login.User.ID, Access: login.Access, Refresh: login.Refresh}
}

type evolutionBody struct {
	ID         string  `json:"id"`
	Content    string  `json:"conteudo"`
	Viewed     bool    `json:"visualizado"`
	CreatedBy  *string `json:"criado_por"`
	AssignedTo *string `json:"atribuido_a"`
	CreatedAt  string  `json:"data_criacao"`
	UpdatedAt  string  `json:"data_edicao"`
	Logs       []struct {
		Kind string `json:"tipo"`
		User string `json:"usuario"`
	} `json:"logs"`
}

func (app *testApp) createEvolution(t *testing.T, token, assignee string) evolutionBody {
	t.Helper()

	body := fmt.Sprintf(`{"titulo":"Leito 4","conteudo":"Paciente estável.","categoria":"UPA","atribuido_a":%q}`, assignee)
	rec := app.request("POST", "/api/evolucoes", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[evolutionBody](t, rec)
}

func TestEvolutionFlow_AssignViewAndEdit(t *testing.T) {
	app := setupApp(t)
	admin := app.register(t, "ana", "admin")
	u1 := app.register(t, "bruno", "colaborador")
	u2 := app.register(t, "carla", "colaborador")

	// Collaborator starts with nothing assigned
	rec := app.request("GET", "/api/evolucoes", "", u1.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]evolutionBody](t, rec))

	created := app.createEvolution(t, admin.Access, u1.ID)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, admin.ID, *created.CreatedBy)
	assert.False(t, created.Viewed)
	require.Len(t, created.Logs, 1)
	assert.Equal(t, "criação", created.Logs[0].Kind)
	assert.Equal(t, "ana", created.Logs[0].User)

	// Assigned collaborator lists and reads it
	rec = app.request("GET", "/api/evolucoes", "", u1.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]evolutionBody](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	rec = app.request("GET", "/api/evolucoes/"+created.ID, "", u1.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	viewed := decode[evolutionBody](t, rec)
	assert.True(t, viewed.Viewed)
	assert.Len(t, viewed.Logs, 1)

	// Another collaborator cannot see it
	rec = app.request("GET", "/api/evolucoes/"+created.ID, "", u2.Access)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.request("GET", "/api/evolucoes", "", u2.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]evolutionBody](t, rec))

	// Administrator edit appends a log and keeps the viewed flag
	time.Sleep(5 * time.Millisecond)
	rec = app.request("PATCH", "/api/evolucoes/"+created.ID, `{"conteudo":"x"}`, admin.Access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	edited := decode[evolutionBody](t, rec)
	assert.Equal(t, "x", edited.Content)
	assert.True(t, edited.Viewed)
	assert.NotEqual(t, viewed.UpdatedAt, edited.UpdatedAt)
	require.Len(t, edited.Logs, 2)
	assert.Equal(t, "edição", edited.Logs[1].Kind)

	rec = app.request("GET", "/api/evolucoes/"+created.ID+"/logs", "", u1.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	// Administrator narrows by assignee
	rec = app.request("GET", "/api/evolucoes?colaborador="+u2.ID, "", admin.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]evolutionBody](t, rec))

	// Delete removes it for everyone
	rec = app.request("DELETE", "/api/evolucoes/"+created.ID, "", admin.Access)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.request("GET", "/api/evolucoes/"+created.ID, "", admin.Access)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvolutionFlow_CreateWithUnknownAssignee(t *testing.T) {
	app := setupApp(t)
	admin := app.register(t, "ana", "admin")

	body := `{"titulo":"a","conteudo":"b","categoria":"PS","atribuido_a":"0190b8d2-0000-7000-8000-000000000999"}`
	rec := app.request("POST", "/api/evolucoes", body, admin.Access)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ASSIGNEE")

	rec = app.request("GET", "/api/evolucoes", "", admin.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]evolutionBody](t, rec))
}

func TestAuthFlow_DefaultRoleAndRefresh(t *testing.T) {
	app := setupApp(t)
	user := app.register(t, "daniel", "")

	rec := app.request("GET", "/api/usuario", "", user.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "colaborador", me["tipo_usuario"])
	assert.Equal(t, "daniel", me["username"])

	// Refresh rotates the pair and revokes the presented token
	rec = app.request("POST", "/api/token/refresh", fmt.Sprintf(`{"refresh":%q}`, user.Refresh), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pair := decode[map[string]string](t, rec)
	assert.NotEmpty(t, pair["access"])
	assert.NotEqual(t, user.Refresh, pair["refresh"])

	rec = app.request("POST", "/api/token/refresh", fmt.Sprintf(`{"refresh":%q}`, user.Refresh), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.request("GET", "/api/usuario", "", pair["access"])
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow_RejectsAnonymousAndRefreshTokens(t *testing.T) {
	app := setupApp(t)
	user := app.register(t, "elisa", "")

	rec := app.request("GET", "/api/evolucoes", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.request("GET", "/api/evolucoes", "", user.Refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserFlow_RoleChange(t *testing.T) {
	app := setupApp(t)
	admin := app.register(t, "ana", "admin")
	collaborator := app.register(t, "bruno", "")

	rec := app.request("PATCH", "/api/usuarios/"+admin.ID, `{"tipo_usuario":"colaborador"}`, collaborator.Access)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.request("PATCH", "/api/usuarios/"+collaborator.ID, `{"tipo_usuario":"admin"}`, admin.Access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.request("GET", "/api/usuarios", "", collaborator.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]map[string]any](t, rec)
	require.Len(t, users, 2)
	assert.Equal(t, "ana", users[0]["username"])
	assert.Equal(t, "admin", users[1]["tipo_usuario"])
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HealthResponse{Status: "ok", Database: "ok"}, decode[HealthResponse](t, rec))
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t)
	app.request("GET", "/api/health", "", "")

	rec := app.request("GET", "/metrics", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.Header.Set("X-API-Key", metricsKey)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `plantonize_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("OPTIONS", "/api/evolucoes", nil)
	req.Header.Set("Origin", "https://plantao.example")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMode(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, Mode(&config.Config{Env: "production"}))
	assert.Equal(t, gin.DebugMode, Mode(&config.Config{Env: "development"}))
	assert.Equal(t, gin.DebugMode, Mode(&config.Config{Env: "test"}))
}
