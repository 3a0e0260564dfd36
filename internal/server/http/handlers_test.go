package http

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var readings = map[string]any{
	"phValue":                7.5,
	"salinity":               1.2,
	"algae":                  5000,
	"dissolvedOxygen":        6.5,
	"bacterialLoad":          100,
	"environmentalCondition": "tropical",
}

func TestOptions(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodGet, "/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sfx":true,"volume":50,"includeRationale":true,"geographicRegion":"north-america"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/options", map[string]any{
		"sfx": false, "volume": 20, "includeRationale": false, "geographicRegion": "europe",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusResponse{Status: "success", Message: "Preferences saved!"}, decode[StatusResponse](t, rec))

	rec = env.do(t, http.MethodGet, "/options", nil)
	assert.JSONEq(t, `{"sfx":false,"volume":20,"includeRationale":false,"geographicRegion":"europe"}`, rec.Body.String())
}

func TestOptions_OmittedFieldsTakeDefaults(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/options", map[string]any{"volume": 80})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/options", nil)
	assert.JSONEq(t, `{"sfx":true,"volume":80,"includeRationale":true,"geographicRegion":"north-america"}`, rec.Body.String())
}

func TestOptions_Invalid(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/options", map[string]any{"volume": 101})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "invalid preferences")

	rec = env.do(t, http.MethodPost, "/options", `{"volume": "loud"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodGet, "/options", nil)
	assert.Contains(t, rec.Body.String(), `"volume":50`)
}

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusResponse{Status: "success", Message: "Welcome to FishFarmer.AI!"}, decode[StatusResponse](t, rec))

	rec = env.do(t, http.MethodPost, "/login", map[string]string{"username": "alice@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, LoginResponse{Status: "success", Message: "Welcome back, alice!", Username: "alice"}, decode[LoginResponse](t, rec))

	rec = env.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPassword := decode[ErrorResponse](t, rec).Detail

	rec = env.do(t, http.MethodPost, "/login", map[string]string{"username": "bob", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPassword, decode[ErrorResponse](t, rec).Detail)

	m := env.server.metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountEvents.WithLabelValues("register", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountEvents.WithLabelValues("login", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountEvents.WithLabelValues("login", "wrong_password")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountEvents.WithLabelValues("login", "unknown_account")))
}

func TestRegister_Duplicates(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/register", map[string]string{"username": "alice", "email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/register", map[string]string{"username": "alice", "email": "b@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already taken :(", decode[ErrorResponse](t, rec).Detail)

	rec = env.do(t, http.MethodPost, "/register", map[string]string{"username": "bob", "email": "a@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered :(", decode[ErrorResponse](t, rec).Detail)

	rec = env.do(t, http.MethodPost, "/register", map[string]string{"username": "carol", "email": "c@example.com", "password": strings.Repeat("x", 73)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	all, err := env.accounts.All(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_MissingFields(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/register", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "field required: email, password", decode[ErrorResponse](t, rec).Detail)

	rec = env.do(t, http.MethodPost, "/login", `{"username": "alice"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodPost, "/login", `{not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid request body", decode[ErrorResponse](t, rec).Detail)
}

func TestGeminiCall(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/geminiCall", map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "hello"},
			{"role": "model", "content": "hi"},
		},
		"farmingData": readings,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Looks healthy.", decode[ChatResponse](t, rec).Response)

	require.Len(t, env.gen.got, 3)
	assert.Equal(t, models.ChatMessage{Role: "user", Content: "hello"}, env.gen.got[0])
	assert.Equal(t, models.ChatMessage{Role: "model", Content: "hi"}, env.gen.got[1])
	assert.Contains(t, env.gen.got[2].Content, "pH: 7.5")
	assert.Contains(t, env.gen.got[2].Content, "Environmental conditions: tropical.")
}

func TestGeminiCall_Validation(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/geminiCall", map[string]any{
		"messages": []map[string]string{{"role": "system", "content": "x"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "messages.0.role")

	rec = env.do(t, http.MethodPost, "/geminiCall", map[string]any{
		"messages":    []map[string]string{{"role": "user"}},
		"farmingData": readings,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "field required: messages.0.content", decode[ErrorResponse](t, rec).Detail)

	rec = env.do(t, http.MethodPost, "/geminiCall", map[string]any{
		"farmingData": map[string]any{"phValue": 7},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "farmingData.salinity")

	rec = env.do(t, http.MethodPost, "/geminiCall", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Nil(t, env.gen.got)
}

func TestGeminiCall_GeneratorFailure(t *testing.T) {
	env := setupTestServer(t)
	env.gen.err = errors.New("quota exceeded")

	rec := env.do(t, http.MethodPost, "/analyzeData", readings)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[AdvisorErrorResponse](t, rec)
	assert.True(t, strings.HasPrefix(body.Error, "Gemini request failed: "), body.Error)
	assert.Contains(t, body.Error, "quota exceeded")

	assert.Equal(t, 1.0, testutil.ToFloat64(env.server.metrics.AdvisorCalls.WithLabelValues("analyzeData", "error")))
}

func TestAnalyzeData(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/analyzeData", readings)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Looks healthy.", decode[ChatResponse](t, rec).Response)
	require.Len(t, env.gen.got, 1)
	assert.Equal(t, models.RoleUser, env.gen.got[0].Role)

	rec = env.do(t, http.MethodPost, "/analyzeData", map[string]any{"phValue": 7})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeData_EmptyReply(t *testing.T) {
	env := setupTestServer(t)
	env.gen.text = ""

	rec := env.do(t, http.MethodPost, "/analyzeData", readings)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No response generated.", decode[ChatResponse](t, rec).Response)
}
