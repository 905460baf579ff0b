package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "regdocs/internal/domain/models/registry"
)

func TestRespondError_ProblemDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondProblem(rec, NewProblem(http.StatusBadGateway, "append row: quota").With("operation", "append row"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad Gateway", body["title"])
	assert.Equal(t, "append row: quota", body["detail"])
	assert.Equal(t, "append row", body["operation"])
	assert.Equal(t, float64(502), body["status"])
	assert.Contains(t, body["type"], "rfc9110")
}

func TestRespondError_UnknownStatusType(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusTeapot, "")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "about:blank", body["type"])
	assert.NotContains(t, body, "detail")
}

func TestParseJSON_RejectsUnknownFields(t *testing.T) {
	var dest struct {
		Role string `json:"role"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"role":"admin","extra":1}`))
	assert.Error(t, ParseJSON(httptest.NewRecorder(), r, &dest))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"role":"admin"}`))
	require.NoError(t, ParseJSON(httptest.NewRecorder(), r, &dest))
	assert.Equal(t, "admin", dest.Role)
}

func TestSessionToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionToken(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", SessionToken(r))

	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", SessionToken(r), "cookie wins over header")

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, SessionToken(r))
}

func TestSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", true)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Zero(t, cookies[0].MaxAge)

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec, false)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestSessionContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetSession(r))

	r = WithSession(r, &models.Session{ID: "s", Role: models.RoleAdmin})
	assert.True(t, GetSession(r).IsAdmin())
}
