package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/service"
	"github.com/codeforge/problemhub/internal/infrastructure/db/memory"
	"github.com/codeforge/problemhub/internal/infrastructure/queue"
	"github.com/codeforge/problemhub/internal/infrastructure/storage"
)

const testSecret = "router-test-secret"

type testApp struct {
	e          *echo.Echo
	tokens     *service.TokenService
	adminToken string
	adminID    int64
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()

	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	cleaner := queue.NewDispatcher(2, blobs, log)
	ctx, cancel := context.WithCancel(context.Background())
	cleaner.Start(ctx)
	t.Cleanup(func() {
		cancel()
		cleaner.Wait()
	})

	tokens := service.NewTokenService(testSecret, time.Hour)
	authService := service.NewAuthService(store.Users(), service.NewBcryptHasher(bcrypt.MinCost), tokens, log)
	svc := Services{
		Auth:     authService,
		Users:    service.NewUserService(store.Users(), log),
		Problems: service.NewProblemService(store.Problems(), store.Ratings(), nil, 0, log),
		Tags:     service.NewTagService(store.Tags(), store.Problems(), log),
		Comments: service.NewCommentService(store.Comments(), store.Problems(), store.Users(), log),
		Ratings:  service.NewRatingService(store.Ratings(), store.Problems(), log),
		Files:    service.NewFileService(store.Files(), store.Problems(), blobs, cleaner, 1<<20, log),
	}

	admin, err := authService.EnsureAdmin(context.Background(), "admin", "admin@leetcode.com", "admin123")
	require.NoError(t, err)
	login, err := authService.Login(context.Background(), "admin@leetcode.com", "admin123")
	require.NoError(t, err)

	return &testApp{
		e:          NewRouter(svc, Options{Log: log}),
		tokens:     tokens,
		adminToken: login.Token,
		adminID:    admin.ID,
	}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$")
	return rec
}

// register signs up a new account and returns its token and id.
func (a *testApp) register(t *testing.T, name string, role domain.Role) (string, int64) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "secret123",
		"role":     string(role),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	user := body["user"].(map[string]any)
	return body["token"].(string), int64(user["id"].(float64))
}

func (a *testApp) createProblem(t *testing.T, token string) int64 {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/problems", token, map[string]any{
		"title":       "Two Sum",
		"description": "Find two numbers adding up to target.",
		"difficulty":  "easy",
		"tags":        []string{"array"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decode(t, rec)["id"].(float64))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp(t)
	_, id := app.register(t, "alice", domain.RoleUser)

	rec := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Login successful", body["message"])

	claims, err := app.tokens.Verify(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)

	rec = app.do(t, http.MethodGet, "/api/auth/me", body["token"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, float64(id), me["id"])
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", domain.RoleUser)

	tests := []struct {
		name string
		body map[string]string
		code int
		msg  string
	}{
		{
			name: "missing fields",
			body: map[string]string{"email": "x@example.com"},
			code: http.StatusBadRequest,
			msg:  "Username, email and password are required",
		},
		{
			name: "short password",
			body: map[string]string{"username": "x", "email": "x@example.com", "password": "123"},
			code: http.StatusBadRequest,
			msg:  "Password must be at least 6 characters long",
		},
		{
			name: "password over bcrypt limit",
			body: map[string]string{"username": "long", "email": "long@example.com", "password": strings.Repeat("a", 80)},
			code: http.StatusBadRequest,
			msg:  "Password must be at most 72 bytes long",
		},
		{
			name: "duplicate email",
			body: map[string]string{"username": "alice2", "email": "ALICE@example.com", "password": "secret123"},
			code: http.StatusConflict,
			msg:  "User with this email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.msg, decode(t, rec)["error"])
		})
	}

	rec := app.do(t, http.MethodGet, "/api/users", app.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["total"], "admin and alice only")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", domain.RoleUser)

	for _, body := range []map[string]string{
		{"email": "alice@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "secret123"},
	} {
		rec := app.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", decode(t, rec)["error"])
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/1"},
		{http.MethodPost, "/api/problems"},
		{http.MethodPut, "/api/problems/1"},
		{http.MethodDelete, "/api/problems/1"},
		{http.MethodPost, "/api/tags"},
		{http.MethodPost, "/api/comments"},
		{http.MethodPut, "/api/comments/1"},
		{http.MethodDelete, "/api/comments/1"},
		{http.MethodPost, "/api/ratings"},
		{http.MethodGet, "/api/ratings/problems/1/my-rating"},
		{http.MethodPost, "/api/files/upload"},
		{http.MethodDelete, "/api/files/1"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec := app.do(t, r.method, r.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Access token required", decode(t, rec)["error"])
		})
	}
}

func TestTamperedTokenIsRejected(t *testing.T) {
	app := newTestApp(t)
	token, _ := app.register(t, "alice", domain.RoleUser)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'Q'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	for _, bad := range []string{tampered, "not-a-token", strings.ToUpper(token)} {
		rec := app.do(t, http.MethodGet, "/api/auth/me", bad, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Invalid or expired token", decode(t, rec)["error"])
	}
}

func TestTokenOfDeletedUser(t *testing.T) {
	app := newTestApp(t)
	token, id := app.register(t, "alice", domain.RoleUser)

	rec := app.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), app.adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User not found", decode(t, rec)["error"])
}

func TestProblemRoleMatrix(t *testing.T) {
	app := newTestApp(t)
	userToken, _ := app.register(t, "uma", domain.RoleUser)
	interviewerToken, _ := app.register(t, "ivan", domain.RoleInterviewer)

	payload := map[string]any{"title": "Valid Parentheses", "description": "Check brackets.", "difficulty": "easy"}

	rec := app.do(t, http.MethodPost, "/api/problems", userToken, payload)
	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Insufficient permissions", body["error"])
	assert.Equal(t, []any{"admin", "interviewer"}, body["required"])
	assert.Equal(t, "user", body["current"])

	rec = app.do(t, http.MethodPost, "/api/problems", interviewerToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int64(decode(t, rec)["id"].(float64))

	// public reads
	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/problems/%d", id), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodGet, "/api/problems?difficulty=easy", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["total"])

	rec = app.do(t, http.MethodPut, fmt.Sprintf("/api/problems/%d", id), userToken, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = app.do(t, http.MethodDelete, fmt.Sprintf("/api/problems/%d", id), app.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/problems/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Problem not found", decode(t, rec)["error"])
}

func TestRoleDowngradeAppliesToExistingToken(t *testing.T) {
	app := newTestApp(t)
	token, id := app.register(t, "ivan", domain.RoleInterviewer)

	rec := app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", id), app.adminToken, map[string]string{"role": "user"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/problems", token, map[string]any{
		"title": "t", "description": "d", "difficulty": "easy",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "user", decode(t, rec)["current"])
}

func TestAdminUpdateWithEmptyRoleKeepsRole(t *testing.T) {
	app := newTestApp(t)
	_, id := app.register(t, "ivan", domain.RoleInterviewer)

	rec := app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", id), app.adminToken, map[string]string{
		"username": "iv2",
		"role":     "",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "iv2", body["username"])
	assert.Equal(t, "interviewer", body["role"])
}

func TestTagsAreAdminOnly(t *testing.T) {
	app := newTestApp(t)
	interviewerToken, _ := app.register(t, "ivan", domain.RoleInterviewer)

	rec := app.do(t, http.MethodPost, "/api/tags", interviewerToken, map[string]string{"name": "graph"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/tags", app.adminToken, map[string]string{"name": "graph"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.DefaultTagColor, decode(t, rec)["color"])

	rec = app.do(t, http.MethodPost, "/api/tags", app.adminToken, map[string]string{"name": "Graph"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Tag with this name already exists", decode(t, rec)["error"])

	rec = app.do(t, http.MethodPost, "/api/tags", app.adminToken, map[string]string{"name": "tree", "color": "blue"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["total"])
}

func TestUserProfileAccess(t *testing.T) {
	app := newTestApp(t)
	aliceToken, aliceID := app.register(t, "alice", domain.RoleUser)
	_, bobID := app.register(t, "bob", domain.RoleUser)

	rec := app.do(t, http.MethodGet, "/api/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", decode(t, rec)["error"])

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), app.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", aliceID), aliceToken, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only admin can change roles", decode(t, rec)["error"])

	rec = app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", aliceID), aliceToken, map[string]string{"username": "alice2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice2", decode(t, rec)["username"])

	rec = app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", aliceID), aliceToken, map[string]string{"email": "bob@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/users/999", app.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decode(t, rec)["error"])
}

func TestCommentOwnership(t *testing.T) {
	app := newTestApp(t)
	problemID := app.createProblem(t, app.adminToken)
	authorToken, _ := app.register(t, "author", domain.RoleUser)
	otherToken, _ := app.register(t, "other", domain.RoleUser)

	rec := app.do(t, http.MethodPost, "/api/comments", authorToken, map[string]any{
		"content":   "Use a hash map.",
		"problemId": problemID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	commentPath := fmt.Sprintf("/api/comments/%d", int64(created["id"].(float64)))
	assert.Equal(t, "author", created["user"].(map[string]any)["username"])

	edit := map[string]string{"content": "Use a hash map, O(n)."}

	rec = app.do(t, http.MethodPut, commentPath, otherToken, edit)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only edit your own comments", decode(t, rec)["error"])

	// admins may delete but not edit
	rec = app.do(t, http.MethodPut, commentPath, app.adminToken, edit)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only edit your own comments", decode(t, rec)["error"])

	rec = app.do(t, http.MethodPut, commentPath, authorToken, edit)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, edit["content"], decode(t, rec)["content"])

	rec = app.do(t, http.MethodDelete, commentPath, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", decode(t, rec)["error"])

	rec = app.do(t, http.MethodDelete, commentPath, app.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/comments/problems/%d", problemID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["total"])
}

func TestRatingsWithOptionalAuth(t *testing.T) {
	app := newTestApp(t)
	problemID := app.createProblem(t, app.adminToken)
	token, _ := app.register(t, "rater", domain.RoleUser)
	summaryPath := fmt.Sprintf("/api/ratings/problems/%d", problemID)

	rec := app.do(t, http.MethodPost, "/api/ratings", token, map[string]any{"problemId": problemID, "value": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), decode(t, rec)["averageRating"])

	rec = app.do(t, http.MethodPost, "/api/ratings", app.adminToken, map[string]any{"problemId": problemID, "value": 6})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, summaryPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	anon := decode(t, rec)
	assert.Equal(t, float64(1), anon["ratingCount"])
	assert.Nil(t, anon["userRating"])

	rec = app.do(t, http.MethodGet, summaryPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	own := decode(t, rec)["userRating"].(map[string]any)
	assert.Equal(t, float64(4), own["value"])

	// a bad token on a public route is ignored, not rejected
	rec = app.do(t, http.MethodGet, summaryPath, "garbage", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, summaryPath+"/my-rating", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decode(t, rec)["userRating"])
}

func (a *testApp) upload(t *testing.T, token string, problemID int64, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("problemId", fmt.Sprint(problemID)))
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func TestFileUploadAndDeletePolicy(t *testing.T) {
	app := newTestApp(t)
	problemID := app.createProblem(t, app.adminToken)
	uploaderToken, _ := app.register(t, "ivan", domain.RoleInterviewer)
	otherToken, _ := app.register(t, "irene", domain.RoleInterviewer)
	userToken, _ := app.register(t, "uma", domain.RoleUser)

	rec := app.upload(t, userToken, problemID, "notes.md", "# hi")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.upload(t, uploaderToken, problemID, "virus.exe", "MZ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "Invalid file type")

	rec = app.upload(t, uploaderToken, problemID, "notes.md", "# hi")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	file := decode(t, rec)["file"].(map[string]any)
	fileID := int64(file["id"].(float64))

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/files/%d/download", fileID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# hi", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "notes.md")

	rec = app.do(t, http.MethodGet, file["path"].(string), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# hi", rec.Body.String())

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/files/problem/%d", problemID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["total"])

	rec = app.do(t, http.MethodDelete, fmt.Sprintf("/api/files/%d", fileID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", decode(t, rec)["error"])

	rec = app.do(t, http.MethodDelete, fmt.Sprintf("/api/files/%d", fileID), uploaderToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/files/%d/download", fileID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "File not found", decode(t, rec)["error"])
}

func TestFileTooLarge(t *testing.T) {
	app := newTestApp(t)
	problemID := app.createProblem(t, app.adminToken)

	rec := app.upload(t, app.adminToken, problemID, "big.txt", strings.Repeat("x", 1<<20+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "File too large", decode(t, rec)["error"])
}

func TestServiceEndpoints(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "LeetCode Clone API", decode(t, rec)["message"])

	rec = app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "problemhub_http_requests_total")

	rec = app.do(t, http.MethodGet, "/api/docs/json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", decode(t, rec)["swagger"])

	rec = app.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["error"])

	rec = app.do(t, http.MethodGet, "/api/problems/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
