package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobposter-backend/internal/auth"
	"jobposter-backend/internal/config"
	"jobposter-backend/internal/database"
	"jobposter-backend/internal/logging"
	"jobposter-backend/internal/testutil"
)

var (
	testDB  *database.DBinstanceStruct
	testSrv *MyServer
	handler http.Handler
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	midTeardown, db, err := database.GetTestDB()
	if err != nil {
		fmt.Println("could not start test database:", err)
		os.Exit(1)
	}
	testDB = db

	cfg := &config.Config{
		Port:        8080,
		SecretKey:   auth.TestSecretKey,
		TokenTTL:    time.Hour,
		AllowOrigin: "http://localhost:5173",
		RateLimit:   1000,
		LogLevel:    "info",
	}
	testSrv, err = NewServer(context.Background(), cfg, testDB, logging.Discard())
	if err != nil {
		fmt.Println("could not create server:", err)
		os.Exit(1)
	}
	handler = testSrv.RegisterRoutes()

	code := m.Run()

	_ = testSrv.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func call(t *testing.T, method, path, token string, body gin.H) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	return testutil.MakeJSONRequest(body, token, handler.(*gin.Engine), path, method)
}

func login(t *testing.T, email, password string) string {
	t.Helper()
	rec, resp := call(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return resp["access_token"].(string)
}

func TestHealth(t *testing.T) {
	rec, resp := call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up", resp["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	call(t, http.MethodGet, "/health", "", nil)

	rec := testutil.MakeRequest(nil, "", handler.(*gin.Engine), "/metrics", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jobposter_http_requests_total")
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec, _ = call(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestUnauthenticatedRoutes(t *testing.T) {
	for _, path := range []string{"/api/v1/user/getjobs", "/api/v1/company/jobs", "/api/v1/user/applications"} {
		rec, _ := call(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

// TestHiringFlow walk one application from company creation to decision through the public API.
func TestHiringFlow(t *testing.T) {
	adminToken := login(t, database.TestAdminUser.Email, database.TestSeedPassword)

	companyEmail := uuid.NewString() + "@example.com"
	rec, _ := call(t, http.MethodPost, "/api/v1/admin/createcompany", adminToken, gin.H{
		"email":    companyEmail,
		"password": "companypass",
		"name":     "Hooli",
		"location": "Bangkok",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	companyToken := login(t, companyEmail, "companypass")

	rec, job := call(t, http.MethodPost, "/api/v1/company/post", companyToken, gin.H{
		"title":       "Platform Engineer Hooli",
		"location":    "Bangkok (On-site)",
		"description": "Build the platform",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	jobID := job["id"].(string)

	userEmail := uuid.NewString() + "@example.com"
	rec, signup := call(t, http.MethodPost, "/api/v1/auth/user/signup", "", gin.H{
		"email":    userEmail,
		"password": "userpass1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	userToken := signup["access_token"].(string)

	rec = testutil.MakeRequest(nil, userToken, handler.(*gin.Engine), "/api/v1/user/getjobs?search=hooli", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied":false`)

	rec, applyResp := call(t, http.MethodPost, "/api/v1/user/apply/"+jobID, userToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Applied successfully", applyResp["message"])
	appID := applyResp["application"].(map[string]interface{})["id"].(string)

	rec, applied := call(t, http.MethodGet, "/api/v1/user/applied/"+jobID, userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, applied["applied"])

	rec = testutil.MakeRequest(nil, companyToken, handler.(*gin.Engine), "/api/v1/company/getapplication/"+jobID, http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userEmail)

	// another company can not decide
	otherToken := login(t, database.TestUserCompany2.Email, database.TestSeedPassword)
	rec, _ = call(t, http.MethodPut, "/api/v1/company/status/"+appID, otherToken, gin.H{"status": "Accepted"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = call(t, http.MethodPut, "/api/v1/company/status/"+appID, companyToken, gin.H{"status": "Accepted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = call(t, http.MethodPut, "/api/v1/company/status/"+appID, companyToken, gin.H{"status": "Rejected"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = testutil.MakeRequest(nil, userToken, handler.(*gin.Engine), "/api/v1/user/applications", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Accepted"`)
	assert.Contains(t, rec.Body.String(), "Hooli")
}

func TestLogoutRevokesToken(t *testing.T) {
	token := login(t, database.TestUser2.Email, database.TestSeedPassword)

	rec, _ := call(t, http.MethodGet, "/api/v1/user/applications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := call(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Successfully logged out", resp["message"])

	rec, resp = call(t, http.MethodGet, "/api/v1/user/applications", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", resp["error"])
}

func TestHTTPServer(t *testing.T) {
	srv := testSrv.HTTPServer()
	assert.Equal(t, ":8080", srv.Addr)
	assert.NotNil(t, srv.Handler)
}
