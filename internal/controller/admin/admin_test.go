package admin

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobposter-backend/internal/auth"
	"jobposter-backend/internal/database"
	"jobposter-backend/internal/logging"
	"jobposter-backend/internal/middleware"
	"jobposter-backend/internal/model"
	"jobposter-backend/internal/policy"
	"jobposter-backend/internal/repository"
	"jobposter-backend/internal/service"
	"jobposter-backend/internal/testutil"
)

var (
	testDB *database.DBinstanceStruct
	router *gin.Engine
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	midTeardown, db, err := database.GetTestDB()
	if err != nil {
		fmt.Println("could not start test database:", err)
		os.Exit(1)
	}
	testDB = db

	accounts := service.NewAccountService(repository.NewAccountStore(testDB.DB), logging.Discard())
	ac := NewAdminController(accounts)

	router = gin.New()
	admin := router.Group("/admin",
		middleware.RequireAuth(auth.TestTokenIssuer(), accounts),
		middleware.RequireAction(policy.CreateAccount),
	)
	admin.POST("/createuser", ac.CreateUser)
	admin.POST("/createcompany", ac.CreateCompany)

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestCreateUser_Success(t *testing.T) {
	email := uuid.NewString() + "@Example.com"

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    email,
		"password": "longenough",
	}, adminToken(t), router, "/admin/createuser", http.MethodPost)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "User created successfully", resp["message"])
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, model.NormalizeEmail(email), user["email"])
	assert.Equal(t, string(model.RoleUser), user["role"])
	assert.NotContains(t, user, "password")

	var stored model.User
	require.NoError(t, testDB.Where("email = ?", model.NormalizeEmail(email)).First(&stored).Error)
	assert.NotEqual(t, "longenough", stored.Password)
}

func TestCreateUser_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		body   gin.H
		status int
	}{
		{"missing password", gin.H{"email": "x@example.com"}, http.StatusBadRequest},
		{"bad email", gin.H{"email": "not-an-email", "password": "longenough"}, http.StatusBadRequest},
		{"short password", gin.H{"email": uuid.NewString() + "@example.com", "password": "short"}, http.StatusBadRequest},
		{"duplicate email", gin.H{"email": database.TestUser1.Email, "password": "longenough"}, http.StatusConflict},
	}

	token := adminToken(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := testutil.MakeJSONRequest(tc.body, token, router, "/admin/createuser", http.MethodPost)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestCreateUser_NotAdmin(t *testing.T) {
	for _, email := range []string{database.TestUser1.Email, database.TestUserCompany1.Email} {
		token, err := auth.GetAccessToken(t, testDB, email, database.TestSeedPassword)
		require.NoError(t, err)

		rec, _ := testutil.MakeJSONRequest(gin.H{
			"email":    uuid.NewString() + "@example.com",
			"password": "longenough",
		}, token, router, "/admin/createuser", http.MethodPost)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}
}

func TestCreateCompany_Success(t *testing.T) {
	email := uuid.NewString() + "@example.com"

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    email,
		"password": "longenough",
		"name":     "Umbrella",
		"location": "Khon Kaen",
	}, adminToken(t), router, "/admin/createcompany", http.MethodPost)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	company := resp["company"].(map[string]interface{})
	assert.Equal(t, "Umbrella", company["name"])
	assert.Equal(t, "Khon Kaen", company["location"])

	var user model.User
	require.NoError(t, testDB.Where("email = ?", email).First(&user).Error)
	assert.Equal(t, model.RoleCompany, user.Role)
	assert.Equal(t, user.ID.String(), company["id"])

	// new company can log in right away
	_, err := auth.GetAccessToken(t, testDB, email, "longenough")
	assert.NoError(t, err)
}

func TestCreateCompany_Invalid(t *testing.T) {
	token := adminToken(t)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email":    uuid.NewString() + "@example.com",
		"password": "longenough",
		"name":     "No location",
	}, token, router, "/admin/createcompany", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    database.TestUserCompany2.Email,
		"password": "longenough",
		"name":     "Dup",
		"location": "Bangkok",
	}, token, router, "/admin/createcompany", http.MethodPost)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", resp["error"])

	var count int64
	require.NoError(t, testDB.Model(&model.Company{}).Where("name = ?", "Dup").Count(&count).Error)
	assert.Zero(t, count)
}
