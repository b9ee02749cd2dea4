package auth

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"jobposter-backend/internal/database"
	"jobposter-backend/internal/logging"
	"jobposter-backend/internal/repository"
	"jobposter-backend/internal/service"
	"jobposter-backend/internal/utilities"
)

// TestSecretKey signs tokens issued by TestTokenIssuer.
const TestSecretKey = "test-secret-key-0123456789abcdef"

// TestTokenIssuer return issuer shared by tests so tokens from GetAccessToken validate in middleware.
func TestTokenIssuer() *TokenIssuer {
	return NewTokenIssuer(TestSecretKey, time.Hour)
}

// GetAccessToken is a helper function to obtain an access token for an account by simulating a login API call.
// It takes the testing object, database connection, email, and password as parameters.
// It returns the access token as a string and any error encountered during the process.
func GetAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
) (string, error) {
	t.Helper()
	accounts := service.NewAccountService(repository.NewAccountStore(db.DB), logging.Discard())
	handler := NewLocalAuthHandler(accounts, TestTokenIssuer(), nil)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	if resp["access_token"] == nil {
		return "", fmt.Errorf("login Failed: no access_token in response: %s", rec.Body.String())
	}
	return resp["access_token"].(string), nil
}
