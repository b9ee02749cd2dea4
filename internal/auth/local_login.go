package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/logging"
	"jobposter-backend/internal/model"
	"jobposter-backend/internal/service"
	"jobposter-backend/internal/utilities"
)

// LocalAuthHandler serve email/password login and self service sign up.
type LocalAuthHandler struct {
	Accounts *service.AccountService
	Tokens   *TokenIssuer
	Audit    logrus.FieldLogger
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler. A nil audit logger disable auditing.
func NewLocalAuthHandler(accounts *service.AccountService, tokens *TokenIssuer, audit logrus.FieldLogger) *LocalAuthHandler {
	if audit == nil {
		audit = logging.Discard()
	}
	return &LocalAuthHandler{
		Accounts: accounts,
		Tokens:   tokens,
		Audit:    audit,
	}
}

type credentialInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by login and sign up
type TokenResponse struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
}

// LocalLoginHandler function handles local login by receiving email and password
// @Summary Handles local login by receiving email and password
// @Description Email must exist and password match
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body credentialInfo true "Credentials for login"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info credentialInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}

	user, err := lh.Accounts.Authenticate(c.Request.Context(), info.Email, info.Password)
	if err != nil {
		lh.LogAuthAttempt(logrus.WarnLevel, "Login", "Fail", model.NormalizeEmail(info.Email), apperror.Message(err))
		utilities.RespondError(c, err)
		return
	}

	accessToken, _, err := lh.Tokens.GenerateStandardToken(user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	lh.LogAuthAttempt(logrus.InfoLevel, "Login", "Success", user.ID.String(), "")
	c.JSON(http.StatusOK, TokenResponse{User: user, AccessToken: accessToken})
}

// SignUpHandler creates a user account for anonymous caller and log it in
// @Summary Self service user registration
// @Description Email must be valid and unused, password must longer or equal to 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body credentialInfo true "Email and password of new account"
// @Success 201 {object} TokenResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/user/signup [post]
func (lh *LocalAuthHandler) SignUpHandler(c *gin.Context) {
	var info credentialInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and password must be provided",
		})
		return
	}

	user, err := lh.Accounts.SignUp(c.Request.Context(), info.Email, info.Password)
	if err != nil {
		lh.LogAuthAttempt(logrus.WarnLevel, "SignUp", "Fail", model.NormalizeEmail(info.Email), apperror.Message(err))
		utilities.RespondError(c, err)
		return
	}

	accessToken, _, err := lh.Tokens.GenerateStandardToken(user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	lh.LogAuthAttempt(logrus.InfoLevel, "SignUp", "Success", user.ID.String(), "")
	c.JSON(http.StatusCreated, TokenResponse{User: user, AccessToken: accessToken})
}

// LogAuthAttempt record one authentication attempt in the audit log.
// action: Login|SignUp|Logout, status: Success|Fail, identifier: email or user id.
func (lh *LocalAuthHandler) LogAuthAttempt(level logrus.Level, action, status, identifier, message string) {
	lh.Audit.WithFields(logrus.Fields{
		"auth_type":  "Local",
		"action":     action,
		"status":     status,
		"identifier": identifier,
	}).Log(level, message)
}
