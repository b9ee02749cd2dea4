// Package admin provides HTTP handlers for account provisioning by administrators.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/model"
	"jobposter-backend/internal/policy"
	"jobposter-backend/internal/service"
	"jobposter-backend/internal/utilities"
)

// AdminController handles admin only endpoints
type AdminController struct {
	Accounts *service.AccountService
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(accounts *service.AccountService) *AdminController {
	return &AdminController{
		Accounts: accounts,
	}
}

type userInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type companyInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// CreatedUserResponse is returned after admin create an account
type CreatedUserResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

// CreatedCompanyResponse is returned after admin create a company account
type CreatedCompanyResponse struct {
	Message string        `json:"message"`
	Company model.Company `json:"company"`
}

// CreateUser create a regular user account
// @Summary Create user account
// @Description Only admin can access this endpoint
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body userInfo true "Email and password of new user"
// @Success 201 {object} CreatedUserResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid email or password too short"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/createuser [post]
func (ac *AdminController) CreateUser(c *gin.Context) {
	admin, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var info userInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and password must be provided",
		})
		return
	}

	user, err := ac.Accounts.CreateUser(c.Request.Context(), policy.FromUser(admin), info.Email, info.Password)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedUserResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// CreateCompany create a company account together with its profile
// @Summary Create company account
// @Description Only admin can access this endpoint
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body companyInfo true "Credential, name and location of new company"
// @Success 201 {object} CreatedCompanyResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing field, invalid email or password too short"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/createcompany [post]
func (ac *AdminController) CreateCompany(c *gin.Context) {
	admin, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var info companyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email, password, name and location must be provided",
		})
		return
	}

	company, err := ac.Accounts.CreateCompany(c.Request.Context(), policy.FromUser(admin), service.CompanyInput{
		Email:    info.Email,
		Password: info.Password,
		Name:     info.Name,
		Location: info.Location,
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedCompanyResponse{
		Message: "Company created successfully",
		Company: company,
	})
}
