// Package application provides HTTP handlers for job applications.
package application

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/model"
	"jobposter-backend/internal/policy"
	"jobposter-backend/internal/service"
	"jobposter-backend/internal/utilities"
)

// ApplicationController handles application related endpoints
type ApplicationController struct {
	Ledger *service.Ledger
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(ledger *service.Ledger) *ApplicationController {
	return &ApplicationController{
		Ledger: ledger,
	}
}

type statusInfo struct {
	Status string `json:"status"`
}

// StatusUpdatedResponse is returned after a successful status change
type StatusUpdatedResponse struct {
	Message     string            `json:"message"`
	Application model.Application `json:"application"`
}

// AppliedJobResponse is returned after a successful application
type AppliedJobResponse struct {
	Message     string            `json:"message"`
	Application model.Application `json:"application"`
}

// AppliedResponse tell whether caller already applied to a job
type AppliedResponse struct {
	Applied bool `json:"applied"`
}

// ApplyJob creates an application of the caller to the job
// @Summary Apply to job post
// @Description Only user can apply, at most once per job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path string true "Job ID"
// @Success 201 {object} AppliedJobResponse "Application created with status Applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as user"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied to this job"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/apply/{jobId} [post]
func (ac *ApplicationController) ApplyJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobID, err := utilities.ParseUUIDParam(c, "jobId")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	app, err := ac.Ledger.Submit(c.Request.Context(), policy.FromUser(user), jobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AppliedJobResponse{
		Message:     "Applied successfully",
		Application: app,
	})
}

// GetUserApplications returns applications of the caller joined with job and company.
// @Summary Get applications of logged in user
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as user"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/applications [get]
func (ac *ApplicationController) GetUserApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	apps, err := ac.Ledger.ListForUser(c.Request.Context(), policy.FromUser(user), user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// HasApplied report whether the caller already applied to the job
// @Summary Check if logged in user applied to job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path string true "Job ID"
// @Success 200 {object} AppliedResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as user"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/applied/{jobId} [get]
func (ac *ApplicationController) HasApplied(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobID, err := utilities.ParseUUIDParam(c, "jobId")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	applied, err := ac.Ledger.HasApplied(c.Request.Context(), policy.FromUser(user), jobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AppliedResponse{Applied: applied})
}

// GetJobApplications returns applications of a job owned by the calling company
// @Summary Get applications of a job
// @Description Only the company owning the job can access
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job ID"
// @Success 200 {array} model.Application "Applications joined with applicant"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job is not owned by caller"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/getapplication/{id} [get]
func (ac *ApplicationController) GetJobApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobID, err := utilities.ParseUUIDParam(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	apps, err := ac.Ledger.ListForJob(c.Request.Context(), policy.FromUser(user), jobID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// UpdateStatus moves an application from Applied to Accepted or Rejected
// @Summary Accept or reject application
// @Description Only the company owning the job can decide, and only once
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application ID"
// @Param Status body statusInfo true "New status, Accepted or Rejected"
// @Success 200 {object} StatusUpdatedResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid application id or missing status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Job is not owned by caller"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 409 {object} utilities.ErrorResponse "Application already decided or invalid status"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/status/{id} [put]
func (ac *ApplicationController) UpdateStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	id, err := utilities.ParseUUIDParam(c, "id")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var info statusInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	app, err := ac.Ledger.UpdateStatus(c.Request.Context(), policy.FromUser(user), id, info.Status)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusUpdatedResponse{
		Message:     "Application status updated",
		Application: app,
	})
}
