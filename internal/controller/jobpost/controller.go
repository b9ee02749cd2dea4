// Package jobpost provides HTTP handlers for job post related operations.
package jobpost

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/policy"
	"jobposter-backend/internal/repository"
	"jobposter-backend/internal/service"
	"jobposter-backend/internal/utilities"
)

// JobPostController handles job post related endpoints
type JobPostController struct {
	Catalog *service.Catalog
}

// NewJobPostController creates a new instance of JobPostController
func NewJobPostController(catalog *service.Catalog) *JobPostController {
	return &JobPostController{
		Catalog: catalog,
	}
}

type jobInfo struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CreateJobPostHandler handles the creation of a new job post by a company user.
// @Summary Create job post based on given json structure
// @Description Only company have access to this endpoint, the job is owned by the caller
// @Tags Jobpost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Jobpost body model.EditableJobInfo true "Input job information"
// @Success 201 {object} model.Job "Successfully create job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or missing field"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/post [post]
func (jc *JobPostController) CreateJobPostHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var info jobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	job, err := jc.Catalog.PostJob(c.Request.Context(), policy.FromUser(user), service.JobInput{
		Title:       info.Title,
		Location:    info.Location,
		Description: info.Description,
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetCompanyJobs returns every job owned by the calling company, newest first.
// @Summary Get jobs of logged in company
// @Tags Jobpost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/jobs [get]
func (jc *JobPostController) GetCompanyJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobs, err := jc.Catalog.ListJobsForCompany(c.Request.Context(), policy.FromUser(user), user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetPosts fetches all job posts that match query and mark the ones the caller applied to.
// @Summary Get job posts based on query
// @Description Every query are not required, but they have specific use defined in their description
// @Tags Jobpost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Search from job title with substring matching and case insensitive"
// @Param location query string false "Search from location with substring matching and case insensitive"
// @Param desc query boolean false "Sorting by post time in descending if true, otherwise ascending"
// @Success 200 {array} model.JobListing "Return job post(s) with applied flag"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as user"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/getjobs [get]
func (jc *JobPostController) GetPosts(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	filter := repository.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Desc:     strings.ToLower(c.Query("desc")) == "true",
	}

	listings, err := jc.Catalog.ListAllJobs(c.Request.Context(), policy.FromUser(user), filter)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}
