// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/auth"
	"jobposter-backend/internal/controller/admin"
	"jobposter-backend/internal/controller/application"
	"jobposter-backend/internal/controller/jobpost"
	"jobposter-backend/internal/metrics"
	"jobposter-backend/internal/middleware"
	"jobposter-backend/internal/model"
	"jobposter-backend/internal/policy"
	"jobposter-backend/internal/repository"
	"jobposter-backend/internal/service"
)

// maxBodyBytes bound every JSON request body
const maxBodyBytes = 1 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	accountStore := repository.NewAccountStore(s.DB.DB)
	jobStore := repository.NewJobStore(s.DB.DB)
	applicationStore := repository.NewApplicationStore(s.DB.DB)

	accounts := service.NewAccountService(accountStore, s.log.WithField("component", "accounts"))
	catalog := service.NewCatalog(jobStore, applicationStore, nil, s.log.WithField("component", "catalog"))
	ledger := service.NewLedger(applicationStore, jobStore, nil, s.log.WithField("component", "ledger"))

	lAuth := auth.NewLocalAuthHandler(accounts, s.tokens, s.audit)
	logout := auth.NewLogoutController(s.blacklist, s.audit)
	adminController := admin.NewAdminController(accounts)
	jobController := jobpost.NewJobPostController(catalog)
	applicationController := application.NewApplicationController(ledger)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader(), middleware.RequestMetrics(), middleware.ErrorLogger(s.log))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1", middleware.IPRateLimiterMiddleware(s.cfg.RateLimit), middleware.SizeLimit(maxBodyBytes))
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("user/signup", lAuth.SignUpHandler)
		}

		// Any authenticated routes
		needAuth := v1.Group("")
		{
			needAuth.Use(
				middleware.RequireAuth(s.tokens, accounts),
				middleware.JwtBlacklistCheck(s.blacklist),
				middleware.RateLimiterMiddleware(s.cfg.RateLimit),
			)
			needAuth.POST("auth/logout", logout.LogoutHandler)

			adminRoute := needAuth.Group("/admin", middleware.RequireAction(policy.CreateAccount))
			{
				adminRoute.POST("createuser", adminController.CreateUser)
				adminRoute.POST("createcompany", adminController.CreateCompany)
			}

			companyRoute := needAuth.Group("/company", middleware.CheckRole(model.RoleCompany))
			{
				companyRoute.POST("post", jobController.CreateJobPostHandler)
				companyRoute.GET("jobs", jobController.GetCompanyJobs)
				companyRoute.GET("getapplication/:id", applicationController.GetJobApplications)
				companyRoute.PUT("status/:id", applicationController.UpdateStatus)
			}

			userRoute := needAuth.Group("/user", middleware.CheckRole(model.RoleUser))
			{
				userRoute.GET("getjobs", jobController.GetPosts)
				userRoute.POST("apply/:jobId", applicationController.ApplyJob)
				userRoute.GET("applications", applicationController.GetUserApplications)
				userRoute.GET("applied/:jobId", applicationController.HasApplied)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	stats := s.DB.Health()
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, stats)
		return
	}
	c.JSON(http.StatusOK, stats)
}
