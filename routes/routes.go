package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recert-portal-api/blob"
	"recert-portal-api/config"
	"recert-portal-api/controllers"
	"recert-portal-api/flow"
	"recert-portal-api/middleware"
	"recert-portal-api/models"
	"recert-portal-api/session"
	"recert-portal-api/store"
)

// Deps carries everything the handlers need; main constructs it once at
// startup.
type Deps struct {
	Store    store.SubmissionStore
	Resolver *session.Resolver
	Blobs    blob.Store
	Notify   controllers.NotifyFunc
	Settings config.Settings
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	stepCtl := controllers.NewStepController(deps.Store)
	reviewCtl := controllers.NewReviewController(deps.Store, deps.Notify)
	uploadCtl := controllers.NewUploadController(deps.Store, deps.Blobs, deps.Settings.MaxUploadBytes)
	staffCtl := controllers.NewStaffController(deps.Store, []byte(deps.Settings.StaffJWTSecret), deps.Settings.StaffJWTHours)

	// Fatal store failures land here; deliberately generic.
	router.GET(session.ErrorPagePath, func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Something went wrong on our end. Please try again later.",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "Recertification Portal API is running",
			})
		})

		v1.POST("/staff/login", staffCtl.Login)

		staff := v1.Group("/staff")
		staff.Use(middleware.StaffAuth([]byte(deps.Settings.StaffJWTSecret)))
		{
			staff.GET("/submissions", staffCtl.ListSubmissions)
			staff.GET("/submissions/:token", staffCtl.GetSubmission)
		}
	}

	// The public flow: every request resolves its session first, every GET
	// passes the route guard before its handler runs.
	flowGroup := router.Group("/:agency/" + flow.AnchorSegment)
	flowGroup.Use(middleware.StepSession(deps.Resolver, deps.Store))
	flowGroup.Use(middleware.RouteGuard(deps.Store))
	{
		flowGroup.GET("", stepCtl.Root)

		flowGroup.GET("/:step", func(c *gin.Context) {
			switch models.Step(c.Param("step")) {
			case models.StepAbout:
				stepCtl.About(c)
			case models.StepUpload:
				uploadCtl.Show(c)
			case models.StepReview:
				reviewCtl.Show(c)
			case models.StepConfirm:
				reviewCtl.Confirm(c)
			default:
				stepCtl.Show(c)
			}
		})

		flowGroup.POST("/:step", func(c *gin.Context) {
			switch models.Step(c.Param("step")) {
			case models.StepUpload:
				uploadCtl.Save(c)
			case models.StepReview:
				reviewCtl.Submit(c)
			case models.StepConfirm:
				reviewCtl.StartOver(c)
			case models.StepAbout:
				c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Nothing to submit here"})
			default:
				stepCtl.Save(c)
			}
		})

		flowGroup.DELETE("/:step/:tag", uploadCtl.Delete)
		flowGroup.GET("/:step/:tag/download", uploadCtl.Download)
	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
