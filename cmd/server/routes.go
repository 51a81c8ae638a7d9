package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/internal/interfaces/http/handlers"
	"startup-directory.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	submissionHandler *handlers.SubmissionHandler
	startupHandler    *handlers.StartupHandler
	adminHandler      *handlers.AdminHandler
	draftHandler      *handlers.DraftHandler
	authHandler       *handlers.AuthHandler
	healthHandler     *handlers.HealthHandler
	requireSession    gin.HandlerFunc
	optionalAuth      gin.HandlerFunc
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoutes(r, d)
	registerAPIV1Routes(r, d)
	return r
}

func registerHealthRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", d.healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth forms (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.authHandler.SignUp)
			auth.POST("/signin", d.authHandler.SignIn)
			auth.POST("/password/reset", d.authHandler.ResetPassword)
			auth.POST("/password", d.requireSession, d.authHandler.ChangePassword)
		}

		// Submission wizard (public)
		submissions := v1.Group("/submissions")
		submissions.Use(d.optionalAuth)
		{
			submissions.POST("", middleware.IdempotencyMiddleware(), d.submissionHandler.Submit)
			submissions.POST("/validate", d.submissionHandler.ValidateStep)
		}

		// Drafts created with a session stay bound to it
		drafts := v1.Group("/drafts")
		drafts.Use(d.optionalAuth)
		{
			drafts.POST("", d.draftHandler.Create)
			drafts.PUT("/:id", d.draftHandler.Save)
			drafts.GET("/:id", d.draftHandler.Get)
			drafts.DELETE("/:id", d.draftHandler.Delete)
		}

		// Directory (public reads; the session only widens what is visible)
		startups := v1.Group("/startups")
		startups.Use(d.optionalAuth)
		{
			startups.GET("", d.startupHandler.List)
			startups.GET("/featured", d.startupHandler.Featured)
			startups.GET("/stats", d.startupHandler.Stats)
			startups.GET("/filters", d.startupHandler.Filters)
			startups.GET("/:slug", d.startupHandler.GetBySlug)
			startups.GET("/:slug/pitch-deck", d.startupHandler.PitchDeck)
		}

		owned := v1.Group("/startups")
		owned.Use(d.requireSession)
		{
			owned.PATCH("/:id", d.startupHandler.Update)
			owned.POST("/:id/claim", middleware.RequireRole(entities.UserRoleEntrepreneur), d.startupHandler.Claim)
		}

		me := v1.Group("/me")
		me.Use(d.requireSession)
		{
			me.GET("/claims", d.startupHandler.MyClaims)
			me.GET("/startups", d.startupHandler.MyStartups)
		}

		admin := v1.Group("/admin")
		admin.Use(d.requireSession, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.Stats)

			admin.GET("/submissions", d.submissionHandler.List)
			admin.GET("/submissions/:id", d.submissionHandler.Get)
			admin.POST("/submissions/:id/approve", d.submissionHandler.Approve)
			admin.POST("/submissions/:id/reject", d.submissionHandler.Reject)

			admin.GET("/startups", d.adminHandler.ListStartups)
			admin.GET("/startups/export", d.adminHandler.Export)
			admin.GET("/startups/:id", d.adminHandler.GetStartup)
			admin.POST("/startups", d.adminHandler.CreateStartup)
			admin.DELETE("/startups/:id", d.adminHandler.DeleteStartup)

			admin.GET("/claims", d.adminHandler.ListClaims)
			admin.POST("/claims/:id/approve", d.adminHandler.ApproveClaim)
			admin.DELETE("/claims/:id", d.adminHandler.RejectClaim)

			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/users/:id", d.adminHandler.UpdateUser)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)
		}
	}
}

// withCORS answers browser preflights before they reach gin
func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
}
