package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hospitalroster/duty-scheduler/pkg/auth"
	"github.com/hospitalroster/duty-scheduler/pkg/database"
	"github.com/hospitalroster/duty-scheduler/pkg/handlers"
)

var r *gin.Engine

func init() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	logger := zap.NewNop()

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := handlers.NewHandler(db, logger)

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Duty Scheduler API (serverless)",
			"version": "1.0.0",
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/instances/validate", h.ValidateInstance)
		api.POST("/runs", h.CreateRun)
		api.GET("/runs/:id", h.GetRun)
		api.POST("/runs/:id/cancel", h.CancelRun)
		api.POST("/runs/csv", h.RunsCSV)
		api.GET("/usage", h.GetMyUsage)
	}
}

// Handler is the entry point for the serverless Go runtime.
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
