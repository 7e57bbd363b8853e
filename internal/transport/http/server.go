package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"freewen/internal/bootstrap"
	"freewen/internal/transport/http/handler"
	"freewen/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.GET("/healthz", healthHandler.Check)

	sessionHandler := handler.NewSessionHandler(app.Sessions)
	planHandler := handler.NewPlanHandler(app.Planner, app.Sessions)
	exportHandler := handler.NewExportHandler(app.Sessions)
	bookingHandler := handler.NewBookingHandler(app.Sessions, app.Config.Upload)
	historyHandler := handler.NewHistoryHandler(app.PlanRecords)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Workspace(app.Config.App.WorkspaceSecret))
	v1.GET("/history", historyHandler.List)

	sessions := v1.Group("/sessions")
	sessions.POST("", sessionHandler.Create)
	sessions.GET("", sessionHandler.List)
	sessions.GET("/:name", sessionHandler.Get)
	sessions.PUT("/:name", sessionHandler.Update)
	sessions.POST("/:name/activate", sessionHandler.Activate)
	sessions.DELETE("/:name", sessionHandler.Delete)

	sessions.POST("/:name/plan", planHandler.Generate)
	sessions.GET("/:name/plan", planHandler.Get)
	sessions.GET("/:name/export", exportHandler.Plan)

	sessions.POST("/:name/bookings", bookingHandler.Upload)
	sessions.GET("/:name/bookings", bookingHandler.List)
	sessions.GET("/:name/bookings/:id/download", bookingHandler.Download)
	sessions.DELETE("/:name/bookings/:id", bookingHandler.Delete)

	return router
}
