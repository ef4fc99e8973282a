package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the gin engine with middleware and all routes mounted.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(s.cfg.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID())
	if s.metrics != nil {
		engine.Use(s.metrics.HTTPMiddleware())
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	}

	engine.GET("/healthz", s.Healthz)

	api := engine.Group("/api")

	api.POST("/auth/login", s.Login)
	api.POST("/auth/register", s.Register)

	authed := api.Group("", s.AuthRequired())
	authed.GET("/vehicle-types", s.ListVehicleTypes)
	authed.GET("/spaces", s.ListSpaces)
	authed.GET("/tariffs", s.ListTariffs)
	authed.GET("/records", s.ListRecords)
	authed.POST("/records/entry", s.RecordEntry)
	authed.POST("/records/exit", s.RecordExit)

	admin := authed.Group("", s.AdminRequired())
	admin.POST("/tariffs", s.CreateTariff)
	admin.PUT("/tariffs/:id", s.UpdateTariff)
	admin.GET("/users", s.ListUsers)
	admin.POST("/users", s.CreateUser)
	admin.PATCH("/users/:id/active", s.SetUserActive)
	admin.GET("/reports", s.GetReport)

	return engine
}
