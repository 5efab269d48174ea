package server

import (
	"github.com/gin-gonic/gin"

	"weatherapp/server/internal/api/controller"
	"weatherapp/server/internal/api/response"
	"weatherapp/server/internal/auth"
)

// Server owns the gin engine and the route table.
type Server struct {
	engine *gin.Engine
}

// NewServer builds the engine and registers all routes. Every route below
// the bearer gate passes through the identity middleware before its handler.
func NewServer(tokens *auth.TokenService, users *controller.UserController, locations *controller.LocationController) *Server {
	engine := gin.Default()

	engine.GET("/ping", func(c *gin.Context) {
		response.OKMessage(c, "pong")
	})

	engine.POST("/signup", users.Signup)
	engine.POST("/login", users.Login)

	protected := engine.Group("/", auth.Middleware(tokens))
	{
		protected.PATCH("/settings", users.UpdateSettings)
		protected.GET("/settings", users.GetSettings)

		protected.POST("/location", locations.SaveLocation)
		protected.GET("/location", locations.ListSaved)
		protected.DELETE("/location", locations.DeleteSaved)
		protected.GET("/location/isLocationSaved", locations.IsLocationSaved)

		protected.POST("/searchHistory", locations.AddSearchHistory)
		protected.GET("/searchHistory", locations.ListSearchHistory)
	}

	return &Server{engine: engine}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
