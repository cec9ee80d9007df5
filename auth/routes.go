package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the auth endpoints on the engine. Extra middleware
// (rate limiting in practice) applies to the whole group.
func RegisterRoutes(r *gin.Engine, h *Handler, guard gin.HandlerFunc, middleware ...gin.HandlerFunc) {
	group := r.Group("/auth", middleware...)
	group.POST("/register", h.Register)
	group.POST("/login", h.Login)
	group.GET("/me", guard, h.Me)
}
