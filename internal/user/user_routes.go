package user

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	users := r.Group("/user")
	{
		users.POST("/signup", middleware.RateLimitByIP(0.1, 1), h.Signup)
		users.POST("/login", middleware.RateLimitByIP(0.08, 5), h.Login)
	}

	authed := users.Group("")
	authed.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	authed.Use(middleware.ContextLogger(zap.L()))
	{
		authed.GET("/whoami",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "profile", "read"),
			h.WhoAmI,
		)

		authed.PUT("/edit",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "profile", "write"),
			h.EditProfile,
		)

		authed.PUT("/change-password/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "profile", "write"),
			h.ChangePassword,
		)

		authed.GET("/face-descriptor",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "profile", "read"),
			h.GetFaceDescriptor,
		)

		authed.PUT("/face-descriptor",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "profile", "write"),
			h.UpdateFaceDescriptor,
		)
	}
}
