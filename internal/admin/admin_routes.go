package admin

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	adminGroup.Use(middleware.ContextLogger(zap.L()))
	{
		adminGroup.GET("/users/get",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "users", "read"),
			h.GetAllUsers,
		)

		adminGroup.GET("/attendance/get/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "reports", "read"),
			h.GetUserAttendance,
		)
	}
}
