package attendance

import (
	"go-attend/internal/middleware"
	"go-attend/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	att.Use(middleware.ContextLogger(zap.L()))
	{
		att.GET("/user/get",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.GetMonthly,
		)

		att.POST("/check-in",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(rdb),
			h.CheckIn,
		)

		att.POST("/check-out",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(rdb),
			h.CheckOut,
		)
	}
}
