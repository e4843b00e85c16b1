package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/config"
	"github.com/gilandre/senator-dashboard-sub005/internal/api/handler"
	"github.com/gilandre/senator-dashboard-sub005/internal/api/middleware"
	"github.com/gilandre/senator-dashboard-sub005/pkg/jwt"
	"github.com/gilandre/senator-dashboard-sub005/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	// CSV 上传走独立上限，普通请求体限 1MB
	r.Use(middleware.BodyLimit(maxBodyBytes(cfg)))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 账号模块（仅管理员）
			users := authorized.Group("/users", middleware.RoleAuth("admin"))
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", h.User.Create)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.PUT("/:id/role", h.User.AssignRole)
			}

			// 角色/权限模块（仅管理员）
			roles := authorized.Group("/roles", middleware.RoleAuth("admin"))
			{
				roles.GET("", h.Role.List)
				roles.GET("/:id", h.Role.Get)
				roles.POST("", h.Role.Create)
				roles.PUT("/:id", h.Role.Update)
				roles.DELETE("/:id", h.Role.Delete)
				roles.PUT("/:id/permissions", h.Role.SetPermissions)
			}
			authorized.GET("/permissions", middleware.RoleAuth("admin"), h.Role.ListPermissions)

			// 门禁事件模块
			accessLogs := authorized.Group("/access-logs")
			{
				accessLogs.GET("", h.AccessLog.List)
				accessLogs.GET("/:id", h.AccessLog.Get)
				accessLogs.POST("", middleware.RoleAuth("admin", "operator"), h.AccessLog.Create)
				accessLogs.PATCH("/:id", middleware.RoleAuth("admin", "operator"), h.AccessLog.Update)
				accessLogs.DELETE("/:id", middleware.RoleAuth("admin"), h.AccessLog.Delete)
			}

			// 考勤模块（策略路由注册在 :id 类路由之前，避免歧义）
			attendance := authorized.Group("/attendance")
			{
				attendance.GET("/config", h.AttendanceConfig.Get)
				attendance.PUT("/config", middleware.RoleAuth("admin"), h.AttendanceConfig.Update)
				attendance.GET("", h.Attendance.Derive)
				attendance.GET("/anomalies", h.Attendance.Anomalies)
			}

			// CSV 导入模块
			imports := authorized.Group("/import", middleware.RoleAuth("admin", "operator"))
			{
				imports.POST("/preview", h.Import.Preview)
				imports.POST("", h.Import.Import)
			}

			// 同步任务手动触发
			authorized.POST("/sync/run", middleware.RoleAuth("admin", "operator"), h.Sync.Run)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/attendance", h.Export.ExportAttendance)
				export.GET("/anomalies", h.Export.ExportAnomalies)
				export.GET("/holidays.ics", h.Export.ExportHolidayCalendar)
			}

			// 名录模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.POST("", middleware.RoleAuth("admin", "operator"), h.Employee.Create)
				employees.PUT("/:id", middleware.RoleAuth("admin", "operator"), h.Employee.Update)
				employees.DELETE("/:id", middleware.RoleAuth("admin"), h.Employee.Delete)
			}

			visitors := authorized.Group("/visitors")
			{
				visitors.GET("", h.Visitor.List)
				visitors.GET("/:id", h.Visitor.Get)
				visitors.POST("", middleware.RoleAuth("admin", "operator"), h.Visitor.Create)
				visitors.PUT("/:id", middleware.RoleAuth("admin", "operator"), h.Visitor.Update)
				visitors.DELETE("/:id", middleware.RoleAuth("admin"), h.Visitor.Delete)
			}

			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.List)
				holidays.POST("", middleware.RoleAuth("admin"), h.Holiday.Create)
				holidays.PUT("/:id", middleware.RoleAuth("admin"), h.Holiday.Update)
				holidays.DELETE("/:id", middleware.RoleAuth("admin"), h.Holiday.Delete)
			}
		}
	}

	return r
}

// maxBodyBytes 取普通请求体上限与 CSV 上传上限中的较大者
func maxBodyBytes(cfg *config.Config) int64 {
	const defaultLimit = int64(1 << 20)
	if cfg.Import.MaxFileSize > defaultLimit {
		// multipart 自身开销预留 64KB
		return cfg.Import.MaxFileSize + (64 << 10)
	}
	return defaultLimit
}
