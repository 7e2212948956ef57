package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tamirmana/Shifter/config"
	"github.com/tamirmana/Shifter/internal/api/handler"
	"github.com/tamirmana/Shifter/internal/api/middleware"
	"github.com/tamirmana/Shifter/pkg/cache"
)

// Setup builds the Gin engine with every route mounted.
func Setup(cfg *config.Config, h *handler.Handler, cacheClient *cache.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.CacheInvalidate(cacheClient))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		teams := v1.Group("/teams")
		{
			teams.GET("", h.Team.List)
			teams.POST("", h.Team.Create)
			teams.GET("/:id", h.Team.Get)
			teams.PUT("/:id", h.Team.Update)
			teams.DELETE("/:id", h.Team.Delete)

			teams.GET("/:id/members", h.Member.ListByTeam)
			teams.GET("/:id/schedules", h.Schedule.ListMonths)
			teams.POST("/:id/shifts", h.Schedule.AssignManual)
			teams.GET("/:id/swaps", h.Swap.ListByTeam)
			teams.GET("/:id/swaps/balances", h.Swap.Balances)
			teams.GET("/:id/shotef/history", h.Shotef.History)
			teams.GET("/:id/reports/fairness", h.Report.Fairness)
		}

		members := v1.Group("/members")
		{
			members.POST("", h.Member.Create)
			members.GET("/:id", h.Member.Get)
			members.PUT("/:id", h.Member.Update)
			members.DELETE("/:id", h.Member.Delete)
			members.GET("/:id/unavailabilities", h.Unavailability.ListByMember)
		}

		unavailabilities := v1.Group("/unavailabilities")
		{
			unavailabilities.POST("", h.Unavailability.Create)
			unavailabilities.POST("/bulk", h.Unavailability.CreateBulk)
			unavailabilities.DELETE("/:id", h.Unavailability.Delete)
		}

		schedule := v1.Group("/schedule")
		{
			schedule.POST("/generate", h.Schedule.Generate)
			schedule.GET("", h.Schedule.GetMonth)
			schedule.DELETE("", h.Schedule.DeleteMonth)
		}

		shifts := v1.Group("/shifts")
		{
			shifts.POST("/past", h.Schedule.AddPastShifts)
			shifts.PUT("/:id", h.Schedule.Reassign)
			shifts.DELETE("/:id", h.Schedule.DeleteShift)
		}

		swaps := v1.Group("/swaps")
		{
			swaps.POST("", h.Swap.Create)
			swaps.DELETE("/:id", h.Swap.Revert)
		}

		shotef := v1.Group("/shotef")
		{
			shotef.POST("", h.Shotef.AddDays)
			shotef.POST("/settle", h.Shotef.Settle)
			shotef.PUT("/:id", h.Shotef.Reassign)
			shotef.DELETE("/:id", h.Shotef.DeleteDay)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", h.Settings.Get)
			settings.PUT("", h.Settings.Update)
		}

		export := v1.Group("/export")
		{
			export.GET("/schedule.xlsx", h.Export.ExportExcel)
			export.GET("/schedule.ics", h.Export.ExportICS)
		}
	}

	return r
}
