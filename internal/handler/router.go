package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"engagement-scheduler/internal/handler/api"
	"engagement-scheduler/internal/handler/middleware"
	"engagement-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, runHandler *api.RunHandler, sequenceHandler *api.SequenceHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, runHandler, sequenceHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, runHandler *api.RunHandler, sequenceHandler *api.SequenceHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Periodic trigger surface: shared-secret header, one run per call.
	internal := engine.Group("/internal")
	internal.Use(middleware.RequireTriggerToken(cfg.Scheduler.TriggerToken))
	{
		addRoutes(internal, []route{
			{Method: http.MethodPost, Path: "/runs/:sequenceId", Handler: runHandler.Trigger},
		})
	}

	apiGroup := engine.Group("/api")
	{
		sequences := apiGroup.Group("/sequences")
		{
			addRoutes(sequences, []route{
				{Method: http.MethodGet, Path: "", Handler: sequenceHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: sequenceHandler.Get},
			})
		}

		// Manual re-runs share the trigger semantics but carry an operator identity.
		runs := apiGroup.Group("/runs")
		runs.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(middleware.RoleAdmin))
		{
			addRoutes(runs, []route{
				{Method: http.MethodPost, Path: "/:sequenceId", Handler: runHandler.Manual},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
