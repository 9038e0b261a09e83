package server

import (
	"github.com/openpathway/pathmerge/internal/server/middleware"
	"github.com/openpathway/pathmerge/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Source and archive routes
	apiRoutes.GET("/sources", routes.GetSourcesHandler, middleware.RequirePermission("source.view"))
	apiRoutes.GET("/sources/:source/archives", routes.GetArchivesHandler, middleware.RequirePermission("archive.view"))

	// Job routes
	apiRoutes.POST("/jobs/convert", routes.CreateConvertJobHandler, middleware.RequirePermission("job.convert"))
	apiRoutes.POST("/jobs/merge", routes.CreateMergeJobHandler, middleware.RequirePermission("job.merge"))

	// Universe routes
	apiRoutes.GET("/universe/summary", routes.GetUniverseSummaryHandler, middleware.RequirePermission("universe.view"))

	// Record schema route
	apiRoutes.GET("/schema", routes.GetSchemaHandler, middleware.RequirePermission("schema.view"))
}
