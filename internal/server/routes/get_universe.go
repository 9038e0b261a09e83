package routes

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/openpathway/pathmerge/internal/server/middleware"
	"github.com/openpathway/pathmerge/pkg/store"

	"github.com/labstack/echo/v4"
)

// GetUniverseSummaryHandler serves the size and shape statistics of the
// current universe archive.
func GetUniverseSummaryHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	path := filepath.Join(app.ArchiveRoot, "universe"+store.ArchiveExt)
	universe, err := app.Store.Load(ctx, path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "No universe archive; run a merge job first"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load universe archive"})
	}

	return c.JSON(http.StatusOK, universe.Summarize())
}
