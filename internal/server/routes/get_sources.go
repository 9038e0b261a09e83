package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/openpathway/pathmerge/internal/server/middleware"
	"github.com/openpathway/pathmerge/pkg/merge"
	"github.com/openpathway/pathmerge/pkg/store"

	"github.com/labstack/echo/v4"
)

type sourceInfo struct {
	Name     string `json:"name"`
	Archives int    `json:"archives"`
}

// GetSourcesHandler lists the known pathway databases together with the
// number of converted archives currently stored for each.
func GetSourcesHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	sources := make([]sourceInfo, 0, len(merge.Sources))
	for _, source := range merge.Sources {
		paths, err := app.Store.List(ctx, filepath.Join(app.ArchiveRoot, source))
		if err != nil {
			// A source without its directory simply has no archives yet.
			paths = nil
		}
		count := 0
		for _, path := range paths {
			if strings.HasSuffix(path, store.ArchiveExt) {
				count++
			}
		}
		sources = append(sources, sourceInfo{Name: source, Archives: count})
	}

	return c.JSON(http.StatusOK, sources)
}
