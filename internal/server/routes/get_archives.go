package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/openpathway/pathmerge/internal/server/middleware"
	"github.com/openpathway/pathmerge/pkg/store"

	"github.com/labstack/echo/v4"
)

type archiveInfo struct {
	Pathway string `json:"pathway"`
	Source  string `json:"source"`
	Path    string `json:"path"`
}

// GetArchivesHandler lists the converted graph archives of one source.
func GetArchivesHandler(c echo.Context) error {
	type getArchivesParams struct {
		Source string `param:"source" validate:"required,oneof=kegg reactome wikipathways"`
	}

	params := new(getArchivesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	paths, err := app.Store.List(ctx, filepath.Join(app.ArchiveRoot, params.Source))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list archives"})
	}

	archives := make([]archiveInfo, 0, len(paths))
	for _, path := range paths {
		if !strings.HasSuffix(path, store.ArchiveExt) {
			continue
		}
		archives = append(archives, archiveInfo{
			Pathway: strings.TrimSuffix(filepath.Base(path), store.ArchiveExt),
			Source:  params.Source,
			Path:    path,
		})
	}

	return c.JSON(http.StatusOK, archives)
}
