package routes

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/openpathway/pathmerge/internal/queue"
	"github.com/openpathway/pathmerge/internal/server/middleware"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/labstack/echo/v4"
)

// CreateConvertJobHandler enqueues a convert job for one source export
// directory. The output defaults to the archive directory of the source.
func CreateConvertJobHandler(c echo.Context) error {
	type createConvertJobParams struct {
		Source    string `json:"source" validate:"required,oneof=kegg reactome wikipathways"`
		InputDir  string `json:"input_dir" validate:"required"`
		OutputDir string `json:"output_dir"`
	}

	params := new(createConvertJobParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	outputDir := params.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(app.ArchiveRoot, params.Source)
	}

	correlationID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create job ID"})
	}

	msg := queue.ConvertJobMsg{
		Source:        params.Source,
		InputDir:      params.InputDir,
		OutputDir:     outputDir,
		CorrelationID: correlationID,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to encode job"})
	}
	if err := queue.PublishFIFO(app.Queue, queue.ConvertQueue, data); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to enqueue job"})
	}

	return c.JSON(http.StatusAccepted, map[string]string{"correlation_id": correlationID})
}

// CreateMergeJobHandler enqueues a merge job rebuilding the universe archive.
// Flattening and normalization default to on.
func CreateMergeJobHandler(c echo.Context) error {
	type createMergeJobParams struct {
		Root      string `json:"root"`
		Output    string `json:"output"`
		Flatten   *bool  `json:"flatten"`
		Normalize *bool  `json:"normalize"`
	}

	params := new(createMergeJobParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	root := params.Root
	if root == "" {
		root = app.ArchiveRoot
	}
	flatten := params.Flatten == nil || *params.Flatten
	normalize := params.Normalize == nil || *params.Normalize

	correlationID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create job ID"})
	}

	msg := queue.MergeJobMsg{
		Root:          root,
		Output:        params.Output,
		Flatten:       flatten,
		Normalize:     normalize,
		CorrelationID: correlationID,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to encode job"})
	}
	if err := queue.PublishFIFO(app.Queue, queue.MergeQueue, data); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to enqueue job"})
	}

	return c.JSON(http.StatusAccepted, map[string]string{"correlation_id": correlationID})
}
