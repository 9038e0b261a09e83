package routes

import (
	"net/http"

	"github.com/openpathway/pathmerge/pkg/pathway"

	"github.com/labstack/echo/v4"
)

// GetSchemaHandler serves the JSON schema of the record-document wire format.
func GetSchemaHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, pathway.DocumentSchema())
}
