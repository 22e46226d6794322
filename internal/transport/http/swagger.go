package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

// RegisterSwagger serves the API reference under /swagger. The YAML spec in
// docs/ is converted to JSON on every request so edits show up without a
// restart.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		data, err := os.ReadFile(filepath.Join("docs", "swagger.yaml"))
		if err != nil {
			c.Logger().Errorf("load swagger spec: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		jsonSpec, err := yaml.YAMLToJSON(data)
		if err != nil {
			c.Logger().Errorf("convert swagger spec: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to parse swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
