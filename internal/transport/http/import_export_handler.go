package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/csvutil"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type ImportExportHandler struct {
	imports      *service.ImportService
	maxFileBytes int64
}

func RegisterImportExportRoutes(e *echo.Echo, auth *service.AuthService, imports *service.ImportService, maxFileBytes int64) {
	h := &ImportExportHandler{imports: imports, maxFileBytes: maxFileBytes}

	g := e.Group("/api/v1", RequireAuth(auth))
	g.POST("/imports/partners", h.ImportPartners)
	g.POST("/imports/leads", h.ImportLeads)
	g.GET("/imports/partners/template", h.PartnerTemplate)
	g.GET("/imports/leads/template", h.LeadTemplate)
	g.GET("/exports/partners", h.ExportPartners)
	g.GET("/exports/leads", h.ExportLeads)
}

func (h *ImportExportHandler) ImportPartners(c echo.Context) error {
	return h.runImport(c, h.imports.ImportPartners)
}

func (h *ImportExportHandler) ImportLeads(c echo.Context) error {
	return h.runImport(c, h.imports.ImportLeads)
}

type importFunc func(ctx context.Context, userID uuid.UUID, filename string, contents []byte) (*service.ImportSummary, []csvutil.ValidationError, error)

// runImport reads the uploaded file and hands it to the given importer. A
// file that fails validation is rejected wholesale with the row errors; an
// accepted file answers with a per-row summary.
func (h *ImportExportHandler) runImport(c echo.Context, importer importFunc) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(`multipart field "file" is required`))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read uploaded file"))
	}
	defer src.Close()

	contents, err := io.ReadAll(io.LimitReader(src, h.maxFileBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read uploaded file"))
	}

	summary, validationErrs, err := importer(c.Request().Context(), user.ID, fileHeader.Filename, contents)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportEmptyFile):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrImportTooLarge),
			errors.Is(err, service.ErrImportRowLimitExceeded):
			return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("import failed"))
		}
	}
	if len(validationErrs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, util.Envelope{
			"error":             "csv validation failed",
			"validation_errors": validationErrs,
		})
	}
	return c.JSON(http.StatusOK, util.Data("summary", summary))
}

func (h *ImportExportHandler) ExportPartners(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	filename, contents, err := h.imports.ExportPartners(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to export partners"))
	}
	return writeCSV(c, filename, contents)
}

func (h *ImportExportHandler) ExportLeads(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}
	filename, contents, err := h.imports.ExportLeads(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to export leads"))
	}
	return writeCSV(c, filename, contents)
}

func (h *ImportExportHandler) PartnerTemplate(c echo.Context) error {
	return writeCSV(c, "sample-partners.csv", csvutil.SamplePartnersCSV())
}

func (h *ImportExportHandler) LeadTemplate(c echo.Context) error {
	return writeCSV(c, "sample-leads.csv", csvutil.SampleLeadsCSV())
}

func writeCSV(c echo.Context, filename, contents string) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(contents))
}
