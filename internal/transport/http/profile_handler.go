package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/media"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/service"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func RegisterProfileRoutes(e *echo.Echo, auth *service.AuthService, profiles *service.ProfileService) {
	h := &ProfileHandler{profiles: profiles}

	g := e.Group("/api/v1/profile", RequireAuth(auth))
	g.GET("", h.Get)
	g.PUT("", h.Update)
	g.POST("/avatar", h.UploadAvatar)
}

type updateProfileRequest struct {
	FullName     *string `json:"full_name"`
	BusinessName *string `json:"business_name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	Bio          *string `json:"bio"`
	Website      *string `json:"website"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	profile, err := h.profiles.Get(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load profile"))
	}
	return c.JSON(http.StatusOK, util.Data("profile", profile))
}

func (h *ProfileHandler) Update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	profile, err := h.profiles.Update(c.Request().Context(), user.ID, domain.ProfileUpdate{
		FullName:     req.FullName,
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		Bio:          req.Bio,
		Website:      req.Website,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update profile"))
	}
	return c.JSON(http.StatusOK, util.Data("profile", profile))
}

// UploadAvatar accepts a multipart image, resizes it, and stores it in
// object storage. The profile keeps only the resulting URL.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("not authenticated"))
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(`multipart field "avatar" is required`))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read uploaded file"))
	}
	defer src.Close()

	profile, err := h.profiles.UploadAvatar(c.Request().Context(), user.ID, media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
		case errors.Is(err, service.ErrAvatarEmptyUpload):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, media.ErrUnsupportedImage):
			return c.JSON(http.StatusUnsupportedMediaType, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to upload avatar"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("profile", profile))
}
