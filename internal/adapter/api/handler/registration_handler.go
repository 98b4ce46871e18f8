package handler

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/usecase"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/response"
)

type RegistrationHandler struct {
	registrationUseCase *usecase.RegistrationUseCase
}

func NewRegistrationHandler(registrationUseCase *usecase.RegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{registrationUseCase: registrationUseCase}
}

// Register accepts the multipart registration form. Field names match the
// public intake contract, including the repeatable Attachments file field and
// the optional PhonesJson blob.
func (h *RegistrationHandler) Register(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid multipart form", err))
	}

	input := usecase.SubmitRegistrationInput{
		FullName:    formValue(c, "FullName"),
		CompanyName: formValue(c, "CompanyName"),
		LegalType:   entity.LegalType(formValue(c, "LegalType")),
		Mobile:      formValue(c, "Mobile"),
		OfficePhone: formValue(c, "OfficePhone"),
		HomePhone:   formValue(c, "HomePhone"),
		Address:     formValue(c, "Address"),
		Customs:     formValues(form, "Customs"),
		GoodsTypes:  formValues(form, "GoodsTypes"),
		Description: formValue(c, "Description"),
		PhonesJSON:  formValue(c, "PhonesJson"),
	}

	if raw := formValue(c, "YearsOfExperience"); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, apperrors.BadRequest("YearsOfExperience must be a number", err))
		}
		input.YearsOfExperience = years
	}

	input.Latitude, err = parseCoordinate(formValue(c, "Latitude"), "Latitude")
	if err != nil {
		return response.Error(c, err)
	}
	input.Longitude, err = parseCoordinate(formValue(c, "Longitude"), "Longitude")
	if err != nil {
		return response.Error(c, err)
	}

	for _, fh := range form.File["Attachments"] {
		input.Attachments = append(input.Attachments, toUpload(fh))
	}

	result, err := h.registrationUseCase.SubmitRegistration(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result, "Registration request submitted")
}

func formValue(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}

func formValues(form *multipart.Form, name string) []string {
	var values []string
	for _, v := range form.Value[name] {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		values = append(values, v)
	}
	return values
}

func parseCoordinate(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.BadRequest(name+" must be a number", err)
	}
	return &v, nil
}

func toUpload(fh *multipart.FileHeader) usecase.AttachmentUpload {
	return usecase.AttachmentUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
