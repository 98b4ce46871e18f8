package handler

import (
	"github.com/labstack/echo/v4"

	"brokerdex/internal/usecase"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/response"
	"brokerdex/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) ListAgents(c echo.Context) error {
	params := utils.GetPaginationParams(c, 10)

	agents, total, err := h.adminUseCase.ListAgents(c.Request().Context(), params.Page, params.PageSize, c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, agents, params.Page, params.PageSize, total)
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.adminUseCase.GetStats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

func (h *AdminHandler) ListRegistrations(c echo.Context) error {
	params := utils.GetPaginationParams(c, 10)

	requests, total, err := h.adminUseCase.ListRegistrations(c.Request().Context(), params.Page, params.PageSize, c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, params.Page, params.PageSize, total)
}

func (h *AdminHandler) GetRegistration(c echo.Context) error {
	request, err := h.adminUseCase.GetRegistrationByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *AdminHandler) ApproveRegistration(c echo.Context) error {
	agent, err := h.adminUseCase.ApproveRegistration(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessMessage(c, agent, "Registration approved")
}

func (h *AdminHandler) RejectRegistration(c echo.Context) error {
	reason, err := bindReason(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.adminUseCase.RejectRegistration(c.Request().Context(), c.Param("id"), reason); err != nil {
		return response.Error(c, err)
	}

	return response.SuccessMessage(c, nil, "Registration rejected")
}

func (h *AdminHandler) ApproveAgent(c echo.Context) error {
	if err := h.adminUseCase.ApproveAgent(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.SuccessMessage(c, nil, "Agent approved")
}

func (h *AdminHandler) RejectAgent(c echo.Context) error {
	reason, err := bindReason(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.adminUseCase.RejectAgent(c.Request().Context(), c.Param("id"), reason); err != nil {
		return response.Error(c, err)
	}

	return response.SuccessMessage(c, nil, "Agent rejected")
}

// bindReason reads the optional {"reason": "..."} body. An empty body is
// fine; only malformed JSON is rejected.
func bindReason(c echo.Context) (string, error) {
	if c.Request().ContentLength == 0 {
		return "", nil
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return "", apperrors.BadRequest("Invalid request payload", err)
	}
	return req.Reason, nil
}
