package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"brokerdex/internal/usecase"
	"brokerdex/pkg/response"
	"brokerdex/pkg/utils"
)

type AgentHandler struct {
	agentUseCase *usecase.AgentUseCase
}

func NewAgentHandler(agentUseCase *usecase.AgentUseCase) *AgentHandler {
	return &AgentHandler{agentUseCase: agentUseCase}
}

func (h *AgentHandler) ListAgents(c echo.Context) error {
	params := utils.GetPaginationParams(c, 10)

	agents, total, err := h.agentUseCase.ListAgents(c.Request().Context(), usecase.ListAgentsInput{
		Page:     params.Page,
		PageSize: params.PageSize,
		Query:    c.QueryParam("query"),
		City:     c.QueryParam("city"),
		Port:     c.QueryParam("port"),
		Service:  c.QueryParam("service"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, agents, params.Page, params.PageSize, total)
}

func (h *AgentHandler) GetAgent(c echo.Context) error {
	id := c.Param("id")
	reviewsPage, _ := strconv.Atoi(c.QueryParam("reviewsPage"))
	reviewsPageSize, _ := strconv.Atoi(c.QueryParam("reviewsPageSize"))

	detail, err := h.agentUseCase.GetAgentByID(c.Request().Context(), id, reviewsPage, reviewsPageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

func (h *AgentHandler) GetDashboard(c echo.Context) error {
	dashboard, err := h.agentUseCase.GetAgentDashboard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dashboard)
}
