package handler

import (
	"brokerdex/internal/usecase"
)

var (
	authHandler         *AuthHandler
	agentHandler        *AgentHandler
	reviewHandler       *ReviewHandler
	registrationHandler *RegistrationHandler
	adminHandler        *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	agentUseCase *usecase.AgentUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	registrationUseCase *usecase.RegistrationUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	agentHandler = NewAgentHandler(agentUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	registrationHandler = NewRegistrationHandler(registrationUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetAgentHandler() *AgentHandler {
	return agentHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetRegistrationHandler() *RegistrationHandler {
	return registrationHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
