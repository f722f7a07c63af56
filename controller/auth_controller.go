package controller

import (
	"context"
	"net/http"

	"dashboard/middleware"
	"dashboard/model"
	"dashboard/service"
	"dashboard/validator"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authSvc      service.AuthService
	isProduction bool
}

func NewAuthController(s service.AuthService, isProduction bool) *AuthController {
	return &AuthController{
		authSvc:      s,
		isProduction: isProduction,
	}
}

func (ctrl *AuthController) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Admin login",
		Description: "Issues an HttpOnly session cookie carrying a JWT.",
		Tags:        []string{"Auth"},
	}, ctrl.login)

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/auth/logout",
		Summary:     "Clear the session cookie",
		Tags:        []string{"Auth"},
	}, ctrl.logout)
}

func (ctrl *AuthController) login(ctx context.Context, input *model.LoginRequest) (*model.LoginResponse, error) {
	if err := validator.ValidateLogin(&input.Body); err != nil {
		return nil, huma.Error400BadRequest("Username and password are required")
	}

	token, user, err := ctrl.authSvc.Login(input.Body.Username, input.Body.Password)
	if err != nil {
		log.Warn().Str("username", input.Body.Username).Msg("Failed login attempt")
		return nil, toHumaError(err)
	}

	return &model.LoginResponse{
		SetCookie: middleware.SessionCookie(token, ctrl.isProduction).String(),
		Body: model.Response{
			Success: true,
			Message: "Login successful",
			Data:    user,
		},
	}, nil
}

func (ctrl *AuthController) logout(ctx context.Context, input *struct{}) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{
		SetCookie: middleware.SessionCookie("", ctrl.isProduction).String(),
		Body: model.Response{
			Success: true,
			Message: "Logged out",
		},
	}, nil
}
