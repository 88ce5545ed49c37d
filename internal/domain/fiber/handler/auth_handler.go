package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kodamai/recruitr/internal/dto"
	"github.com/kodamai/recruitr/internal/middleware"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/usecase"
	"github.com/kodamai/recruitr/internal/util"
)

type AuthHandler struct {
	uc       *usecase.AuthUsecase
	userRepo usecase.UserStore
}

func NewAuthHandler(uc *usecase.AuthUsecase, userRepo usecase.UserStore) *AuthHandler {
	return &AuthHandler{uc: uc, userRepo: userRepo}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/token", h.Login)
	auth.Get("/me", middleware.RequireAuth(h.uc, h.userRepo), h.Me)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Email == "" || req.FullName == "" || req.Password == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "email, full_name and password are required",
		}, nil)
	}

	user, err := h.uc.Register(req.Email, req.FullName, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Email already registered",
			}, nil)
		}
		return respondError(c, err, "failed to register user")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "User registered",
		Data:    toUserDTO(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	token, _, err := h.uc.Login(req.Email, req.Password)
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: "Incorrect email or password",
		}, nil)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Login successful",
		Data:    dto.TokenResponse{AccessToken: token, TokenType: "bearer"},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Current user",
		Data:    toUserDTO(user),
	})
}

func toUserDTO(user *model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}
