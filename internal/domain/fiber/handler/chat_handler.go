package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kodamai/recruitr/internal/dto"
	"github.com/kodamai/recruitr/internal/middleware"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/usecase"
	"github.com/kodamai/recruitr/internal/util"
)

type ChatHandler struct {
	uc       *usecase.ChatUsecase
	auth     *usecase.AuthUsecase
	userRepo usecase.UserStore
}

func NewChatHandler(uc *usecase.ChatUsecase, auth *usecase.AuthUsecase, userRepo usecase.UserStore) *ChatHandler {
	return &ChatHandler{uc: uc, auth: auth, userRepo: userRepo}
}

func (h *ChatHandler) RegisterRoutes(app *fiber.App) {
	chat := app.Group("/chat", middleware.RequireAuth(h.auth, h.userRepo))
	chat.Post("/query", h.Query)
}

func (h *ChatHandler) Query(c *fiber.Ctx) error {
	var req dto.ChatQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	user := middleware.CurrentUser(c)
	if user.Role != model.RoleHiringManager {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Query answered",
			Data: dto.ChatAnswerResponse{
				Answer: "Only hiring managers can use the recruitment assistant.",
			},
		})
	}

	answer, err := h.uc.Answer(user.ID, req.Query)
	if err != nil {
		return respondError(c, err, "failed to answer query")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Query answered",
		Data:    dto.ChatAnswerResponse{Answer: answer},
	})
}
