package delivery

import (
	"ohcm/config"
	"ohcm/domain"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Username string `json:"username" valid:"required~Username is required"`
	Password string `json:"password" valid:"required~Password is required"`
}

type authHandler struct {
	uc domain.UserUseCase
}

func NewAuthHandlerDeploy(app *fiber.App, useCase domain.UserUseCase) {
	handler := &authHandler{
		uc: useCase,
	}

	route := app.Group("/auth")
	route.Post("/login", handler.Login)
}

func (ah *authHandler) Login(c *fiber.Ctx) error {
	var payload loginRequest
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(nil, fiber.StatusBadRequest, "Login")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(&payload); err != nil {
		config.PrintLogInfo(&payload.Username, fiber.StatusBadRequest, "Login")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid login payload",
		})
	}

	token, err := ah.uc.Login(c.Context(), payload.Username, payload.Password)
	if err != nil {
		config.PrintLogInfo(&payload.Username, fiber.StatusUnauthorized, "Login")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Login failed",
		})
	}

	config.PrintLogInfo(&payload.Username, fiber.StatusOK, "Login")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}
