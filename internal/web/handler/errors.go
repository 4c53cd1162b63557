package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// SendError writes status with an ErrorBody carrying message.
func SendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorBody{
		StatusCode: status,
		Error:      utils.StatusMessage(status),
		Message:    message,
	})
}

// ErrorHandler renders errors that reach the fiber app as ErrorBody.
// Errors that are no *fiber.Error are logged and hidden behind a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return SendError(c, fe.Code, fe.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")

	return SendError(c, fiber.StatusInternalServerError, "An internal server error occurred")
}
