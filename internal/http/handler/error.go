package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docanalyzer/internal/service"
)

// Client-facing error messages. The frontend matches on these strings, so
// they are part of the wire contract.
const (
	msgNoFileProvided     = "No file provided"
	msgNoFileSelected     = "No file selected"
	msgInvalidFileType    = "Invalid file type. Only PDF and DOCX files are allowed"
	msgMissingPaymentArgs = "Missing payment_intent_id or document_id"
	msgPaymentNotOK       = "Payment not successful"
	msgDocumentNotFound   = "Document not found"
	msgProcessingFailed   = "Error processing file"
)

// errorResponse is the body of every error reply: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Error: message})
}

// serviceError translates service sentinels into HTTP replies. Anything
// unrecognized becomes an opaque 500; internal details never reach clients.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFilenameRequired):
		return writeError(c, fiber.StatusBadRequest, msgNoFileSelected)
	case errors.Is(err, service.ErrInvalidFileType):
		return writeError(c, fiber.StatusBadRequest, msgInvalidFileType)
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, msgMissingPaymentArgs)
	case errors.Is(err, service.ErrPaymentNotSucceeded):
		return writeError(c, fiber.StatusBadRequest, msgPaymentNotOK)
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, msgDocumentNotFound)
	default:
		return writeError(c, fiber.StatusInternalServerError, msgProcessingFailed)
	}
}

// ErrorHandler is the Fiber global error handler. It catches errors that
// escape the route handlers (404s, method mismatches, oversized bodies) and
// keeps the error body shape consistent.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			if status < fiber.StatusInternalServerError {
				message = fiberErr.Message
			}
		}

		return writeError(c, status, message)
	}
}
