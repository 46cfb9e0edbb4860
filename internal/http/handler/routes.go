package handler

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docanalyzer/internal/analyze"
	"docanalyzer/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	app.Get("/", Index())

	// Analysis pipeline
	app.Post("/upload", UploadDocument(docSvc))
	app.Post("/payment/success", PaymentSuccess(docSvc))

	// Document read/delete surface
	app.Get("/documents", ListDocuments(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))

	// Health and docs
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", SwaggerUI())
}

// Index serves the upload page shell. The page itself is a thin static
// client; all state lives behind the JSON API.
func Index() fiber.Handler {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Document Analyzer</title>
</head>
<body>
  <h1>Document Analyzer</h1>
  <p>POST a PDF or DOCX file to <code>/upload</code> (multipart field <code>file</code>),
  complete the payment with the returned client secret, then POST
  <code>/payment/success</code> to receive the analysis.</p>
</body>
</html>`
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(html)
	}
}

// SwaggerUI serves a minimal swagger-ui page backed by /openapi.yaml.
func SwaggerUI() fiber.Handler {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(html)
	}
}

// UploadDocument accepts a multipart upload (field "file"), runs the upload
// half of the pipeline and returns the payment details for the analysis fee.
// An "analysis_options" form field is tolerated but ignored; the client sends
// the effective options again when confirming the payment.
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, msgNoFileProvided)
		}
		if strings.TrimSpace(fh.Filename) == "" {
			return writeError(c, fiber.StatusBadRequest, msgNoFileSelected)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, msgNoFileProvided)
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := docSvc.SubmitUpload(c.UserContext(), f, fh.Filename, ct)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(res)
	}
}

// paymentSuccessRequest is the confirmation body sent by the client once
// Stripe reports the payment as complete.
type paymentSuccessRequest struct {
	PaymentIntentID string          `json:"payment_intent_id"`
	DocumentID      string          `json:"document_id"`
	AnalysisOptions analyze.Options `json:"analysis_options"`
}

type paymentSuccessResponse struct {
	Success  bool            `json:"success"`
	Analysis *analyze.Result `json:"analysis"`
}

// PaymentSuccess verifies the payment intent and, once settled, runs the
// analysis and returns the generated summary.
func PaymentSuccess(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req paymentSuccessRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, msgMissingPaymentArgs)
		}
		if req.PaymentIntentID == "" || req.DocumentID == "" {
			return writeError(c, fiber.StatusBadRequest, msgMissingPaymentArgs)
		}

		result, err := docSvc.ConfirmPayment(c.UserContext(), req.PaymentIntentID, req.DocumentID, req.AnalysisOptions)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(paymentSuccessResponse{
			Success:  true,
			Analysis: result,
		})
	}
}

// ListDocuments returns documents with limit/offset pagination.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid offset")
		}

		res, err := docSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetDocument returns a single document, including its stored metadata and
// analysis summary when present.
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document from storage and the database.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
