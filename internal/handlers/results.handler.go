package handlers

import (
	"bytes"
	"server/internal/app"
	resultsController "server/internal/controllers/results"
	"server/internal/logger"
	"server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ResultsHandler struct {
	Handler
	controller resultsController.ResultsController
}

func NewResultsHandler(app app.App, router fiber.Router) *ResultsHandler {
	log := logger.New("handlers").File("results_handler")
	return &ResultsHandler{
		controller: *app.ResultsController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ResultsHandler) Register() {
	results := h.router.Group("/results")
	results.Get("/", h.overall)
	results.Get("/sections", h.bySections)
	results.Get("/turnout", h.turnout)

	results.Get("/summary", h.middleware.RequireAdmin, h.summary)
	results.Get("/export.csv", h.middleware.RequireAdmin, h.exportCSV)
}

// overall is the public landing view: 1-decimal percentages, overall ranking
// and the winner/tie flag.
func (h *ResultsHandler) overall(c *fiber.Ctx) error {
	log := h.log.Function("overall")

	rows, total, isTie, err := h.controller.Overall(c.Context(), resultsController.PublicPrecision)
	if err != nil {
		log.Er("failed to compute overall results", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to compute results"})
	}

	response := fiber.Map{
		"message":    "success",
		"candidates": rows,
		"totalVotes": total,
		"isTie":      isTie,
	}
	if len(rows) > 0 && total > 0 && !isTie {
		response["winner"] = rows[0]
	}

	return c.JSON(response)
}

func (h *ResultsHandler) bySections(c *fiber.Ctx) error {
	log := h.log.Function("bySections")

	sections, err := h.controller.ByPosition(c.Context())
	if err != nil {
		log.Er("failed to compute section results", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to compute results"})
	}

	return c.JSON(fiber.Map{"message": "success", "sections": sections})
}

func (h *ResultsHandler) turnout(c *fiber.Ctx) error {
	log := h.log.Function("turnout")

	report, err := h.controller.Turnout(c.Context())
	if err != nil {
		log.Er("failed to compute turnout", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to compute turnout"})
	}

	return c.JSON(fiber.Map{"message": "success", "turnout": report})
}

func (h *ResultsHandler) summary(c *fiber.Ctx) error {
	log := h.log.Function("summary")

	summary, err := h.controller.Summary(c.Context())
	if err != nil {
		log.Er("failed to build results summary", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to build summary"})
	}

	return c.JSON(fiber.Map{"message": "success", "summary": summary})
}

func (h *ResultsHandler) exportCSV(c *fiber.Ctx) error {
	log := h.log.Function("exportCSV")

	summary, err := h.controller.Summary(c.Context())
	if err != nil {
		log.Er("failed to build results summary", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to build summary"})
	}

	var buf bytes.Buffer
	if err := utils.WriteResultsCSV(&buf, summary); err != nil {
		log.Er("failed to render results csv", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to render csv"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="results.csv"`)
	return c.Send(buf.Bytes())
}
