package payouts

import (
	"context"
	"errors"
	"time"

	"leaderboard-payouts/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for payout runs.
type Handler struct {
	service    *Service
	logger     *zap.Logger
	runTimeout time.Duration
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger, runTimeout time.Duration) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger, runTimeout: runTimeout}
}

// RegisterRoutes registers the payout routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/payouts")
	group.Post("/run", h.HandleRun)
	group.Get("/sources", h.HandleSources)
	group.Get("/lookup/:username", h.HandleLookup)
	group.Get("/runs", h.HandleRuns)
}

// HandleRun triggers a payout run.
// @Summary Run Payouts
// @Description Fetches every configured leaderboard, writes the per-source CSV reports and the unmatched workbook. Concurrent requests share one run.
// @Tags payouts
// @Produce json
// @Success 200 {object} RunReport
// @Failure 504 {object} map[string]interface{} "Run timed out"
// @Router /payouts/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Triggering payout run")

	ctx := c.UserContext()
	if h.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.runTimeout)
		defer cancel()
	}

	rep, err := h.service.Run(ctx)
	if err != nil {
		l.Warn("Payout run cut short", zap.Error(err))
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error":  err.Error(),
			"report": rep,
		})
	}
	return c.JSON(rep)
}

// HandleSources lists the configured sources.
// @Summary List Sources
// @Tags payouts
// @Produce json
// @Success 200 {array} Source
// @Router /payouts/sources [get]
func (h *Handler) HandleSources(c *fiber.Ctx) error {
	return c.JSON(h.service.Sources())
}

// HandleLookup resolves one leaderboard username.
// @Summary Lookup Username
// @Description Resolves a username against the mapping workbook, ignoring case.
// @Tags payouts
// @Produce json
// @Param username path string true "Leaderboard username"
// @Success 200 {object} LookupResult
// @Failure 503 {object} map[string]string "Mapping unavailable"
// @Router /payouts/lookup/{username} [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	username := c.Params("username")
	res, err := h.service.Lookup(c.UserContext(), username)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Mapping lookup failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// HandleRuns lists recent runs.
// @Summary Recent Runs
// @Tags payouts
// @Produce json
// @Param limit query int false "Maximum number of runs" default(10)
// @Success 200 {array} history.Run
// @Failure 404 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /payouts/runs [get]
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	runs, err := h.service.Recent(c.UserContext(), c.QueryInt("limit", 10))
	if errors.Is(err, ErrHistoryDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}
