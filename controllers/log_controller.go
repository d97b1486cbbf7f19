package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/blogem/proof-calc/formatter"
	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/services"
	"github.com/blogem/proof-calc/userctx"
)

// LogController handles the calculation log endpoints
type LogController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewLogController creates a new log controller
func NewLogController(services *services.Services, logger *zap.Logger) *LogController {
	return &LogController{
		services: services,
		logger:   logger,
	}
}

// LogEntryView is a log entry together with its rendered outputs
type LogEntryView struct {
	models.LogEntry
	Display formatter.Display `json:"display"`
}

// LogListResponse is the body of GET /log
type LogListResponse struct {
	OK      bool           `json:"ok"`
	Entries []LogEntryView `json:"entries"`
}

// LogClearResponse is the body of DELETE /log
type LogClearResponse struct {
	OK      bool  `json:"ok"`
	Cleared int64 `json:"cleared"`
}

// List handles GET /log?limit=n&order=newest|oldest. Only the caller's own
// entries are listed.
func (c *LogController) List(w http.ResponseWriter, r *http.Request) {
	if err := checkScope(r); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	query := models.LogQuery{
		OperatorID:  userctx.GetOperatorID(r.Context()),
		NewestFirst: true,
		Limit:       models.DefaultLogLimit,
	}

	switch order := r.URL.Query().Get("order"); order {
	case "", "newest":
	case "oldest":
		query.NewestFirst = false
	default:
		writeBadRequest(w, "order must be newest or oldest, got "+strconv.Quote(order))
		return
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeBadRequest(w, "limit must be a non-negative integer, got "+strconv.Quote(raw))
			return
		}
		query.Limit = limit
	}

	entries, err := c.services.Log.List(r.Context(), query)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	views := make([]LogEntryView, len(entries))
	for i := range entries {
		views[i] = LogEntryView{LogEntry: entries[i], Display: formatter.RenderEntry(&entries[i])}
	}
	writeJSON(w, http.StatusOK, LogListResponse{OK: true, Entries: views})
}

// Clear handles DELETE /log. Only the caller's own entries are removed.
func (c *LogController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := checkScope(r); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	operatorID := userctx.GetOperatorID(r.Context())
	cleared, err := c.services.Log.Clear(r.Context(), operatorID, false)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	c.logger.Info("log cleared",
		zap.String("operator_id", operatorID),
		zap.Int64("cleared", cleared),
	)
	writeJSON(w, http.StatusOK, LogClearResponse{OK: true, Cleared: cleared})
}

// checkScope accepts an absent scope or scope=mine. Every operator's log is
// reachable only through the proofcalc log --all command.
func checkScope(r *http.Request) error {
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "mine":
		return nil
	default:
		return fmt.Errorf("scope must be mine, got %q", scope)
	}
}
