package controllers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/blogem/proof-calc/formatter"
	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/services"
	"github.com/blogem/proof-calc/userctx"
)

// CalcController handles the calculator endpoints
type CalcController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewCalcController creates a new calculator controller
func NewCalcController(services *services.Services, logger *zap.Logger) *CalcController {
	return &CalcController{
		services: services,
		logger:   logger,
	}
}

// TopResponse is the body of a successful top calculation. The unrounded fields
// keep the names the browser client reads.
type TopResponse struct {
	OK        bool              `json:"ok"`
	PgConv    float64           `json:"pgConv"`
	SecondH2O float64           `json:"secondH2O"`
	NewWeight float64           `json:"newWeight"`
	Display   formatter.Display `json:"display"`
	Entry     *models.LogEntry  `json:"entry"`
}

// BottomResponse is the body of a successful bottom calculation
type BottomResponse struct {
	OK       bool              `json:"ok"`
	PgConv   float64           `json:"pgConv"`
	FirstH2O float64           `json:"firstH2O"`
	Display  formatter.Display `json:"display"`
	Entry    *models.LogEntry  `json:"entry"`
}

// VariableResponse is the body of a successful variable calculation
type VariableResponse struct {
	OK            bool              `json:"ok"`
	CurrentPgConv float64           `json:"currentPgConv"`
	TargetPgConv  float64           `json:"targetPgConv"`
	WaterToAdd    float64           `json:"waterToAdd"`
	NewWeight     float64           `json:"newWeight"`
	Display       formatter.Display `json:"display"`
	Entry         *models.LogEntry  `json:"entry"`
}

// Top handles POST /calc/top
func (c *CalcController) Top(w http.ResponseWriter, r *http.Request) {
	var form models.TopForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	calc, err := c.services.Calculation.CalculateTop(r.Context(), userctx.GetOperatorID(r.Context()), &form)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, TopResponse{
		OK:        true,
		PgConv:    calc.Result.ConversionFactor,
		SecondH2O: calc.Result.WaterToAdd,
		NewWeight: *calc.Result.NewWeight,
		Display:   calc.Display,
		Entry:     calc.Entry,
	})
}

// Bottom handles POST /calc/bottom. distPF is read from its JSON text, so a
// number like 90 (what a browser sends for "90.0") fails the one-decimal rule;
// clients keep the trailing zero by sending a string.
func (c *CalcController) Bottom(w http.ResponseWriter, r *http.Request) {
	var form models.BottomForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	calc, err := c.services.Calculation.CalculateBottom(r.Context(), userctx.GetOperatorID(r.Context()), &form)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, BottomResponse{
		OK:       true,
		PgConv:   calc.Result.ConversionFactor,
		FirstH2O: calc.Result.WaterToAdd,
		Display:  calc.Display,
		Entry:    calc.Entry,
	})
}

// Variable handles POST /calc/variable
func (c *CalcController) Variable(w http.ResponseWriter, r *http.Request) {
	var form models.VariableForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	calc, err := c.services.Calculation.CalculateVariable(r.Context(), userctx.GetOperatorID(r.Context()), &form)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, VariableResponse{
		OK:            true,
		CurrentPgConv: calc.Result.ConversionFactor,
		TargetPgConv:  *calc.Result.TargetConversionFactor,
		WaterToAdd:    calc.Result.WaterToAdd,
		NewWeight:     *calc.Result.NewWeight,
		Display:       calc.Display,
		Entry:         calc.Entry,
	})
}
