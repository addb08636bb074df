package handlers

import (
	"errors"
	"net/http"

	"tariff-engine/internal/api/models"
	"tariff-engine/internal/billing"
	"tariff-engine/internal/meterdata"
	"tariff-engine/internal/tariff"

	"github.com/gin-gonic/gin"
)

// CalculateHandler handles cost calculation requests
type CalculateHandler struct {
	engine *billing.Engine
}

// NewCalculateHandler creates a new calculate handler
func NewCalculateHandler() *CalculateHandler {
	return &CalculateHandler{engine: billing.New()}
}

// Calculate handles POST /api/v1/calculate
func (h *CalculateHandler) Calculate(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	trf, err := tariff.Parse(req.Tariff)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_TARIFF",
				Message: err.Error(),
			},
		})
		return
	}

	readings := make([]meterdata.Reading, 0, len(req.Readings))
	for _, r := range req.Readings {
		readings = append(readings, meterdata.Reading{Timestamp: r.Timestamp.UTC(), Values: r.Values})
	}
	series := meterdata.New(readings)

	opts := billing.Options{Resolution: billing.Resolution(req.Options.Resolution)}
	if req.Options.Start != nil {
		opts.Start = req.Options.Start.UTC()
	}
	if req.Options.End != nil {
		opts.End = req.Options.End.UTC()
	}

	result, err := h.engine.Apply(trf, series, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errorDetail(err)})
		return
	}

	c.JSON(http.StatusOK, models.CalculateResponse{
		Status: "completed",
		Cost:   result.Cost,
		Ledger: result.Ledger,
	})
}

// errorDetail maps engine error types onto stable API error codes.
func errorDetail(err error) models.ErrorDetail {
	var incompatible *billing.IncompatibleRequestError
	if errors.As(err, &incompatible) {
		return models.ErrorDetail{Code: "INCOMPATIBLE_REQUEST", Message: err.Error()}
	}
	var unsupported *billing.UnsupportedResolutionError
	if errors.As(err, &unsupported) {
		return models.ErrorDetail{Code: "UNSUPPORTED_RESOLUTION", Message: err.Error()}
	}
	var validation *tariff.ValidationError
	if errors.As(err, &validation) {
		return models.ErrorDetail{Code: "INVALID_TARIFF", Message: err.Error()}
	}
	return models.ErrorDetail{Code: "CALCULATION_ERROR", Message: err.Error()}
}
