package handlers

import (
	"fmt"

	"github.com/nitishagar/bharatdcim/internal/api/models"
	"github.com/nitishagar/bharatdcim/internal/billing"

	"github.com/gin-gonic/gin"
)

// Error codes returned in models.ErrorResponse.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidProfile = "INVALID_PROFILE"
	CodeInvalidHour    = "INVALID_HOUR"
	CodeNonFinite      = "NON_FINITE_BILL"
	CodeNotFound       = "NOT_FOUND"
	CodeNoLedger       = "NO_LEDGER"
	CodeUnknownStates  = "UNKNOWN_STATES"
	CodeScenarioDir    = "SCENARIO_DIR_ERROR"
)

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.NewError(code, message))
}

func abortf(c *gin.Context, status int, code, format string, args ...interface{}) {
	abort(c, status, code, fmt.Sprintf(format, args...))
}

// averagingMode parses an optional averaging mode; "" means the default.
func averagingMode(raw string) (billing.AveragingMode, error) {
	if raw == "" {
		return billing.AveragingSlotCount, nil
	}
	m := billing.AveragingMode(raw)
	if !m.Valid() {
		return "", fmt.Errorf("averaging must be %q or %q, got %q",
			billing.AveragingSlotCount, billing.AveragingDuration, raw)
	}
	return m, nil
}
