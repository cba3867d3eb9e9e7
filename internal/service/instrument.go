package service

import (
	"errors"
	"time"

	"github.com/ethan-wit/moving-items/internal/storage"
)

// Operation names used in logs and metrics.
const (
	opCreateItem      = "create_item"
	opListItems       = "view_items"
	opGetItem         = "view_item"
	opUpdateDesired   = "update_desired_quantity"
	opUpdateQuantity  = "update_quantity"
	opClearQuantities = "clear_quantities"
	opDeleteItem      = "delete_item"
	opLogoff          = "log_off"
)

// instrument runs fn and logs the operation, user, session, and duration.
// Errors the operator caused are logged at warn, everything else at error.
func (s *InventoryService) instrument(operation string, fn func() error) error {
	start := time.Now()

	err := fn()

	elapsed := time.Since(start)
	s.metrics.ObserveOperation(operation, err, elapsed)

	duration := elapsed.Milliseconds()
	switch {
	case err == nil:
		s.logger.Info("Operation ok",
			"operation", operation,
			"duration_ms", duration,
		)
	case isOperatorError(err):
		s.logger.Warn("Operation rejected",
			"operation", operation,
			"error", err,
			"duration_ms", duration,
		)
	default:
		s.logger.Error("Operation failed",
			"operation", operation,
			"error", err,
			"duration_ms", duration,
		)
	}

	return err
}

// skipped logs and counts an operation the operator answered without running it.
func (s *InventoryService) skipped(operation, result string) {
	s.metrics.ObserveSkipped(operation, result)
	s.logger.Info("Operation skipped",
		"operation", operation,
		"result", result,
	)
}

func isOperatorError(err error) bool {
	return errors.Is(err, storage.ErrItemNotFound) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidItemName)
}
