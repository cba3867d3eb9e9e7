package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethan-wit/moving-items/internal/auth"
	"github.com/ethan-wit/moving-items/internal/metrics"
	"github.com/ethan-wit/moving-items/internal/models"
	"github.com/ethan-wit/moving-items/internal/storage"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be zero or more")
	ErrInvalidItemName = errors.New("item name must not be empty")
)

// Confirmation tokens for ClearQuantities.
const (
	ConfirmToken = "yes"
	DeclineToken = "no"
)

// ClearOutcome is the result of a ClearQuantities request.
type ClearOutcome int

const (
	// ClearConfirmed means quantities were set to zero.
	ClearConfirmed ClearOutcome = iota
	// ClearDeclined means the operator answered DeclineToken.
	ClearDeclined
	// ClearInvalid means the answer was neither token. Nothing changed.
	ClearInvalid
)

// InventoryService performs item operations for the user of one session.
type InventoryService struct {
	store   storage.ItemStore
	session *auth.Session
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewInventoryService binds store to the session's user.
func NewInventoryService(store storage.ItemStore, session *auth.Session, recorder *metrics.Recorder, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		store:   store,
		session: session,
		metrics: recorder,
		logger:  logger.With("user_id", session.UserID, "session_id", session.ID),
	}
}

// UserID returns the user every operation is scoped to.
func (s *InventoryService) UserID() int64 {
	return s.session.UserID
}

// CreateItem adds name to the user's list with both quantities.
func (s *InventoryService) CreateItem(ctx context.Context, name string, desired, quantity int) (*models.UserItem, error) {
	var userItem *models.UserItem
	err := s.instrument(opCreateItem, func() error {
		name, err := cleanName(name)
		if err != nil {
			return err
		}
		if err := checkQuantity(desired); err != nil {
			return err
		}
		if err := checkQuantity(quantity); err != nil {
			return err
		}

		userItem, err = s.store.CreateUserItem(ctx, s.session.UserID, name, desired, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return userItem, nil
}

// ListItems returns every item on the user's list.
func (s *InventoryService) ListItems(ctx context.Context) ([]*models.UserItem, error) {
	var userItems []*models.UserItem
	err := s.instrument(opListItems, func() error {
		var err error
		userItems, err = s.store.ListUserItems(ctx, s.session.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return userItems, nil
}

// GetItem returns the user's quantities for one item.
func (s *InventoryService) GetItem(ctx context.Context, name string) (*models.UserItem, error) {
	var userItem *models.UserItem
	err := s.instrument(opGetItem, func() error {
		name, err := cleanName(name)
		if err != nil {
			return err
		}
		userItem, err = s.store.GetUserItem(ctx, s.session.UserID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return userItem, nil
}

// UpdateDesiredQuantity changes only the desired quantity of one item.
func (s *InventoryService) UpdateDesiredQuantity(ctx context.Context, name string, desired int) error {
	return s.instrument(opUpdateDesired, func() error {
		name, err := cleanName(name)
		if err != nil {
			return err
		}
		if err := checkQuantity(desired); err != nil {
			return err
		}
		return s.store.UpdateDesiredQuantity(ctx, s.session.UserID, name, desired)
	})
}

// UpdateQuantity changes only the held quantity of one item.
func (s *InventoryService) UpdateQuantity(ctx context.Context, name string, quantity int) error {
	return s.instrument(opUpdateQuantity, func() error {
		name, err := cleanName(name)
		if err != nil {
			return err
		}
		if err := checkQuantity(quantity); err != nil {
			return err
		}
		return s.store.UpdateQuantity(ctx, s.session.UserID, name, quantity)
	})
}

// ClearQuantities zeroes every held quantity on the user's list, but only
// when confirm is exactly ConfirmToken. It returns the number of rows cleared.
func (s *InventoryService) ClearQuantities(ctx context.Context, confirm string) (ClearOutcome, int64, error) {
	switch confirm {
	case ConfirmToken:
	case DeclineToken:
		s.skipped(opClearQuantities, metrics.ResultDeclined)
		return ClearDeclined, 0, nil
	default:
		s.skipped(opClearQuantities, metrics.ResultInvalid)
		return ClearInvalid, 0, nil
	}

	var cleared int64
	err := s.instrument(opClearQuantities, func() error {
		var err error
		cleared, err = s.store.ClearQuantities(ctx, s.session.UserID)
		return err
	})
	if err != nil {
		return ClearConfirmed, 0, err
	}
	return ClearConfirmed, cleared, nil
}

// DeleteItem removes one item from the user's list.
func (s *InventoryService) DeleteItem(ctx context.Context, name string) error {
	return s.instrument(opDeleteItem, func() error {
		name, err := cleanName(name)
		if err != nil {
			return err
		}
		return s.store.DeleteUserItem(ctx, s.session.UserID, name)
	})
}

// Logoff closes the store. The service must not be used afterwards.
func (s *InventoryService) Logoff(_ context.Context) error {
	return s.instrument(opLogoff, func() error {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
		return nil
	})
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidItemName
	}
	return name, nil
}

func checkQuantity(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	return nil
}
