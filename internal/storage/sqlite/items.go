package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethan-wit/moving-items/internal/models"
	"github.com/ethan-wit/moving-items/internal/storage"
)

const selectUserItems = `
	SELECT l.USERS_ITEMS_ID, l.USER_ID, l.ITEM_ID, r.ITEM, l.DESIRED_QUANTITY, l.QUANTITY
	FROM users_items l
	INNER JOIN items r ON l.ITEM_ID = r.ITEM_ID
`

// GetItem resolves an item name to its items row.
func (s *SQLiteStore) GetItem(ctx context.Context, name string) (*models.Item, error) {
	id, err := itemID(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	return &models.Item{ID: id, Name: name}, nil
}

func itemID(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, "SELECT ITEM_ID FROM items WHERE ITEM = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", storage.ErrItemNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get item id: %w", err)
	}
	return id, nil
}

// CreateUserItem inserts the item name if it is new, then records the user's
// quantities for it. A second add of the same name for the same user
// overwrites the quantities instead of adding a row.
func (s *SQLiteStore) CreateUserItem(ctx context.Context, userID int64, name string, desired, quantity int) (*models.UserItem, error) {
	userItem := &models.UserItem{
		UserID:          userID,
		ItemName:        name,
		DesiredQuantity: desired,
		Quantity:        quantity,
	}

	err := s.withCommit(ctx, func(tx *sql.Tx) error {
		// Existing names keep their id
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO items (ITEM) VALUES (?) ON CONFLICT(ITEM) DO NOTHING",
			name,
		); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		id, err := itemID(ctx, tx, name)
		if err != nil {
			return err
		}
		userItem.ItemID = id

		_, err = tx.ExecContext(ctx, `
			INSERT INTO users_items (USER_ID, ITEM_ID, DESIRED_QUANTITY, QUANTITY)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(USER_ID, ITEM_ID) DO UPDATE SET
				DESIRED_QUANTITY = excluded.DESIRED_QUANTITY,
				QUANTITY = excluded.QUANTITY`,
			userID, id, desired, quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user item: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			"SELECT USERS_ITEMS_ID FROM users_items WHERE USER_ID = ? AND ITEM_ID = ?",
			userID, id,
		).Scan(&userItem.ID)
		if err != nil {
			return fmt.Errorf("failed to get user item id: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return userItem, nil
}

// ListUserItems returns all of the user's items joined with their names.
func (s *SQLiteStore) ListUserItems(ctx context.Context, userID int64) ([]*models.UserItem, error) {
	rows, err := s.db.QueryContext(ctx,
		selectUserItems+" WHERE l.USER_ID = ? ORDER BY r.ITEM",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user items: %w", err)
	}
	defer rows.Close()

	var userItems []*models.UserItem
	for rows.Next() {
		ui, err := scanUserItem(rows)
		if err != nil {
			return nil, err
		}
		userItems = append(userItems, ui)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user items: %w", err)
	}

	return userItems, nil
}

// GetUserItem returns the user's row for the named item.
func (s *SQLiteStore) GetUserItem(ctx context.Context, userID int64, name string) (*models.UserItem, error) {
	id, err := itemID(ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		selectUserItems+" WHERE l.USER_ID = ? AND l.ITEM_ID = ?",
		userID, id,
	)
	ui, err := scanUserItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrItemNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	return ui, nil
}

// UpdateDesiredQuantity sets the desired quantity of one of the user's items.
func (s *SQLiteStore) UpdateDesiredQuantity(ctx context.Context, userID int64, name string, desired int) error {
	return s.updateUserItem(ctx, "DESIRED_QUANTITY", userID, name, desired)
}

// UpdateQuantity sets the held quantity of one of the user's items.
func (s *SQLiteStore) UpdateQuantity(ctx context.Context, userID int64, name string, quantity int) error {
	return s.updateUserItem(ctx, "QUANTITY", userID, name, quantity)
}

// updateUserItem sets column on the (user, item) row. column is always one of
// the two constants above, never operator input.
func (s *SQLiteStore) updateUserItem(ctx context.Context, column string, userID int64, name string, value int) error {
	return s.withCommit(ctx, func(tx *sql.Tx) error {
		id, err := itemID(ctx, tx, name)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"UPDATE users_items SET "+column+" = ? WHERE USER_ID = ? AND ITEM_ID = ?",
			value, userID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", column, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", storage.ErrItemNotFound, name)
		}

		return nil
	})
}

// ClearQuantities sets QUANTITY to zero for every row the user owns.
func (s *SQLiteStore) ClearQuantities(ctx context.Context, userID int64) (int64, error) {
	var cleared int64
	err := s.withCommit(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE users_items SET QUANTITY = 0 WHERE USER_ID = ?", userID)
		if err != nil {
			return fmt.Errorf("failed to clear quantities: %w", err)
		}
		cleared, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}

// DeleteUserItem removes the user's row for the named item.
// The items row stays, since other users may reference it.
func (s *SQLiteStore) DeleteUserItem(ctx context.Context, userID int64, name string) error {
	return s.withCommit(ctx, func(tx *sql.Tx) error {
		id, err := itemID(ctx, tx, name)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM users_items WHERE USER_ID = ? AND ITEM_ID = ?",
			userID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to delete user item: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", storage.ErrItemNotFound, name)
		}

		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserItem(row rowScanner) (*models.UserItem, error) {
	ui := &models.UserItem{}
	err := row.Scan(&ui.ID, &ui.UserID, &ui.ItemID, &ui.ItemName, &ui.DesiredQuantity, &ui.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user item: %w", err)
	}
	return ui, nil
}
