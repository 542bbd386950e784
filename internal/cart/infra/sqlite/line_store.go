package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fadhlan/shoply/internal/cart/domain"
)

// LineStore is the sqlite-backed cart table. Rows are keyed by
// (owner_id, product_id); insertion order is rowid order.
type LineStore struct {
	db *sql.DB
}

func NewLineStore(db *sql.DB) *LineStore {
	return &LineStore{db: db}
}

func (s *LineStore) InsertIfAbsent(ctx context.Context, line domain.Line) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO cart_lines (owner_id, product_id, name, unit_price, image_ref, quantity)
		VALUES (?, ?, ?, ?, ?, ?)`,
		line.OwnerID, line.ProductID, line.Name, line.UnitPrice, line.ImageRef, line.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cart line: %w", err)
	}
	return nil
}

func (s *LineStore) IncrementQuantity(ctx context.Context, ownerID, productID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE cart_lines SET quantity = quantity + 1
		WHERE owner_id = ? AND product_id = ?`,
		ownerID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment quantity: %w", err)
	}
	return nil
}

func (s *LineStore) DecrementQuantity(ctx context.Context, ownerID, productID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE cart_lines SET quantity = quantity - 1
		WHERE owner_id = ? AND product_id = ?`,
		ownerID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement quantity: %w", err)
	}
	return nil
}

func (s *LineStore) DeleteLine(ctx context.Context, ownerID, productID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_lines WHERE owner_id = ? AND product_id = ?`,
		ownerID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	return nil
}

func (s *LineStore) SelectAll(ctx context.Context, ownerID string) ([]domain.Line, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT owner_id, product_id, name, unit_price, image_ref, quantity
		FROM cart_lines WHERE owner_id = ? ORDER BY rowid`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.Line
	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.OwnerID, &l.ProductID, &l.Name, &l.UnitPrice, &l.ImageRef, &l.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart lines: %w", err)
	}

	return lines, nil
}

func (s *LineStore) DeleteAll(ctx context.Context, ownerID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE owner_id = ?`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
