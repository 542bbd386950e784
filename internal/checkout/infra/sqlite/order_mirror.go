package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
	"github.com/fadhlan/shoply/internal/checkout/domain"
)

// OrderMirror is the local read-cache of remotely placed orders. Insert
// is idempotent on order id so a saga repair can retry without creating
// duplicates.
type OrderMirror struct {
	db *sql.DB
}

func NewOrderMirror(db *sql.DB) *OrderMirror {
	return &OrderMirror{db: db}
}

func (m *OrderMirror) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (m *OrderMirror) Insert(ctx context.Context, order domain.Order) error {
	return m.execTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO orders (id, owner_id, address, city, postal_code, total, placed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID, order.OwnerID, order.Address, order.City, order.PostalCode,
			order.Total, order.PlacedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read insert result: %w", err)
		}
		if n == 0 {
			// Already mirrored.
			return nil
		}

		for _, line := range order.Lines {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, product_id, name, unit_price, image_ref, quantity)
				VALUES (?, ?, ?, ?, ?, ?)`,
				order.ID, line.ProductID, line.Name, line.UnitPrice, line.ImageRef, line.Quantity,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order item %s: %w", line.ProductID, err)
			}
		}

		return nil
	})
}

func (m *OrderMirror) SelectAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, owner_id, address, city, postal_code, total, placed_at
		FROM orders ORDER BY placed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var placedAt int64
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Address, &o.City, &o.PostalCode, &o.Total, &placedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.PlacedAt = time.UnixMilli(placedAt)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	for i := range orders {
		lines, err := m.selectItems(ctx, orders[i].ID, orders[i].OwnerID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}

	return orders, nil
}

func (m *OrderMirror) selectItems(ctx context.Context, orderID, ownerID string) ([]cartdomain.Line, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT product_id, name, unit_price, image_ref, quantity
		FROM order_items WHERE order_id = ? ORDER BY rowid`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}
	defer rows.Close()

	var lines []cartdomain.Line
	for rows.Next() {
		l := cartdomain.Line{OwnerID: ownerID}
		if err := rows.Scan(&l.ProductID, &l.Name, &l.UnitPrice, &l.ImageRef, &l.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return lines, nil
}
