package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS receipts (
		id           CHAR(36) PRIMARY KEY,
		subtotal     DECIMAL(14,2) NOT NULL,
		shipping_fee DECIMAL(14,2) NOT NULL,
		total        DECIMAL(14,2) NOT NULL,
		balance      DECIMAL(14,2) NOT NULL,
		completed_at DATETIME(6)   NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS receipt_lines (
		receipt_id CHAR(36)      NOT NULL,
		position   INT           NOT NULL,
		name       VARCHAR(255)  NOT NULL,
		quantity   INT           NOT NULL,
		unit_price DECIMAL(14,2) NOT NULL,
		line_total DECIMAL(14,2) NOT NULL,
		PRIMARY KEY (receipt_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS shipment_lines (
		receipt_id  CHAR(36)      NOT NULL,
		position    INT           NOT NULL,
		name        VARCHAR(255)  NOT NULL,
		unit_weight DECIMAL(10,3) NOT NULL,
		quantity    INT           NOT NULL,
		PRIMARY KEY (receipt_id, position)
	)`,
}

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) SaveReceipt(ctx context.Context, result domain.CheckoutResult) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (id, subtotal, shipping_fee, total, balance, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		result.ID, result.Subtotal, result.ShippingFee, result.Total, result.Balance, result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}

	for i, line := range result.Receipt {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipt_lines (receipt_id, position, name, quantity, unit_price, line_total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			result.ID, i, line.Name, line.Quantity, line.UnitPrice, line.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert receipt line: %w", err)
		}
	}

	for i, entry := range result.Manifest {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO shipment_lines (receipt_id, position, name, unit_weight, quantity)
			VALUES (?, ?, ?, ?, ?)`,
			result.ID, i, entry.Name, entry.UnitWeight, entry.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert shipment line: %w", err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetReceipt(ctx context.Context, id string) (*domain.CheckoutResult, error) {
	var r domain.CheckoutResult
	err := m.db.QueryRowContext(ctx, `
		SELECT id, subtotal, shipping_fee, total, balance, completed_at
		FROM receipts WHERE id = ?`, id,
	).Scan(&r.ID, &r.Subtotal, &r.ShippingFee, &r.Total, &r.Balance, &r.CompletedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query receipt: %w", err)
	}

	lines, err := m.db.QueryContext(ctx, `
		SELECT name, quantity, unit_price, line_total
		FROM receipt_lines WHERE receipt_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query receipt lines: %w", err)
	}
	defer lines.Close()

	for lines.Next() {
		var l domain.ReceiptLine
		if err := lines.Scan(&l.Name, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		r.Receipt = append(r.Receipt, l)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipt lines: %w", err)
	}

	shipments, err := m.db.QueryContext(ctx, `
		SELECT name, unit_weight, quantity
		FROM shipment_lines WHERE receipt_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query shipment lines: %w", err)
	}
	defer shipments.Close()

	for shipments.Next() {
		var e domain.ManifestEntry
		if err := shipments.Scan(&e.Name, &e.UnitWeight, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan shipment line: %w", err)
		}
		r.Manifest = append(r.Manifest, e)
	}
	if err := shipments.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipment lines: %w", err)
	}

	return &r, nil
}
