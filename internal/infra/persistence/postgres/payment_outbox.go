package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
)

// PaymentOutbox stores verified payments whose order update failed. There is
// no background sweep; rows sit here until an operator resolves them through
// the admin API.
type PaymentOutbox struct {
	db *pgxpool.Pool
}

func NewPaymentOutbox(db *pgxpool.Pool) *PaymentOutbox {
	return &PaymentOutbox{db: db}
}

func (o *PaymentOutbox) Record(ctx context.Context, rec dompayment.Unmatched) error {
	_, err := o.db.Exec(ctx, `
        INSERT INTO payment_outbox (order_id, gateway_order_id, gateway_payment_id, signature, reason)
        VALUES ($1, $2, $3, $4, $5)
    `, rec.OrderID, rec.GatewayOrderID, rec.GatewayPaymentID, rec.Signature, rec.Reason)
	return err
}

func (o *PaymentOutbox) ListUnresolved(ctx context.Context, limit int) ([]dompayment.Unmatched, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := o.db.Query(ctx, `
        SELECT id, order_id, gateway_order_id, gateway_payment_id, signature, reason, created_at, resolved_at
        FROM payment_outbox
        WHERE resolved_at IS NULL
        ORDER BY id
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dompayment.Unmatched
	for rows.Next() {
		var rec dompayment.Unmatched
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.GatewayOrderID, &rec.GatewayPaymentID,
			&rec.Signature, &rec.Reason, &rec.CreatedAt, &rec.ResolvedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (o *PaymentOutbox) MarkResolved(ctx context.Context, id int64) error {
	tag, err := o.db.Exec(ctx, `UPDATE payment_outbox SET resolved_at = now() WHERE id = $1 AND resolved_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dompayment.ErrPaymentNotFound
	}
	return nil
}
