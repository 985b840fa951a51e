package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (_ *domorder.Order, retErr error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	id := uuid.NewString()
	_, err = tx.Exec(ctx, `
        INSERT INTO orders (id, user_id, total_amount, status, contact_phone, shipping_address,
                            payment_method, payment_status, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, id, o.UserID, o.TotalAmount, o.Status, o.ContactPhone, o.ShippingAddress,
		o.PaymentMethod, o.PaymentStatus, o.Notes)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, `
            INSERT INTO order_items (id, order_id, product_id, quantity, price)
            VALUES ($1, $2, $3, $4, $5)
        `, uuid.NewString(), id, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			retErr = err
			return nil, retErr
		}
	}

	if err = tx.Commit(ctx); err != nil {
		retErr = err
		return nil, retErr
	}
	return r.GetByID(ctx, id)
}

const orderColumns = `
    o.id, o.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''),
    o.total_amount, o.status, COALESCE(o.contact_phone, ''), o.shipping_address,
    o.payment_method, o.payment_status, o.payment_details,
    o.delivery_date, COALESCE(o.delivery_time, ''), COALESCE(o.notes, ''), o.created_at, o.updated_at`

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	row := r.db.QueryRow(ctx, `
        SELECT`+orderColumns+`
        FROM orders o
        LEFT JOIN users u ON u.id = o.user_id
        WHERE o.id = $1
    `, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter domorder.ListFilter, page, pageSize int) ([]*domorder.Order, int64, error) {
	where := "TRUE"
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where += fmt.Sprintf(" AND o.user_id = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders o WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := r.db.Query(ctx, `
        SELECT`+orderColumns+`
        FROM orders o
        LEFT JOIN users u ON u.id = o.user_id
        WHERE `+where+`
        ORDER BY o.created_at DESC
        LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*domorder.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, o := range orders {
		items, err := r.listItems(ctx, o.ID)
		if err != nil {
			return nil, 0, err
		}
		o.Items = items
	}
	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domorder.Status, delivery *domorder.Delivery) (*domorder.Order, error) {
	var tag pgconn.CommandTag
	var err error
	if delivery != nil {
		tag, err = r.db.Exec(ctx, `
            UPDATE orders
            SET status = $2, delivery_date = $3, delivery_time = $4, updated_at = now()
            WHERE id = $1
        `, id, status, delivery.Date, delivery.Time)
	} else {
		tag, err = r.db.Exec(ctx, `
            UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
        `, id, status)
	}
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domorder.ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id string, details domorder.PaymentDetails) (*domorder.Order, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE orders
        SET payment_status = $2, status = $3, payment_details = $4, updated_at = now()
        WHERE id = $1
    `, id, domorder.PaymentStatusPaid, domorder.StatusProcessing, details)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domorder.ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) Stats(ctx context.Context) (*domorder.Stats, error) {
	var s domorder.Stats
	err := r.db.QueryRow(ctx, `
        SELECT count(*),
               count(*) FILTER (WHERE status = 'pending'),
               count(*) FILTER (WHERE status = 'delivered'),
               COALESCE(sum(total_amount) FILTER (WHERE status <> 'cancelled'), 0),
               COALESCE(avg(total_amount), 0),
               COALESCE(sum(total_amount) FILTER (WHERE status <> 'cancelled'
                   AND created_at >= date_trunc('month', now())), 0),
               COALESCE(sum(total_amount) FILTER (WHERE status <> 'cancelled'
                   AND created_at >= date_trunc('month', now()) - interval '1 month'
                   AND created_at < date_trunc('month', now())), 0)
        FROM orders
    `).Scan(&s.TotalOrders, &s.PendingOrders, &s.CompletedOrders, &s.TotalRevenue,
		&s.AverageOrderValue, &s.CurrentMonthRevenue, &s.LastMonthRevenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID string) ([]domorder.Item, error) {
	rows, err := r.db.Query(ctx, `
        SELECT i.product_id, COALESCE(p.name, ''), i.quantity, i.price
        FROM order_items i
        LEFT JOIN products p ON p.id = i.product_id
        WHERE i.order_id = $1
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domorder.Item
	for rows.Next() {
		var item domorder.Item
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*domorder.Order, error) {
	var o domorder.Order
	err := row.Scan(&o.ID, &o.UserID, &o.UserName, &o.UserEmail,
		&o.TotalAmount, &o.Status, &o.ContactPhone, &o.ShippingAddress,
		&o.PaymentMethod, &o.PaymentStatus, &o.PaymentDetails,
		&o.DeliveryDate, &o.DeliveryTime, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
