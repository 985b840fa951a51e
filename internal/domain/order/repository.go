package order

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status, delivery *Delivery) (*Order, error)
	MarkPaid(ctx context.Context, id string, details PaymentDetails) (*Order, error)
	Stats(ctx context.Context) (*Stats, error)
}
