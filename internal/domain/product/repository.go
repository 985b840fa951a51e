package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]*Product, int64, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
