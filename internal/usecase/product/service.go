package product

import (
	"context"
	"strings"

	domproduct "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/product"
)

type Service struct {
	repo domproduct.Repository
}

func NewService(repo domproduct.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int64
	Images      []string
	IsActive    *bool
}

func (s *Service) Create(ctx context.Context, createdBy string, in Input) (*domproduct.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domproduct.ErrInvalidName
	}
	if in.Price < 0 {
		return nil, domproduct.ErrInvalidPrice
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	p := &domproduct.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		Images:      in.Images,
		IsActive:    active,
		CreatedBy:   createdBy,
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List paginates newest-first. The category sentinel "all-wedding-items"
// disables the category filter; search matches name or description,
// case-insensitively.
func (s *Service) List(ctx context.Context, filter domproduct.ListFilter, page, pageSize int) ([]*domproduct.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	if filter.Category == domproduct.CategoryFilterAll {
		filter.Category = ""
	}
	return s.repo.List(ctx, filter, page, pageSize)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domproduct.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domproduct.ErrInvalidName
	}
	if in.Price < 0 {
		return nil, domproduct.ErrInvalidPrice
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.Stock = in.Stock
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
