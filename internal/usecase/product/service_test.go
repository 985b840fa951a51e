package product

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/product"
)

type mockProductRepository struct {
	products   map[string]*domproduct.Product
	seq        int
	lastFilter domproduct.ListFilter
	lastPage   int
	lastSize   int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[string]*domproduct.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	m.seq++
	p.ID = "prd-" + strconv.Itoa(m.seq)
	m.products[p.ID] = p
	cloned := *p
	return &cloned, nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter domproduct.ListFilter, page, pageSize int) ([]*domproduct.Product, int64, error) {
	m.lastFilter = filter
	m.lastPage = page
	m.lastSize = pageSize
	var out []*domproduct.Product
	for _, p := range m.products {
		cloned := *p
		out = append(out, &cloned)
	}
	return out, int64(len(out)), nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if _, ok := m.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	m.products[p.ID] = p
	cloned := *p
	return &cloned, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func TestCreateProduct(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "usr-1", Input{
		Name:     "  Garland  ",
		Price:    49.5,
		Category: "decor",
		Stock:    10,
	})

	require.NoError(t, err)
	require.Equal(t, "Garland", p.Name)
	require.Equal(t, "usr-1", p.CreatedBy)
	require.True(t, p.IsActive, "active unless the caller says otherwise")
}

func TestCreateProduct_ExplicitInactive(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	inactive := false
	p, err := svc.Create(context.Background(), "usr-1", Input{Name: "Garland", IsActive: &inactive})

	require.NoError(t, err)
	require.False(t, p.IsActive)
}

func TestCreateProduct_Validation(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "usr-1", Input{Name: "   "})
	require.ErrorIs(t, err, domproduct.ErrInvalidName)

	_, err = svc.Create(context.Background(), "usr-1", Input{Name: "X", Price: -1})
	require.ErrorIs(t, err, domproduct.ErrInvalidPrice)
}

func TestListProducts_CategorySentinel(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	_, _, err := svc.List(context.Background(), domproduct.ListFilter{Category: domproduct.CategoryFilterAll}, 1, 10)

	require.NoError(t, err)
	require.Empty(t, repo.lastFilter.Category, "sentinel disables the category filter")
}

func TestListProducts_PageNormalization(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	_, _, err := svc.List(context.Background(), domproduct.ListFilter{}, -3, 1000)

	require.NoError(t, err)
	require.Equal(t, 1, repo.lastPage)
	require.Equal(t, 100, repo.lastSize)
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), "usr-1", Input{
		Name:   "Garland",
		Price:  49.5,
		Images: []string{"a.jpg"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, Input{
		Name:  "Gold Garland",
		Price: 59.5,
	})

	require.NoError(t, err)
	require.Equal(t, "Gold Garland", updated.Name)
	require.Equal(t, 59.5, updated.Price)
	require.Equal(t, []string{"a.jpg"}, updated.Images, "nil images leave the existing set alone")
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "missing", Input{Name: "X"})
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), "usr-1", Input{Name: "Garland"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), domproduct.ErrProductNotFound)
}
