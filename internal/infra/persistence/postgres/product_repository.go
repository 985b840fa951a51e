package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domproduct "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/product"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
    p.id, p.name, COALESCE(p.description, ''), p.price, COALESCE(p.category, ''),
    p.stock, p.images, p.is_active, COALESCE(p.created_by, ''), COALESCE(u.name, ''),
    p.created_at, p.updated_at`

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	id := uuid.NewString()
	images := p.Images
	if images == nil {
		images = []string{}
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO products (id, name, description, price, category, stock, images, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, id, p.Name, p.Description, p.Price, p.Category, p.Stock, images, p.IsActive, p.CreatedBy)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	row := r.db.QueryRow(ctx, `
        SELECT`+productColumns+`
        FROM products p
        LEFT JOIN users u ON u.id = p.created_by
        WHERE p.id = $1
    `, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter, page, pageSize int) ([]*domproduct.Product, int64, error) {
	where := "TRUE"
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND p.category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products p WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := r.db.Query(ctx, `
        SELECT`+productColumns+`
        FROM products p
        LEFT JOIN users u ON u.id = p.created_by
        WHERE `+where+`
        ORDER BY p.created_at DESC
        LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	tag, err := r.db.Exec(ctx, `
        UPDATE products
        SET name = $2, description = $3, price = $4, category = $5, stock = $6,
            images = $7, is_active = $8, updated_at = now()
        WHERE id = $1
    `, p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, images, p.IsActive)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n)
	return n, err
}

func scanProduct(row pgx.Row) (*domproduct.Product, error) {
	var p domproduct.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Stock, &p.Images, &p.IsActive, &p.CreatedBy, &p.CreatorName,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
