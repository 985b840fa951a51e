package product

import "time"

// CategoryFilterAll is the sentinel list queries treat as "no category filter".
const CategoryFilterAll = "all-wedding-items"

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int64
	Images      []string
	IsActive    bool
	CreatedBy   string
	CreatorName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ListFilter struct {
	Category string
	Search   string
}
