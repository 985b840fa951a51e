package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domproduct "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/product"
	productuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/product"
)

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := domproduct.ListFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	products, total, err := a.productSvc.List(r.Context(), filter, page, limit)
	if err != nil {
		a.handleDomainError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(products))
	for _, p := range products {
		out = append(out, mapProduct(p))
	}
	respondPage(w, out, newPagination(page, limit, total))
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.productSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, mapProduct(p), "")
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"min=0"`
	Category    string   `json:"category"`
	Stock       int64    `json:"stock" validate:"min=0"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"isActive"`
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	p, err := a.productSvc.Create(r.Context(), user.UserID, productInput(req))
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusCreated, mapProduct(p), "Product created successfully")
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	p, err := a.productSvc.Update(r.Context(), chi.URLParam(r, "id"), productInput(req))
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, mapProduct(p), "Product updated successfully")
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.productSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}

func productInput(req productRequest) productuc.Input {
	return productuc.Input{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      req.Images,
		IsActive:    req.IsActive,
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"stock":       p.Stock,
		"images":      p.Images,
		"isActive":    p.IsActive,
		"createdBy":   map[string]any{"id": p.CreatedBy, "name": p.CreatorName},
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}
