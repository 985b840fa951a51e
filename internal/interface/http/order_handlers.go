package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
	orderuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/order"
)

type orderItemRequest struct {
	Product  string  `json:"product" validate:"required"`
	Quantity int64   `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"min=0"`
}

type createOrderRequest struct {
	Items           []orderItemRequest        `json:"items"`
	ShippingAddress *domorder.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                    `json:"paymentMethod"`
	Notes           string                    `json:"notes" validate:"omitempty,max=500"`
	ContactPhone    string                    `json:"contactPhone"`
}

func (a *API) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	var req createOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]orderuc.CreateItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderuc.CreateItemInput{
			ProductID: item.Product,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	o, err := a.orderSvc.Create(r.Context(), orderuc.CreateInput{
		UserID:          user.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   domorder.PaymentMethod(req.PaymentMethod),
		Notes:           req.Notes,
		ContactPhone:    req.ContactPhone,
	})
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusCreated, mapOrder(o), "Order created successfully")
}

func (a *API) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	page, limit := pageParams(r)

	orders, total, err := a.orderSvc.ListByUser(r.Context(), user.UserID, page, limit)
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondPage(w, mapOrders(orders), newPagination(page, limit, total))
}

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := domorder.ListFilter{Status: r.URL.Query().Get("status")}

	orders, total, err := a.orderSvc.List(r.Context(), filter, page, limit)
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondPage(w, mapOrders(orders), newPagination(page, limit, total))
}

func (a *API) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := a.orderSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, mapOrder(o), "")
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (a *API) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderStatusRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}

	o, err := a.orderSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domorder.Status(req.Status))
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, mapOrder(o), "Order status updated successfully")
}

func mapOrders(orders []*domorder.Order) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, mapOrder(o))
	}
	return out
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"product":  item.ProductID,
			"name":     item.ProductName,
			"quantity": item.Quantity,
			"price":    item.Price,
		})
	}

	m := map[string]any{
		"id":              o.ID,
		"user":            map[string]any{"id": o.UserID, "name": o.UserName, "email": o.UserEmail},
		"items":           items,
		"totalAmount":     o.TotalAmount,
		"status":          o.Status,
		"contactPhone":    o.ContactPhone,
		"shippingAddress": o.ShippingAddress,
		"paymentMethod":   o.PaymentMethod,
		"paymentStatus":   o.PaymentStatus,
		"notes":           o.Notes,
		"createdAt":       o.CreatedAt,
		"updatedAt":       o.UpdatedAt,
	}
	if o.PaymentDetails != nil {
		m["paymentDetails"] = o.PaymentDetails
	}
	if o.DeliveryDate != nil {
		m["deliveryDate"] = o.DeliveryDate
		m["deliveryTime"] = o.DeliveryTime
	}
	return m
}
