package order

import (
	"context"
	"time"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
)

type Service struct {
	repo domorder.Repository
	now  func() time.Time
}

func NewService(repo domorder.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateItemInput struct {
	ProductID string
	Quantity  int64
	Price     float64
}

type CreateInput struct {
	UserID          string
	Items           []CreateItemInput
	ShippingAddress *domorder.ShippingAddress
	PaymentMethod   domorder.PaymentMethod
	Notes           string
	ContactPhone    string
}

// Create validates the submitted order and persists it in its initial state.
// The total is the sum of the client-submitted prices; there is no re-pricing
// against the catalog.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domorder.Order, error) {
	if len(in.Items) == 0 {
		return nil, domorder.ErrEmptyItems
	}
	if in.ShippingAddress == nil || !in.ShippingAddress.Complete() {
		return nil, domorder.ErrMissingShippingAddress
	}
	if !in.PaymentMethod.IsValid() {
		return nil, domorder.ErrInvalidPaymentMethod
	}

	var total float64
	items := make([]domorder.Item, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.Price < 0 {
			return nil, domorder.ErrInvalidItem
		}
		total += item.Price * float64(item.Quantity)
		items = append(items, domorder.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	o := &domorder.Order{
		UserID:          in.UserID,
		Items:           items,
		TotalAmount:     total,
		Status:          domorder.StatusPending,
		ContactPhone:    in.ContactPhone,
		ShippingAddress: *in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   domorder.PaymentStatusPending,
		Notes:           in.Notes,
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns orders newest-first with offset pagination. The status filter
// "all" (or empty) matches every order.
func (s *Service) List(ctx context.Context, filter domorder.ListFilter, page, pageSize int) ([]*domorder.Order, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	if filter.Status == domorder.StatusFilterAll {
		filter.Status = ""
	}
	return s.repo.List(ctx, filter, page, pageSize)
}

func (s *Service) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*domorder.Order, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.List(ctx, domorder.ListFilter{UserID: userID}, page, pageSize)
}

// UpdateStatus sets the status unconditionally; any of the five statuses may
// move to any other. Moving to delivered stamps the delivery date and time;
// the stamp is refreshed on repeated delivered updates and never cleared by
// later transitions.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domorder.Status) (*domorder.Order, error) {
	if !status.IsValid() {
		return nil, domorder.ErrInvalidStatus
	}

	var delivery *domorder.Delivery
	if status == domorder.StatusDelivered {
		d := domorder.StampDelivery(s.now())
		delivery = &d
	}
	return s.repo.UpdateStatus(ctx, id, status, delivery)
}

func (s *Service) Stats(ctx context.Context) (*domorder.Stats, error) {
	return s.repo.Stats(ctx)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
