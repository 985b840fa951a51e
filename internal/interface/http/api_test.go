package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
	domproduct "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/product"
	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/gateway"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/mail"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/security"
	authuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/auth"
	dashboarduc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/dashboard"
	orderuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/order"
	paymentuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/payment"
	productuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/product"
)

const testGatewaySecret = "test-gateway-secret"

type fakeOrderStore struct {
	orders map[string]*domorder.Order
	seq    int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*domorder.Order)}
}

func (s *fakeOrderStore) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	s.seq++
	o.ID = "ord-" + strconv.Itoa(s.seq)
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	s.orders[o.ID] = o
	cloned := *o
	return &cloned, nil
}

func (s *fakeOrderStore) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	cloned := *o
	return &cloned, nil
}

func (s *fakeOrderStore) List(ctx context.Context, filter domorder.ListFilter, page, pageSize int) ([]*domorder.Order, int64, error) {
	var out []*domorder.Order
	for _, o := range s.orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		cloned := *o
		out = append(out, &cloned)
	}
	return out, int64(len(out)), nil
}

func (s *fakeOrderStore) UpdateStatus(ctx context.Context, id string, status domorder.Status, delivery *domorder.Delivery) (*domorder.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	o.Status = status
	if delivery != nil {
		o.DeliveryDate = &delivery.Date
		o.DeliveryTime = delivery.Time
	}
	cloned := *o
	return &cloned, nil
}

func (s *fakeOrderStore) MarkPaid(ctx context.Context, id string, details domorder.PaymentDetails) (*domorder.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	o.PaymentStatus = domorder.PaymentStatusPaid
	o.Status = domorder.StatusProcessing
	o.PaymentDetails = &details
	cloned := *o
	return &cloned, nil
}

func (s *fakeOrderStore) Stats(ctx context.Context) (*domorder.Stats, error) {
	stats := &domorder.Stats{}
	for _, o := range s.orders {
		stats.TotalOrders++
		switch o.Status {
		case domorder.StatusPending:
			stats.PendingOrders++
		case domorder.StatusDelivered:
			stats.CompletedOrders++
		}
		if o.Status != domorder.StatusCancelled {
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats, nil
}

type fakeUserStore struct {
	users   map[string]*domuser.User
	byEmail map[string]string
	otps    map[string]*domuser.OTP
	seq     int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   make(map[string]*domuser.User),
		byEmail: make(map[string]string),
		otps:    make(map[string]*domuser.OTP),
	}
}

func (s *fakeUserStore) add(u *domuser.User) *domuser.User {
	s.seq++
	u.ID = "usr-" + strconv.Itoa(s.seq)
	u.CreatedAt = time.Now()
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return u
}

func (s *fakeUserStore) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	if _, ok := s.byEmail[u.Email]; ok {
		return nil, domuser.ErrEmailAlreadyUsed
	}
	return s.add(u), nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domuser.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	if id, ok := s.byEmail[email]; ok {
		return s.users[id], nil
	}
	return nil, domuser.ErrUserNotFound
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return domuser.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id string) error {
	u, ok := s.users[id]
	if !ok {
		return domuser.ErrUserNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func (s *fakeUserStore) SetOTP(ctx context.Context, id string, otp domuser.OTP) error {
	if _, ok := s.users[id]; !ok {
		return domuser.ErrUserNotFound
	}
	s.otps[id] = &otp
	return nil
}

func (s *fakeUserStore) GetOTP(ctx context.Context, id string) (*domuser.OTP, error) {
	if _, ok := s.users[id]; !ok {
		return nil, domuser.ErrUserNotFound
	}
	return s.otps[id], nil
}

func (s *fakeUserStore) IncrementOTPAttempts(ctx context.Context, id string) error {
	if otp, ok := s.otps[id]; ok {
		otp.Attempts++
	}
	return nil
}

func (s *fakeUserStore) MarkOTPUsed(ctx context.Context, id string) error {
	if otp, ok := s.otps[id]; ok {
		otp.IsUsed = true
	}
	return nil
}

func (s *fakeUserStore) ClearOTP(ctx context.Context, id string) error {
	delete(s.otps, id)
	return nil
}

func (s *fakeUserStore) CountByRole(ctx context.Context, role domuser.Role) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeProductStore struct {
	products map[string]*domproduct.Product
	seq      int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]*domproduct.Product)}
}

func (s *fakeProductStore) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	s.seq++
	p.ID = "prd-" + strconv.Itoa(s.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = p
	cloned := *p
	return &cloned, nil
}

func (s *fakeProductStore) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (s *fakeProductStore) List(ctx context.Context, filter domproduct.ListFilter, page, pageSize int) ([]*domproduct.Product, int64, error) {
	var out []*domproduct.Product
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		cloned := *p
		out = append(out, &cloned)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductStore) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if _, ok := s.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	s.products[p.ID] = p
	cloned := *p
	return &cloned, nil
}

func (s *fakeProductStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *fakeProductStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

// fakeGW signs and verifies with the real HMAC so handler tests exercise the
// same signature path as the live client.
type fakeGW struct {
	keyID    string
	seq      int
	payments map[string]*dompayment.Payment
}

func newFakeGW() *fakeGW {
	return &fakeGW{keyID: "rzp_test_abc", payments: make(map[string]*dompayment.Payment)}
}

func (g *fakeGW) CreateOrder(ctx context.Context, in dompayment.CreateOrderInput) (*dompayment.GatewayOrder, error) {
	if in.Amount <= 0 {
		return nil, dompayment.ErrInvalidAmount
	}
	g.seq++
	return &dompayment.GatewayOrder{
		ID:       "order_live_" + strconv.Itoa(g.seq),
		Amount:   in.Amount,
		Currency: in.Currency,
		Receipt:  in.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGW) FetchPayment(ctx context.Context, paymentID string) (*dompayment.Payment, error) {
	if p, ok := g.payments[paymentID]; ok {
		return p, nil
	}
	return nil, dompayment.ErrPaymentNotFound
}

func (g *fakeGW) VerifySignature(orderID, paymentID, signature string) bool {
	return gateway.VerifySignature(testGatewaySecret, orderID, paymentID, signature)
}

func (g *fakeGW) KeyID() string { return g.keyID }

type fakeOutboxStore struct {
	records []dompayment.Unmatched
	nextID  int64
}

func (s *fakeOutboxStore) Record(ctx context.Context, rec dompayment.Unmatched) error {
	s.nextID++
	rec.ID = s.nextID
	rec.CreatedAt = time.Now()
	s.records = append(s.records, rec)
	return nil
}

func (s *fakeOutboxStore) ListUnresolved(ctx context.Context, limit int) ([]dompayment.Unmatched, error) {
	var out []dompayment.Unmatched
	for _, rec := range s.records {
		if rec.ResolvedAt == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeOutboxStore) MarkResolved(ctx context.Context, id int64) error {
	for i := range s.records {
		if s.records[i].ID == id {
			now := time.Now()
			s.records[i].ResolvedAt = &now
			return nil
		}
	}
	return dompayment.ErrPaymentNotFound
}

type testEnv struct {
	handler  http.Handler
	orders   *fakeOrderStore
	users    *fakeUserStore
	products *fakeProductStore
	gw       *fakeGW
	outbox   *fakeOutboxStore
	tokens   *security.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		orders:   newFakeOrderStore(),
		users:    newFakeUserStore(),
		products: newFakeProductStore(),
		gw:       newFakeGW(),
		outbox:   &fakeOutboxStore{},
		tokens:   security.NewJWTService("test-secret", time.Hour),
	}

	passwords := security.NewBcryptService(4)
	otp := func() (string, error) { return "654321", nil }

	api := NewAPI(Dependencies{
		AuthService:      authuc.NewService(env.users, passwords, env.tokens, mail.NewLogMailer(), otp),
		ProductService:   productuc.NewService(env.products),
		OrderService:     orderuc.NewService(env.orders),
		PaymentService:   paymentuc.NewService(env.gw, env.orders, env.outbox),
		DashboardService: dashboarduc.NewService(env.orders, env.products, env.users),
		PaymentOutbox:    env.outbox,
		TokenService:     env.tokens,
		ExposeErrors:     true,
	})
	env.handler = api.Router()
	return env
}

func (e *testEnv) token(t *testing.T, id string, role domuser.Role) string {
	t.Helper()
	token, err := e.tokens.GenerateToken(&domuser.User{
		ID:    id,
		Name:  "Test " + string(role),
		Email: id + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.token(t, "admin-1", domuser.RoleAdmin)
}

func (e *testEnv) userToken(t *testing.T) string {
	return e.token(t, "user-1", domuser.RoleUser)
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *pagination     `json:"pagination"`
	Error      string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, dst))
	return env
}

func validOrderBody() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product": "prd-1", "quantity": 2, "price": 500},
		},
		"shippingAddress": map[string]any{
			"street":  "1 Main St",
			"city":    "Pune",
			"state":   "MH",
			"zipCode": "411001",
			"country": "IN",
		},
		"paymentMethod": "razorpay",
		"contactPhone":  "9999999999",
	}
}
