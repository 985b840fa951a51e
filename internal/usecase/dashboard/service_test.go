package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
)

type stubStats struct {
	stats *domorder.Stats
	err   error
}

func (s stubStats) Stats(ctx context.Context) (*domorder.Stats, error) {
	return s.stats, s.err
}

type stubProducts struct {
	n   int64
	err error
}

func (s stubProducts) Count(ctx context.Context) (int64, error) { return s.n, s.err }

type stubCustomers struct {
	n        int64
	err      error
	lastRole domuser.Role
}

func (s *stubCustomers) CountByRole(ctx context.Context, role domuser.Role) (int64, error) {
	s.lastRole = role
	return s.n, s.err
}

func TestOverview(t *testing.T) {
	customers := &stubCustomers{n: 42}
	svc := NewService(stubStats{stats: &domorder.Stats{
		TotalOrders:         10,
		PendingOrders:       3,
		CompletedOrders:     5,
		TotalRevenue:        12500,
		AverageOrderValue:   1250,
		CurrentMonthRevenue: 3000,
		LastMonthRevenue:    2000,
	}}, stubProducts{n: 7}, customers)

	overview, err := svc.Overview(context.Background())

	require.NoError(t, err)
	require.EqualValues(t, 10, overview.TotalOrders)
	require.EqualValues(t, 7, overview.TotalProducts)
	require.EqualValues(t, 42, overview.TotalCustomers)
	require.Equal(t, domuser.RoleUser, customers.lastRole, "only shoppers count as customers")
	require.InDelta(t, 50, overview.RevenueChange, 1e-9, "(3000-2000)/2000 as a percentage")
}

func TestOverview_NoLastMonthRevenue(t *testing.T) {
	svc := NewService(stubStats{stats: &domorder.Stats{CurrentMonthRevenue: 3000}}, stubProducts{}, &stubCustomers{})

	overview, err := svc.Overview(context.Background())

	require.NoError(t, err)
	require.Zero(t, overview.RevenueChange)
}

func TestOverview_Errors(t *testing.T) {
	boom := errors.New("db down")

	_, err := NewService(stubStats{err: boom}, stubProducts{}, &stubCustomers{}).Overview(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = NewService(stubStats{stats: &domorder.Stats{}}, stubProducts{err: boom}, &stubCustomers{}).Overview(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = NewService(stubStats{stats: &domorder.Stats{}}, stubProducts{}, &stubCustomers{err: boom}).Overview(context.Background())
	require.ErrorIs(t, err, boom)
}
