package service

import (
	"context"
	"fmt"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

type StatsService struct {
	orders ports.OrderRepository
	users  ports.UserRepository
}

func NewStatsService(orders ports.OrderRepository, users ports.UserRepository) *StatsService {
	return &StatsService{orders: orders, users: users}
}

func (s *StatsService) Stats(ctx context.Context, actor access.Actor) (*ports.Stats, error) {
	if !access.CanReadStats(actor.Role) {
		return nil, fmt.Errorf("read stats: %w", domain.ErrForbidden)
	}

	var (
		st  ports.Stats
		err error
	)
	if st.ActiveOrders, err = s.orders.CountByStatus(ctx, domain.StatusPending, domain.StatusInProgress); err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}
	if st.CompletedOrders, err = s.orders.CountByStatus(ctx, domain.StatusCompleted); err != nil {
		return nil, fmt.Errorf("count completed orders: %w", err)
	}
	if st.Landlords, err = s.users.CountActive(ctx, domain.RoleLandlord); err != nil {
		return nil, fmt.Errorf("count landlords: %w", err)
	}
	if st.Workers, err = s.users.CountActive(ctx, domain.RoleService); err != nil {
		return nil, fmt.Errorf("count workers: %w", err)
	}
	return &st, nil
}
