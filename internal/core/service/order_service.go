package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

type OrderService struct {
	orders   ports.OrderRepository
	users    ports.UserRepository
	images   ports.ImageRepository
	comments ports.CommentRepository
	messages ports.MessageRepository
	notifier *notifier
	log      zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	users ports.UserRepository,
	images ports.ImageRepository,
	comments ports.CommentRepository,
	messages ports.MessageRepository,
	notifications ports.NotificationRepository,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		users:    users,
		images:   images,
		comments: comments,
		messages: messages,
		notifier: &notifier{repo: notifications, log: log},
		log:      log,
	}
}

func (s *OrderService) List(ctx context.Context, actor access.Actor) ([]*domain.Order, error) {
	scope := access.OrderScope(actor.Role, actor.UserID)
	if scope.None {
		return []*domain.Order{}, nil
	}
	return s.orders.List(ctx, scope)
}

func (s *OrderService) Create(ctx context.Context, actor access.Actor, in ports.CreateOrderInput) (*domain.Order, error) {
	landlordID, err := access.OrderOwner(actor.Role, actor.UserID, in.LandlordID)
	if err != nil {
		return nil, err
	}
	if landlordID != actor.UserID {
		owner, err := s.users.FindByID(ctx, landlordID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("landlord %s does not exist: %w", landlordID, domain.ErrInvalidInput)
			}
			return nil, err
		}
		if !owner.HasLandlord() {
			return nil, fmt.Errorf("user %s is not a landlord: %w", landlordID, domain.ErrInvalidInput)
		}
	}

	if !in.Type.Valid() {
		return nil, fmt.Errorf("unknown order type %q: %w", in.Type, domain.ErrInvalidInput)
	}
	address, err := requireText("address", in.Address, 1, 300)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("date is required: %w", domain.ErrInvalidInput)
	}
	note, err := requireText("note", in.Note, 0, domain.MaxOrderNote)
	if err != nil {
		return nil, err
	}

	ts := utcNow()
	o := &domain.Order{
		Type:       in.Type,
		Address:    address,
		Date:       in.Date.UTC(),
		Note:       note,
		LandlordID: landlordID,
		Status:     domain.StatusPending,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	created, err := s.orders.Create(ctx, o)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, err
	}
	s.log.Info().Str("order_id", created.ID).Str("landlord_id", landlordID).Str("actor_id", actor.UserID).Msg("order created")
	return created, nil
}

// Get returns the order with the images and chat the actor may see. Workers
// browsing the claim pool get the bare order.
func (s *OrderService) Get(ctx context.Context, actor access.Actor, id string) (*ports.OrderDetail, error) {
	o, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.OrderDetail{Order: o, Images: []*domain.Image{}, Messages: []*domain.Message{}}
	if access.CanViewOrderMedia(actor.Role, actor.UserID, o) {
		if detail.Images, err = s.images.ListByOrder(ctx, o.ID); err != nil {
			return nil, fmt.Errorf("order images: %w", err)
		}
	}
	if access.CheckChatAccess(actor.Role, actor.UserID, o) == nil {
		if detail.Messages, err = s.messages.ListByOrder(ctx, o.ID); err != nil {
			return nil, fmt.Errorf("order messages: %w", err)
		}
	}
	return detail, nil
}

// Update applies every requested change or none. A field the actor may not
// change rejects the whole request.
func (s *OrderService) Update(ctx context.Context, actor access.Actor, id string, in ports.UpdateOrderInput) (*domain.Order, error) {
	o, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var upd ports.OrderUpdate
	if in.EditsDetails() {
		if !access.CanEditOrderDetails(actor.Role, actor.UserID, o) {
			return nil, fmt.Errorf("edit order details: %w", domain.ErrForbidden)
		}
		if in.Address != nil {
			address, err := requireText("address", *in.Address, 1, 300)
			if err != nil {
				return nil, err
			}
			upd.Address = &address
		}
		if in.Note != nil {
			note, err := requireText("note", *in.Note, 0, domain.MaxOrderNote)
			if err != nil {
				return nil, err
			}
			upd.Note = &note
		}
		if in.Date != nil {
			if in.Date.IsZero() {
				return nil, fmt.Errorf("date is required: %w", domain.ErrInvalidInput)
			}
			d := in.Date.UTC()
			upd.Date = &d
		}
	}
	if in.Status != nil {
		if err := access.CheckStatusChange(actor.Role, actor.UserID, o, *in.Status); err != nil {
			return nil, err
		}
		if *in.Status != o.Status {
			upd.Status = in.Status
		}
	}
	if upd.Empty() {
		return o, nil
	}

	updated, err := s.orders.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if upd.Status != nil {
		s.log.Info().Str("order_id", id).Str("from", string(o.Status)).Str("to", string(*upd.Status)).Str("actor_id", actor.UserID).Msg("order status changed")
		if *upd.Status == domain.StatusCompleted && actor.Role == domain.RoleService {
			s.notifier.notify(ctx, updated.LandlordID, domain.NoticeOrderCompleted)
		}
	}
	return updated, nil
}

// Delete removes the order with its images, comments and messages.
func (s *OrderService) Delete(ctx context.Context, actor access.Actor, id string) error {
	o, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteOrder(actor.Role, actor.UserID, o) {
		return fmt.Errorf("delete order: %w", domain.ErrForbidden)
	}

	imageIDs, err := s.images.DeleteByOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order images: %w", err)
	}
	if err := s.comments.DeleteByImages(ctx, imageIDs); err != nil {
		return fmt.Errorf("delete order comments: %w", err)
	}
	if err := s.messages.DeleteByOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order messages: %w", err)
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.log.Info().Str("order_id", id).Str("actor_id", actor.UserID).Msg("order deleted")
	return nil
}

// Claim assigns the order to the acting worker. The store arbitrates
// concurrent claims; only one worker wins.
func (s *OrderService) Claim(ctx context.Context, actor access.Actor, id string) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckClaim(actor.Role, actor.UserID, o); err != nil {
		return nil, err
	}

	claimed, err := s.orders.Claim(ctx, id, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("claim order: %w", err)
	}

	if !o.IsAssigned() {
		s.log.Info().Str("order_id", id).Str("worker_id", actor.UserID).Msg("order claimed")
		s.notifier.notify(ctx, claimed.LandlordID, domain.NoticeOrderClaimed)
	}
	return claimed, nil
}

func (s *OrderService) Assign(ctx context.Context, actor access.Actor, id, workerID string) (*domain.Order, error) {
	if !access.Allowed(actor.Role, access.ResourceOrder, access.ActionAssign) {
		return nil, fmt.Errorf("assign order: %w", domain.ErrForbidden)
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	worker, err := s.users.FindByID(ctx, strings.TrimSpace(workerID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("assignee %s does not exist: %w", workerID, domain.ErrInvalidInput)
		}
		return nil, err
	}
	if err := access.CheckAssign(actor.Role, o, worker); err != nil {
		return nil, err
	}

	assigned, err := s.orders.Assign(ctx, id, worker.ID)
	if err != nil {
		return nil, fmt.Errorf("assign order: %w", err)
	}

	s.log.Info().Str("order_id", id).Str("worker_id", worker.ID).Str("admin_id", actor.UserID).Msg("order assigned")
	s.notifier.notify(ctx, worker.ID, domain.NoticeOrderAssigned+assigned.Address)
	return assigned, nil
}

// visibleOrder loads an order the actor may see.
func (s *OrderService) visibleOrder(ctx context.Context, actor access.Actor, id string) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewOrder(actor.Role, actor.UserID, o) {
		return nil, fmt.Errorf("view order %s: %w", id, domain.ErrForbidden)
	}
	return o, nil
}
