package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/airhost/ops/internal/api/middleware"
	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

type stubOrderService struct {
	ports.OrderService
	createFn func(ctx context.Context, actor access.Actor, in ports.CreateOrderInput) (*domain.Order, error)
	getFn    func(ctx context.Context, actor access.Actor, id string) (*ports.OrderDetail, error)
	updateFn func(ctx context.Context, actor access.Actor, id string, in ports.UpdateOrderInput) (*domain.Order, error)
	claimFn  func(ctx context.Context, actor access.Actor, id string) (*domain.Order, error)
}

func (s *stubOrderService) Create(ctx context.Context, actor access.Actor, in ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubOrderService) Get(ctx context.Context, actor access.Actor, id string) (*ports.OrderDetail, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubOrderService) Update(ctx context.Context, actor access.Actor, id string, in ports.UpdateOrderInput) (*domain.Order, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubOrderService) Claim(ctx context.Context, actor access.Actor, id string) (*domain.Order, error) {
	return s.claimFn(ctx, actor, id)
}

var (
	landlordActor = access.Actor{UserID: "landlord_1", Role: domain.RoleLandlord}
	workerActor   = access.Actor{UserID: "worker_1", Role: domain.RoleService}
)

func TestOrderHandler_Create(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, actor access.Actor, in ports.CreateOrderInput) (*domain.Order, error) {
			if actor.UserID != "landlord_1" {
				t.Fatalf("unexpected actor %+v", actor)
			}
			want := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
			if !in.Date.Equal(want) || in.Type != domain.ServiceCleaning {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Order{ID: "o1", Type: in.Type, Address: in.Address, Date: in.Date, LandlordID: actor.UserID, Status: domain.StatusPending}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/v1/orders", `{"type":"CLEANING","address":"Storgata 1, Oslo","date":"2026-11-02"}`)
	c.Set(middleware.KeyActor, landlordActor)

	if err := NewOrderHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_Rejects(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, actor access.Actor, in ports.CreateOrderInput) (*domain.Order, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	cases := map[string]string{
		"unknown type": `{"type":"GARDENING","address":"Storgata 1","date":"2026-11-02"}`,
		"missing date": `{"type":"CLEANING","address":"Storgata 1"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/v1/orders", body)
			c.Set(middleware.KeyActor, landlordActor)
			if code := httpCode(t, NewOrderHandler(stub).Create(c)); code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
		})
	}

	c, _ := newJSONContext(http.MethodPost, "/v1/orders", `{"type":"CLEANING","address":"Storgata 1","date":"next tuesday"}`)
	c.Set(middleware.KeyActor, landlordActor)
	if err := NewOrderHandler(stub).Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an unparsable date, got %v", err)
	}
}

func TestOrderHandler_RequiresActor(t *testing.T) {
	c, _ := newJSONContext(http.MethodPost, "/v1/orders", `{}`)
	if code := httpCode(t, NewOrderHandler(&stubOrderService{}).Create(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestOrderHandler_Get_AlwaysListsCollections(t *testing.T) {
	stub := &stubOrderService{
		getFn: func(ctx context.Context, actor access.Actor, id string) (*ports.OrderDetail, error) {
			return &ports.OrderDetail{Order: &domain.Order{ID: id, Status: domain.StatusPending}}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/v1/orders/o1", "")
	c.SetParamNames("id")
	c.SetParamValues("o1")
	c.Set(middleware.KeyActor, workerActor)

	if err := NewOrderHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "o1" {
		t.Fatalf("order fields must be inlined, got %v", resp)
	}
	if imgs, ok := resp["images"].([]any); !ok || len(imgs) != 0 {
		t.Fatalf("expected empty images array, got %v", resp["images"])
	}
	if msgs, ok := resp["messages"].([]any); !ok || len(msgs) != 0 {
		t.Fatalf("expected empty messages array, got %v", resp["messages"])
	}
}

func TestOrderHandler_Update_ParsesStatus(t *testing.T) {
	stub := &stubOrderService{
		updateFn: func(ctx context.Context, actor access.Actor, id string, in ports.UpdateOrderInput) (*domain.Order, error) {
			if in.Status == nil || *in.Status != domain.StatusInProgress || in.EditsDetails() {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Order{ID: id, Status: *in.Status}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPut, "/v1/orders/o1", `{"status":"IN_PROGRESS"}`)
	c.SetParamNames("id")
	c.SetParamValues("o1")
	c.Set(middleware.KeyActor, workerActor)

	if err := NewOrderHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrderHandler_Claim_Conflict(t *testing.T) {
	stub := &stubOrderService{
		claimFn: func(ctx context.Context, actor access.Actor, id string) (*domain.Order, error) {
			return nil, domain.ErrConflict
		},
	}
	c, _ := newJSONContext(http.MethodPut, "/v1/orders/o1/claim", "")
	c.SetParamNames("id")
	c.SetParamValues("o1")
	c.Set(middleware.KeyActor, workerActor)

	if err := NewOrderHandler(stub).Claim(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
