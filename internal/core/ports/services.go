package ports

import (
	"context"
	"io"
	"time"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
)

// ── Auth ──────────────────────────────────────────────────────────────────────

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// Kind is UTLEIER (default), TJENESTE or BEGGE.
	Kind string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// ── Users ─────────────────────────────────────────────────────────────────────

// Profile is the acting user's view of themselves.
type Profile struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Role          domain.Role `json:"role"`
	CanLandlord   bool        `json:"can_landlord"`
	CanService    bool        `json:"can_service"`
	ActiveMode    domain.Mode `json:"active_mode"`
	EffectiveRole domain.Role `json:"effective_role"`
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Dual     bool
}

type UpdateUserInput struct {
	Name        *string
	Role        *domain.Role
	CanLandlord *bool
	CanService  *bool
	IsActive    *bool
}

// Privileged reports whether the update touches anything beyond the name.
func (in UpdateUserInput) Privileged() bool {
	return in.Role != nil || in.CanLandlord != nil || in.CanService != nil || in.IsActive != nil
}

type UserService interface {
	Me(ctx context.Context, actor access.Actor) (*Profile, error)
	SwitchMode(ctx context.Context, actor access.Actor, mode domain.Mode) (*Profile, error)
	List(ctx context.Context, actor access.Actor) ([]*domain.User, error)
	Create(ctx context.Context, actor access.Actor, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor access.Actor, id string) (*domain.User, error)
	Update(ctx context.Context, actor access.Actor, id string, in UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, actor access.Actor, id string) error
}

// ── Orders ────────────────────────────────────────────────────────────────────

type CreateOrderInput struct {
	Type       domain.ServiceType
	Address    string
	Date       time.Time
	Note       string
	LandlordID string
}

type UpdateOrderInput struct {
	Address *string
	Date    *time.Time
	Note    *string
	Status  *domain.OrderStatus
}

func (in UpdateOrderInput) EditsDetails() bool {
	return in.Address != nil || in.Date != nil || in.Note != nil
}

// OrderDetail is an order with the related records the actor may see.
type OrderDetail struct {
	Order    *domain.Order
	Images   []*domain.Image
	Messages []*domain.Message
}

type OrderService interface {
	List(ctx context.Context, actor access.Actor) ([]*domain.Order, error)
	Create(ctx context.Context, actor access.Actor, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, actor access.Actor, id string) (*OrderDetail, error)
	Update(ctx context.Context, actor access.Actor, id string, in UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
	Claim(ctx context.Context, actor access.Actor, id string) (*domain.Order, error)
	Assign(ctx context.Context, actor access.Actor, id, workerID string) (*domain.Order, error)
}

// ── Media ─────────────────────────────────────────────────────────────────────

type CreateImageInput struct {
	OrderID string
	URL     string
	Caption string
	Kind    domain.ImageKind
}

// BlobObject is a file on its way to a BlobStore.
type BlobObject struct {
	Dir         string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadImageInput struct {
	OrderID string
	Caption string
	Kind    domain.ImageKind
	File    BlobObject
}

type ImageService interface {
	List(ctx context.Context, actor access.Actor, orderID string) ([]*domain.Image, error)
	Create(ctx context.Context, actor access.Actor, in CreateImageInput) (*domain.Image, error)
	Upload(ctx context.Context, actor access.Actor, in UploadImageInput) (*domain.Image, error)
	Update(ctx context.Context, actor access.Actor, id string, upd ImageUpdate) (*domain.Image, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
}

type CommentService interface {
	List(ctx context.Context, actor access.Actor, imageID string) ([]*domain.Comment, error)
	Create(ctx context.Context, actor access.Actor, imageID, text string) (*domain.Comment, error)
	Update(ctx context.Context, actor access.Actor, id, text string) (*domain.Comment, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
}

// ── Chat & notifications ──────────────────────────────────────────────────────

type MessageService interface {
	List(ctx context.Context, actor access.Actor, orderID string) ([]*domain.Message, error)
	Send(ctx context.Context, actor access.Actor, orderID, text string) (*domain.Message, error)
}

type NotificationService interface {
	List(ctx context.Context, actor access.Actor) ([]*domain.Notification, error)
	Send(ctx context.Context, actor access.Actor, userID, message string) (*domain.Notification, error)
	MarkRead(ctx context.Context, actor access.Actor, id string) (*domain.Notification, error)
}

// ── Admin ─────────────────────────────────────────────────────────────────────

type Stats struct {
	ActiveOrders    int64 `json:"active_orders"`
	CompletedOrders int64 `json:"completed_orders"`
	Landlords       int64 `json:"landlords"`
	Workers         int64 `json:"workers"`
}

type StatsService interface {
	Stats(ctx context.Context, actor access.Actor) (*Stats, error)
}
