package handler

import (
	"github.com/airhost/ops/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	// Role picks the capabilities of the new account. Empty means UTLEIER.
	Role string `json:"role" validate:"omitempty,oneof=UTLEIER TJENESTE BEGGE"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Users ---

type switchModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=UTLEIER TJENESTE"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN UTLEIER TJENESTE"`
	// Dual grants both capabilities to a non-admin account.
	Dual bool `json:"dual"`
}

type updateUserRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=2,max=100"`
	Role        *string `json:"role"         validate:"omitempty,oneof=ADMIN UTLEIER TJENESTE"`
	CanLandlord *bool   `json:"can_landlord"`
	CanService  *bool   `json:"can_service"`
	IsActive    *bool   `json:"is_active"`
}

type usersResponse struct {
	Users []*domain.User `json:"users"`
}

// --- Orders ---

type createOrderRequest struct {
	Type    string `json:"type"    validate:"required,oneof=CLEANING KEY_HANDLING"`
	Address string `json:"address" validate:"required,min=3,max=300"`
	// Date accepts RFC 3339 or YYYY-MM-DD.
	Date string `json:"date" validate:"required"`
	Note string `json:"note" validate:"max=500"`
	// LandlordID lets an admin create the order on behalf of a landlord.
	LandlordID string `json:"landlord_id"`
}

type updateOrderRequest struct {
	Address *string `json:"address" validate:"omitempty,min=3,max=300"`
	Date    *string `json:"date"`
	Note    *string `json:"note"    validate:"omitempty,max=500"`
	Status  *string `json:"status"  validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

type assignOrderRequest struct {
	WorkerID string `json:"worker_id" validate:"required"`
}

type ordersResponse struct {
	Orders []*domain.Order `json:"orders"`
}

type orderDetailResponse struct {
	*domain.Order
	Images   []*domain.Image   `json:"images"`
	Messages []*domain.Message `json:"messages"`
}

// --- Media ---

type createImageRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	URL     string `json:"url"      validate:"required,url"`
	Caption string `json:"caption"  validate:"max=200"`
	Kind    string `json:"kind"     validate:"omitempty,oneof=before after"`
}

type updateImageRequest struct {
	Caption *string `json:"caption" validate:"omitempty,max=200"`
	Kind    *string `json:"kind"    validate:"omitempty,oneof=before after"`
}

type imagesResponse struct {
	Images []*domain.Image `json:"images"`
}

type createCommentRequest struct {
	ImageID string `json:"image_id" validate:"required"`
	Text    string `json:"text"     validate:"required,max=300"`
}

type updateCommentRequest struct {
	Text string `json:"text" validate:"required,max=300"`
}

type commentsResponse struct {
	Comments []*domain.Comment `json:"comments"`
}

// --- Chat & notifications ---

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

type messagesResponse struct {
	Messages []*domain.Message `json:"messages"`
}

type sendNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required,max=240"`
}

type notificationsResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
}
