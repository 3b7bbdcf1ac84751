package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/airhost/ops/docs"
	"github.com/airhost/ops/internal/api/handler"
	"github.com/airhost/ops/internal/api/middleware"
	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Log       zerolog.Logger
	JWTSecret string
	// AuthRateLimit is requests per second per client on /auth; 0 disables it.
	AuthRateLimit float64
	// StorageRoot is served under /storage when non-empty.
	StorageRoot string
	// UploadLimit caps multipart bodies, e.g. "12M".
	UploadLimit string

	Resolver    middleware.ActorResolver
	Revocations middleware.RevocationChecker
	Readiness   map[string]handler.Pinger

	Auth          ports.AuthService
	Users         ports.UserService
	Orders        ports.OrderService
	Images        ports.ImageService
	Comments      ports.CommentService
	Messages      ports.MessageService
	Notifications ports.NotificationService
	Stats         ports.StatsService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(requestLogger(d.Log))

	// --- Health, metrics, docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(d.Readiness).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.StorageRoot != "" {
		e.Static("/storage", d.StorageRoot)
	}

	authn := middleware.Auth(d.JWTSecret, d.Revocations)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	if d.AuthRateLimit > 0 {
		auth.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(d.AuthRateLimit))))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authn)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authn, middleware.ResolveActor(d.Resolver))
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	users := handler.NewUserHandler(d.Users)
	v1.GET("/users/me", users.Me)
	v1.PUT("/users/me/mode", users.SwitchMode)
	v1.GET("/users", users.List, adminOnly)
	v1.POST("/users", users.Create, adminOnly)
	v1.GET("/users/:id", users.Get)
	v1.PUT("/users/:id", users.Update)
	v1.DELETE("/users/:id", users.Deactivate, adminOnly)

	orders := handler.NewOrderHandler(d.Orders)
	messages := handler.NewMessageHandler(d.Messages)
	v1.GET("/orders", orders.List)
	v1.POST("/orders", orders.Create, middleware.Capability(access.ResourceOrder, access.ActionCreate))
	v1.GET("/orders/:id", orders.Get)
	v1.PUT("/orders/:id", orders.Update)
	v1.DELETE("/orders/:id", orders.Delete)
	v1.PUT("/orders/:id/claim", orders.Claim, middleware.Capability(access.ResourceOrder, access.ActionClaim))
	v1.PUT("/orders/:id/assign", orders.Assign, middleware.Capability(access.ResourceOrder, access.ActionAssign))
	v1.GET("/orders/:id/messages", messages.List, middleware.Capability(access.ResourceChat, access.ActionParticipate))
	v1.POST("/orders/:id/messages", messages.Send, middleware.Capability(access.ResourceChat, access.ActionParticipate))

	media := handler.NewMediaHandler(d.Images, d.Comments)
	uploadLimit := d.UploadLimit
	if uploadLimit == "" {
		uploadLimit = "12M"
	}
	v1.GET("/images", media.ListImages)
	v1.POST("/images", media.CreateImage, middleware.Capability(access.ResourceImage, access.ActionUpload))
	v1.POST("/images/upload", media.UploadImage,
		middleware.Capability(access.ResourceImage, access.ActionUpload),
		echomiddleware.BodyLimit(uploadLimit),
	)
	v1.PUT("/images/:id", media.UpdateImage)
	v1.DELETE("/images/:id", media.DeleteImage)
	v1.GET("/comments", media.ListComments)
	v1.POST("/comments", media.CreateComment)
	v1.PUT("/comments/:id", media.UpdateComment)
	v1.DELETE("/comments/:id", media.DeleteComment)

	notifications := handler.NewNotificationHandler(d.Notifications)
	v1.GET("/notifications", notifications.List)
	v1.POST("/notifications", notifications.Send, middleware.Capability(access.ResourceNotification, access.ActionSend))
	v1.PUT("/notifications/:id/read", notifications.MarkRead)

	admin := v1.Group("/admin", adminOnly)
	admin.GET("/stats", handler.NewAdminHandler(d.Stats).Stats)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			userID, _ := c.Get(middleware.KeyUserID).(string)
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("user_id", userID).
				Msg("request")
			return nil
		},
	})
}
