package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	seq     int
	findErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.CanLandlord != nil {
		u.CanLandlord = *upd.CanLandlord
	}
	if upd.CanService != nil {
		u.CanService = *upd.CanService
	}
	if upd.ActiveMode != nil {
		u.ActiveMode = *upd.ActiveMode
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) CountActive(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.IsActive && u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubOrderRepo struct {
	orders    map[string]*domain.Order
	seq       int
	updates   int
	claimErr  error
	createErr error
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		clone := *o
		r.orders[o.ID] = &clone
	}
	return r
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *o
	clone.ID = fmt.Sprintf("order-%d", r.seq)
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

// List applies the same filter the real Mongo repo builds from a scope.
func (r *stubOrderRepo) List(_ context.Context, scope access.Scope) ([]*domain.Order, error) {
	out := []*domain.Order{}
	for _, o := range r.orders {
		if scope.LandlordID != "" && o.LandlordID != scope.LandlordID {
			continue
		}
		if scope.WorkerID != "" && o.AssignedToID != scope.WorkerID && !(o.AssignedToID == "" && o.Status == domain.StatusPending) {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, id string, upd ports.OrderUpdate) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	r.updates++
	if upd.Address != nil {
		o.Address = *upd.Address
	}
	if upd.Date != nil {
		o.Date = *upd.Date
	}
	if upd.Note != nil {
		o.Note = *upd.Note
	}
	if upd.Status != nil {
		o.Status = *upd.Status
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// Claim mirrors the conditional update of the Mongo repository.
func (r *stubOrderRepo) Claim(_ context.Context, id, workerID string) (*domain.Order, error) {
	if r.claimErr != nil {
		return nil, r.claimErr
	}
	o, ok := r.orders[id]
	if !ok || (o.AssignedToID != "" && o.AssignedToID != workerID) || o.Status == domain.StatusCompleted {
		return nil, domain.ErrConflict
	}
	o.AssignedToID = workerID
	o.Status = domain.StatusInProgress
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Assign(_ context.Context, id, workerID string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.Status == domain.StatusCompleted {
		return nil, domain.ErrConflict
	}
	o.AssignedToID = workerID
	o.Status = domain.StatusInProgress
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context, statuses ...domain.OrderStatus) (int64, error) {
	var n int64
	for _, o := range r.orders {
		for _, s := range statuses {
			if o.Status == s {
				n++
			}
		}
	}
	return n, nil
}

type stubImageRepo struct {
	images map[string]*domain.Image
	seq    int
}

func newStubImageRepo(images ...*domain.Image) *stubImageRepo {
	r := &stubImageRepo{images: make(map[string]*domain.Image)}
	for _, img := range images {
		clone := *img
		r.images[img.ID] = &clone
	}
	return r
}

func (r *stubImageRepo) Create(_ context.Context, img *domain.Image) (*domain.Image, error) {
	r.seq++
	clone := *img
	clone.ID = fmt.Sprintf("image-%d", r.seq)
	r.images[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubImageRepo) FindByID(_ context.Context, id string) (*domain.Image, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *stubImageRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.Image, error) {
	out := []*domain.Image{}
	for _, img := range r.images {
		if img.OrderID == orderID {
			clone := *img
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubImageRepo) Update(_ context.Context, id string, upd ports.ImageUpdate) (*domain.Image, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	if upd.Caption != nil {
		img.Caption = *upd.Caption
	}
	if upd.Kind != nil {
		img.Kind = *upd.Kind
	}
	clone := *img
	return &clone, nil
}

func (r *stubImageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.images[id]; !ok {
		return domain.ErrImageNotFound
	}
	delete(r.images, id)
	return nil
}

func (r *stubImageRepo) DeleteByOrder(_ context.Context, orderID string) ([]string, error) {
	var ids []string
	for id, img := range r.images {
		if img.OrderID == orderID {
			ids = append(ids, id)
			delete(r.images, id)
		}
	}
	return ids, nil
}

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	seq      int
}

func newStubCommentRepo(comments ...*domain.Comment) *stubCommentRepo {
	r := &stubCommentRepo{comments: make(map[string]*domain.Comment)}
	for _, c := range comments {
		clone := *c
		r.comments[c.ID] = &clone
	}
	return r
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("comment-%d", r.seq)
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) ListByImage(_ context.Context, imageID string) ([]*domain.Comment, error) {
	out := []*domain.Comment{}
	for _, c := range r.comments {
		if c.ImageID == imageID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) UpdateText(_ context.Context, id, text string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Text = text
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) DeleteByImages(_ context.Context, imageIDs []string) error {
	for _, imageID := range imageIDs {
		for id, c := range r.comments {
			if c.ImageID == imageID {
				delete(r.comments, id)
			}
		}
	}
	return nil
}

type stubMessageRepo struct {
	messages []*domain.Message
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	clone := *m
	clone.ID = fmt.Sprintf("message-%d", len(r.messages)+1)
	r.messages = append(r.messages, &clone)
	out := clone
	return &out, nil
}

func (r *stubMessageRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.Message, error) {
	out := []*domain.Message{}
	for _, m := range r.messages {
		if m.OrderID == orderID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) DeleteByOrder(_ context.Context, orderID string) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.OrderID != orderID {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

type stubNotificationRepo struct {
	items     []*domain.Notification
	createErr error
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *n
	clone.ID = fmt.Sprintf("notification-%d", len(r.items)+1)
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.Notification, error) {
	out := []*domain.Notification{}
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if r.items[i].UserID == userID {
			clone := *r.items[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id string) (*domain.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			n.IsRead = true
			clone := *n
			return &clone, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

// forUser returns the messages recorded for userID, oldest first.
func (r *stubNotificationRepo) forUser(userID string) []string {
	var out []string
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n.Message)
		}
	}
	return out
}

type stubDenylist struct {
	revoked map[string]time.Duration
}

func (d *stubDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if d.revoked == nil {
		d.revoked = make(map[string]time.Duration)
	}
	d.revoked[jti] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d.revoked[jti]
	return ok, nil
}

type stubBlobStore struct {
	puts []ports.BlobObject
	data map[string][]byte
}

func (s *stubBlobStore) Put(_ context.Context, obj ports.BlobObject) (string, error) {
	b, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	if s.data == nil {
		s.data = make(map[string][]byte)
	}
	key := obj.Dir + "/" + obj.Filename
	s.data[key] = b
	s.puts = append(s.puts, obj)
	return "/storage/" + key, nil
}

func (s *stubBlobStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const (
	adminID    = "admin"
	landlordID = "landlord"
	workerID   = "worker"
	worker2ID  = "worker2"
	dualID     = "dual"
)

func fixtureUsers() []*domain.User {
	return []*domain.User{
		{ID: adminID, Name: "Admin", Email: "admin@airhost.no", Role: domain.RoleAdmin, CanLandlord: true, CanService: true, ActiveMode: domain.ModeLandlord, IsActive: true},
		{ID: landlordID, Name: "Utleier", Email: "utleier@airhost.no", Role: domain.RoleLandlord, CanLandlord: true, ActiveMode: domain.ModeLandlord, IsActive: true},
		{ID: workerID, Name: "Tjeneste", Email: "tjeneste@airhost.no", Role: domain.RoleService, CanService: true, ActiveMode: domain.ModeService, IsActive: true},
		{ID: worker2ID, Name: "Tjeneste To", Email: "tjeneste2@airhost.no", Role: domain.RoleService, CanService: true, ActiveMode: domain.ModeService, IsActive: true},
		{ID: dualID, Name: "Begge", Email: "begge@airhost.no", Role: domain.RoleLandlord, CanLandlord: true, CanService: true, ActiveMode: domain.ModeLandlord, IsActive: true},
	}
}

func actorAs(role domain.Role, id string) access.Actor {
	return access.Actor{UserID: id, Role: role}
}

var (
	asAdmin    = actorAs(domain.RoleAdmin, adminID)
	asLandlord = actorAs(domain.RoleLandlord, landlordID)
	asWorker   = actorAs(domain.RoleService, workerID)
	asWorker2  = actorAs(domain.RoleService, worker2ID)
)

func pendingOrder(id string) *domain.Order {
	return &domain.Order{
		ID:         id,
		Type:       domain.ServiceCleaning,
		Address:    "Karl Johans gate 12, Oslo",
		Date:       time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC),
		LandlordID: landlordID,
		Status:     domain.StatusPending,
	}
}

func assignedOrder(id, worker string, status domain.OrderStatus) *domain.Order {
	o := pendingOrder(id)
	o.AssignedToID = worker
	o.Status = status
	return o
}
