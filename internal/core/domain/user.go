package domain

import "time"

// Role is the stored role of a user. For non-admins the role that actually
// governs a request is derived from capabilities and the active mode.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLandlord Role = "UTLEIER"
	RoleService  Role = "TJENESTE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLandlord, RoleService:
		return true
	}
	return false
}

// Mode is the persona a dual-capability user is currently acting as.
type Mode string

const (
	ModeLandlord Mode = "UTLEIER"
	ModeService  Mode = "TJENESTE"
)

func (m Mode) Valid() bool {
	return m == ModeLandlord || m == ModeService
}

// RegisterDual is the registration profile for users holding both personas.
const RegisterDual = "BEGGE"

// User models an account on the platform.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CanLandlord  bool      `json:"can_landlord"`
	CanService   bool      `json:"can_service"`
	ActiveMode   Mode      `json:"active_mode"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasLandlord reports the landlord capability. Admins hold every capability.
func (u *User) HasLandlord() bool {
	return u.Role == RoleAdmin || u.CanLandlord
}

// HasService reports the service capability. Admins hold every capability.
func (u *User) HasService() bool {
	return u.Role == RoleAdmin || u.CanService
}

// Profile is the capability set assigned to a new account.
type Profile struct {
	Role        Role
	CanLandlord bool
	CanService  bool
	ActiveMode  Mode
}

// ProfileFor maps a registration kind to the stored profile. An empty kind
// registers a landlord; BEGGE grants both personas starting in landlord mode.
func ProfileFor(kind string) (Profile, bool) {
	switch kind {
	case "", string(RoleLandlord):
		return Profile{Role: RoleLandlord, CanLandlord: true, ActiveMode: ModeLandlord}, true
	case string(RoleService):
		return Profile{Role: RoleService, CanService: true, ActiveMode: ModeService}, true
	case RegisterDual:
		return Profile{Role: RoleLandlord, CanLandlord: true, CanService: true, ActiveMode: ModeLandlord}, true
	case string(RoleAdmin):
		return Profile{Role: RoleAdmin, CanLandlord: true, CanService: true, ActiveMode: ModeLandlord}, true
	}
	return Profile{}, false
}
