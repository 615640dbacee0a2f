package domain

import "time"

// Role controls what a profile may see.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile is an authenticated user of the system.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfile creates a profile with the given role.
func NewProfile(name, email string, role Role) Profile {
	return Profile{
		Name:  name,
		Email: email,
		Role:  role,
	}
}

// IsAdmin reports whether the profile has cross-user visibility.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the profile may read or write an entity owned by ownerID.
func (p Profile) CanAccess(ownerID int64) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// OwnerScope returns the owner filter to apply to searches, nil for admins.
func (p Profile) OwnerScope() *int64 {
	if p.IsAdmin() {
		return nil
	}
	id := p.ID
	return &id
}
