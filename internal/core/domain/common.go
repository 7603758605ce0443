package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Actor ID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // Actor ID
}

// stamp records who touched the entity and when.
func (a *AuditFields) stamp(actor Actor, at time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = at
		a.CreatedBy = actor.ID
	}
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actor.ID
}

// ActorRole tells customers, internal staff and the system apart.
type ActorRole string

const (
	RoleUser          ActorRole = "USER"
	RoleInternal      ActorRole = "INTERNAL"
	RoleAdministrator ActorRole = "ADMINISTRATOR"
	RoleSystem        ActorRole = "SYSTEM"
)

// IsValid reports whether r is a known role.
func (r ActorRole) IsValid() bool {
	return r == RoleUser || r.IsStaff()
}

// IsStaff reports roles allowed to act on any account.
func (r ActorRole) IsStaff() bool {
	switch r {
	case RoleInternal, RoleAdministrator, RoleSystem:
		return true
	}
	return false
}

// MayActOn reports whether the actor may act on accountID. Customers act only
// on their own account.
func (a Actor) MayActOn(accountID string) bool {
	if a.Role.IsStaff() {
		return true
	}
	return a.Role == RoleUser && a.ID != "" && a.ID == accountID
}

// Actor identifies who performs a use case. It is passed explicitly to every
// mutating operation.
type Actor struct {
	ID   string    `json:"id"`
	Role ActorRole `json:"role"`
}

// SystemActor is used by batch passes.
var SystemActor = Actor{ID: "system", Role: RoleSystem}

// NewUserActor returns a customer actor.
func NewUserActor(id string) Actor {
	return Actor{ID: id, Role: RoleUser}
}
