// Package policy centralizes every allow/deny and scoping decision so no
// resource service implements its own ad hoc role check. The package is
// pure: it returns booleans and enums, never errors. Callers translate a
// denial into the appropriate failure.
package policy

// Role is the closed set of user roles, ordered by privilege.
type Role string

const (
	RoleDriver     Role = "DRIVER"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Level returns the hierarchy value of the role. Higher implies higher
// privilege for any check expressed as "at least".
func (r Role) Level() int {
	switch r {
	case RoleDriver:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	case RoleSuperAdmin:
		return 4
	}
	return 0
}

func (r Role) Valid() bool { return r.Level() > 0 }

// ParseRole converts free text into a Role. The core never accepts role
// values that are not in the closed set.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Action describes the kind of operation a caller wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource identifies the entity type a decision is about.
type Resource string

const (
	ResourceTrip        Resource = "trip"
	ResourceDriver      Resource = "driver"
	ResourceVehicle     Resource = "vehicle"
	ResourceAgency      Resource = "agency"
	ResourceHotel       Resource = "hotel"
	ResourceMaintenance Resource = "maintenance"
	ResourceUser        Resource = "user"
)

// Scope describes how a list/read must be restricted.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeOwn
)

// Ownable is implemented by entities whose visibility can be traced to a
// single owning user. Entities that cannot resolve their owner (missing
// preloads, no active assignment) return 0, which denies driver access.
type Ownable interface {
	OwnerUserID() uint
}

// HasMinimumRole reports whether role's hierarchy value is at least the
// highest of the required roles.
func HasMinimumRole(role Role, required ...Role) bool {
	if !role.Valid() {
		return false
	}
	max := 0
	for _, req := range required {
		if l := req.Level(); l > max {
			max = l
		}
	}
	return role.Level() >= max
}

// CanAccessResource reports whether the role may read the resource type
// at all. Agencies, hotels, maintenance records and users are hard-denied
// to drivers rather than scoped.
func CanAccessResource(role Role, res Resource) bool {
	if !role.Valid() {
		return false
	}
	switch res {
	case ResourceTrip, ResourceDriver, ResourceVehicle:
		return true
	default:
		return HasMinimumRole(role, RoleManager)
	}
}

// ScopeForRole returns ScopeOwn when the role only sees rows it owns.
// Only drivers are scoped, and only on trips, drivers and vehicles;
// resource types a driver cannot see at all are handled by
// CanAccessResource, not here.
func ScopeForRole(role Role, res Resource) Scope {
	if role != RoleDriver {
		return ScopeAll
	}
	switch res {
	case ResourceTrip, ResourceDriver, ResourceVehicle:
		return ScopeOwn
	}
	return ScopeAll
}

// CanViewEntity reports whether the caller may read a specific entity.
// Managers and above see everything; drivers only what they own.
func CanViewEntity(role Role, callerUserID uint, entity Ownable) bool {
	if HasMinimumRole(role, RoleManager) {
		return true
	}
	if role != RoleDriver || entity == nil {
		return false
	}
	owner := entity.OwnerUserID()
	return owner != 0 && owner == callerUserID
}

// CanMutateEntity reports whether the caller may perform a mutating
// action on the resource. For trips, every role may create (drivers are
// auto-assigned by the service) and drivers may update their own trip but
// never delete one. Every other resource type is manager-and-above only.
func CanMutateEntity(role Role, callerUserID uint, res Resource, entity Ownable, action Action) bool {
	if !role.Valid() {
		return false
	}
	if HasMinimumRole(role, RoleManager) {
		return true
	}
	if role != RoleDriver || res != ResourceTrip {
		return false
	}
	switch action {
	case ActionCreate:
		return true
	case ActionUpdate:
		if entity == nil {
			return false
		}
		owner := entity.OwnerUserID()
		return owner != 0 && owner == callerUserID
	}
	return false
}

// AssignableRoles returns the roles the caller may grant to other users.
// Nobody can grant SUPER_ADMIN through this path.
func AssignableRoles(role Role) []Role {
	switch role {
	case RoleSuperAdmin:
		return []Role{RoleDriver, RoleManager, RoleAdmin}
	case RoleAdmin:
		return []Role{RoleDriver, RoleManager}
	}
	return nil
}

// CanAssignRole reports whether the caller may set target as a user's role.
func CanAssignRole(role, target Role) bool {
	for _, r := range AssignableRoles(role) {
		if r == target {
			return true
		}
	}
	return false
}
