package services

import (
	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages accounts. Role grants follow the assignment
// ladder: admins may grant DRIVER and MANAGER, super admins additionally
// ADMIN, and nobody grants SUPER_ADMIN.
type UserService struct {
	Users *repo.UserRepo
}

func NewUserService(users *repo.UserRepo) *UserService {
	return &UserService{Users: users}
}

type UserCreateInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type UserUpdateInput struct {
	Email  *string `json:"email"`
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

func parseUserStatus(s string) (models.UserStatus, bool) {
	st := models.UserStatus(s)
	switch st {
	case models.UserActive, models.UserInactive, models.UserSuspended:
		return st, true
	}
	return "", false
}

func (s *UserService) List(caller Caller) ([]models.User, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceUser) {
		return nil, apperr.Unauthorized("cannot view users")
	}
	users, err := s.Users.List()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return users, nil
}

// Get returns a user account. Any caller may read their own account;
// other accounts require user resource access.
func (s *UserService) Get(id uint, caller Caller) (*models.User, error) {
	if id != caller.UserID && !policy.CanAccessResource(caller.Role, policy.ResourceUser) {
		return nil, apperr.Unauthorized("cannot view users")
	}
	user, err := s.Users.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

// Create adds an account with a role from the caller's assignable set.
func (s *UserService) Create(caller Caller, in UserCreateInput) (*models.User, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceUser) {
		return nil, apperr.Unauthorized("cannot create users")
	}

	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Email("email", in.Email, v)
	validation.Password("password", in.Password, v)
	if !v.Empty() {
		field, msg := v.First()
		return nil, apperr.Invalid(field, msg)
	}

	role, ok := policy.ParseRole(in.Role)
	if !ok {
		return nil, apperr.Invalid("role", "unknown role")
	}
	if !policy.CanAssignRole(caller.Role, role) {
		return nil, apperr.Invalidf("role", "cannot assign role %s", role)
	}

	existing, err := s.Users.ByEmail(in.Email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	user := &models.User{
		Email:    in.Email,
		Password: string(hash),
		Name:     in.Name,
		Phone:    in.Phone,
		Role:     role,
		Status:   models.UserActive,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, apperr.Storage(err)
	}
	return user, nil
}

func (s *UserService) Update(id uint, caller Caller, in UserUpdateInput) (*models.User, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceUser) {
		return nil, apperr.Unauthorized("cannot update users")
	}
	user, err := s.Users.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	if in.Role != nil {
		role, ok := policy.ParseRole(*in.Role)
		if !ok {
			return nil, apperr.Invalid("role", "unknown role")
		}
		if role != user.Role && !policy.CanAssignRole(caller.Role, role) {
			return nil, apperr.Invalidf("role", "cannot assign role %s", role)
		}
		user.Role = role
	}
	if in.Email != nil && *in.Email != user.Email {
		v := validation.Violations{}
		validation.Email("email", *in.Email, v)
		if !v.Empty() {
			field, msg := v.First()
			return nil, apperr.Invalid(field, msg)
		}
		existing, err := s.Users.ByEmail(*in.Email)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperr.Conflict("email already registered")
		}
		user.Email = *in.Email
	}
	if in.Status != nil {
		st, ok := parseUserStatus(*in.Status)
		if !ok {
			return nil, apperr.Invalid("status", "unknown status")
		}
		user.Status = st
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}

	if err := s.Users.Save(user); err != nil {
		return nil, apperr.Storage(err)
	}
	return user, nil
}

// Delete deactivates the account: soft delete plus INACTIVE status.
// Callers cannot delete themselves.
func (s *UserService) Delete(id uint, caller Caller) error {
	if !policy.CanAccessResource(caller.Role, policy.ResourceUser) {
		return apperr.Unauthorized("cannot delete users")
	}
	if id == caller.UserID {
		return apperr.Invalid("id", "cannot delete your own account")
	}
	user, err := s.Users.ByID(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if user == nil {
		return apperr.NotFound("user")
	}
	if err := s.Users.Deactivate(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// AssignableRoles reports which roles the caller may grant, for the
// user-management form.
func (s *UserService) AssignableRoles(caller Caller) []policy.Role {
	return policy.AssignableRoles(caller.Role)
}
