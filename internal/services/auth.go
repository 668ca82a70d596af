package services

import (
	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService covers self-service account flows: registration, login
// credential checks and password changes. Role-granting account
// management lives in UserService.
type AuthService struct {
	Users *repo.UserRepo
}

func NewAuthService(users *repo.UserRepo) *AuthService {
	return &AuthService{Users: users}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Register creates a self-service account. Self-registration always
// yields a DRIVER; privileged roles are granted through user management.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Email("email", in.Email, v)
	validation.Password("password", in.Password, v)
	if !v.Empty() {
		field, msg := v.First()
		return nil, apperr.Invalid(field, msg)
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
		Role:     policy.RoleDriver,
		Status:   models.UserActive,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, apperr.Storage(err)
	}
	return user, nil
}

// Login verifies the credentials and returns the account. Wrong email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.Unauthenticated("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthenticated("invalid credentials")
	}
	if user.Status != models.UserActive {
		return nil, apperr.Unauthenticated("account is not active")
	}
	return user, nil
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (s *AuthService) ChangePassword(caller Caller, in ChangePasswordInput) error {
	user, err := s.Users.ByID(caller.UserID)
	if err != nil {
		return apperr.Storage(err)
	}
	if user == nil {
		return apperr.NotFound("user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}
	v := validation.Violations{}
	validation.Password("new_password", in.NewPassword, v)
	if !v.Empty() {
		field, msg := v.First()
		return apperr.Invalid(field, msg)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storage(err)
	}
	return s.storeHash(user.ID, string(hash))
}

// ResetPassword sets a user's password without the current one. Admin
// path only, bounded by the role-assignment ladder: a caller may reset
// passwords only for users whose role they could grant.
func (s *AuthService) ResetPassword(caller Caller, userID uint, newPassword string) error {
	if !policy.CanAccessResource(caller.Role, policy.ResourceUser) {
		return apperr.Unauthorized("cannot reset passwords")
	}
	user, err := s.Users.ByID(userID)
	if err != nil {
		return apperr.Storage(err)
	}
	if user == nil {
		return apperr.NotFound("user")
	}
	if user.ID != caller.UserID && !policy.CanAssignRole(caller.Role, user.Role) {
		return apperr.Unauthorized("cannot reset this user's password")
	}
	v := validation.Violations{}
	validation.Password("new_password", newPassword, v)
	if !v.Empty() {
		field, msg := v.First()
		return apperr.Invalid(field, msg)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storage(err)
	}
	return s.storeHash(user.ID, string(hash))
}

func (s *AuthService) storeHash(userID uint, hash string) error {
	if err := s.Users.UpdatePassword(userID, hash); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
