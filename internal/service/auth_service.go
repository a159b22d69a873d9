package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"go-catat-jualan/internal/model"
	"go-catat-jualan/internal/repository"
	"go-catat-jualan/pkg/jwt"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	// Authenticate verifies an access token and returns the user id.
	Authenticate(token string) (string, error)
	Me(ctx context.Context, userID string) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*model.UserResponse, error)
	ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ResetPasswordByUsername(ctx context.Context, username, newPassword string) error
}

type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// UpdateProfileRequest fields are optional; nil leaves the value unchanged
// and an empty string clears it.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

type AuthResponse struct {
	User  model.UserResponse `json:"user"`
	Token string             `json:"token"`
}

type ForgotPasswordResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token,omitempty"`
}

type authService struct {
	userRepo    repository.UserRepository
	tokens      *jwt.Issuer
	clock       Clock
	revealReset bool
}

type AuthOption func(*authService)

// WithResetTokenInResponse makes ForgotPassword return the reset token in its
// response. Only meant for development, where there is no mail transport.
func WithResetTokenInResponse(enabled bool) AuthOption {
	return func(s *authService) {
		s.revealReset = enabled
	}
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Issuer, clock Clock, opts ...AuthOption) AuthService {
	s := &authService{
		userRepo: userRepo,
		tokens:   tokens,
		clock:    clock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func checkNewPassword(password string) error {
	if password == "" {
		return invalid("Kata sandi baru wajib diisi")
	}
	if len(password) < MinPasswordLen {
		return invalid("Kata sandi minimal 6 karakter")
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// 1. Normalize & validate
	username := strings.TrimSpace(req.Username)
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	req.Email = email

	if username == "" {
		return nil, invalid("Username is required")
	}
	if req.Password == "" {
		return nil, invalid("Password is required")
	}
	if len(req.Password) < MinPasswordLen {
		return nil, invalid("Password must be at least 6 characters")
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Uniqueness (case-insensitive)
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if email != "" {
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	// 3. Persist
	user := &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		FullName:  fullName,
		Email:     email,
		CreatedAt: s.clock.Stamp(),
		Role:      model.RoleSeller,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 4. Issue token
	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	value := strings.TrimSpace(req.UsernameOrEmail)
	if value == "" || req.Password == "" {
		return nil, invalid("Username/email and password are required")
	}

	var (
		user *model.User
		err  error
	)
	if strings.Contains(value, "@") {
		user, err = s.userRepo.FindByEmail(ctx, value)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, value)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func (s *authService) Authenticate(token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		// token outlived its user
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*model.UserResponse, error) {
	var upd model.UserUpdate
	if req.FullName != nil {
		v := strings.TrimSpace(*req.FullName)
		upd.FullName = &v
	}
	if req.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*req.Email))
		if v != "" {
			if err := validate(&struct {
				Email string `validate:"email"`
			}{v}); err != nil {
				return nil, err
			}
			if other, err := s.userRepo.FindByEmail(ctx, v); err == nil && other.ID != userID {
				return nil, ErrEmailTaken
			} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
		upd.Email = &v
	}

	user, err := s.userRepo.Update(ctx, userID, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// ForgotPassword never reveals whether the email exists. Without
// WithResetTokenInResponse no token leaves the server.
func (s *authService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResponse, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if !s.revealReset || e == "" || !strings.Contains(e, "@") {
		return &ForgotPasswordResponse{OK: true}, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, e)
	if errors.Is(err, repository.ErrNotFound) {
		return &ForgotPasswordResponse{OK: true}, nil
	}
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.SignReset(user.ID)
	if err != nil {
		return nil, err
	}
	return &ForgotPasswordResponse{OK: true, Token: token}, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.VerifyReset(token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if err := checkNewPassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return invalid("Pengguna tidak ditemukan")
	}
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, newPassword)
}

func (s *authService) ResetPasswordByUsername(ctx context.Context, username, newPassword string) error {
	raw := strings.TrimSpace(username)
	if raw == "" {
		return invalid("Username wajib diisi")
	}
	if err := checkNewPassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByUsername(ctx, raw)
	if errors.Is(err, repository.ErrNotFound) {
		return invalid("Username tidak ditemukan")
	}
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, newPassword)
}

func (s *authService) setPassword(ctx context.Context, user *model.User, password string) error {
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if _, err := s.userRepo.Update(ctx, user.ID, model.UserUpdate{PasswordHash: &user.PasswordHash}); err != nil {
		return err
	}
	return nil
}
