package app

import (
	"context"
	"strings"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/user"
	"campushire/internal/security"
)

type AuthService struct {
	users    user.Repository
	jwt      *security.JWTProvider
	tokenTTL time.Duration
}

func NewAuthService(users user.Repository, jwt *security.JWTProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwt: jwt, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Branch   string
	Batch    string
	CGR      float64
}

type AuthResult struct {
	User      user.User `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "email is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if input.CGR < 0 || input.CGR > 10 {
		fields["cgr"] = "cgr must be between 0 and 10"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleStudent,
		Branch:       input.Branch,
		Batch:        input.Batch,
		CGR:          input.CGR,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(*created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	return s.issue(*account)
}

func (s *AuthService) GetProfile(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile change; nil fields keep their
// stored values.
func (s *AuthService) UpdateProfile(ctx context.Context, userID common.UUID, patch user.ProfileUpdate) (*user.User, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		current.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Branch != nil {
		current.Branch = *patch.Branch
	}
	if patch.Batch != nil {
		current.Batch = *patch.Batch
	}
	if patch.CGR != nil {
		if *patch.CGR < 0 || *patch.CGR > 10 {
			return nil, common.NewValidationError("invalid profile", map[string]string{"cgr": "cgr must be between 0 and 10"})
		}
		current.CGR = *patch.CGR
	}
	if patch.ResumeLink != nil {
		current.ResumeLink = *patch.ResumeLink
	}
	if patch.ProfilePicture != nil {
		current.ProfilePicture = *patch.ProfilePicture
	}
	return s.users.Update(ctx, *current)
}

func (s *AuthService) issue(account user.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &AuthResult{User: account, Token: token, ExpiresAt: expiresAt}, nil
}
