package app

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/puthiwat7/UniMart/internal/clock"
	"github.com/puthiwat7/UniMart/internal/domain"
)

// UserRepository is the account storage shared by auth and profile flows.
type UserRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	UpdatePaymentQR(ctx context.Context, userID, paymentQR string) error
}

type AuthService struct {
	repo     UserRepository
	clock    clock.Clock
	secret   []byte
	tokenTTL time.Duration
}

const defaultTokenTTL = 7 * 24 * time.Hour
const bcryptCost = 10

func NewAuthService(repo UserRepository, clk clock.Clock, secret []byte, opts ...AuthServiceOption) *AuthService {
	svc := &AuthService{
		repo:     repo,
		clock:    clk,
		secret:   secret,
		tokenTTL: defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AuthServiceOption func(*AuthService)

// WithTokenTTL overrides the default bearer-token lifetime.
func WithTokenTTL(d time.Duration) AuthServiceOption {
	return func(s *AuthService) {
		if d > 0 {
			s.tokenTTL = d
		}
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	StudentID string
	College   string
	Phone     string
}

// Register creates an account and returns it with a signed bearer token.
// The duplicate check and insert run in one transaction; a concurrent
// insert still surfaces as ErrEmailTaken through the unique index.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           newID(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		StudentID:    in.StudentID,
		College:      in.College,
		Phone:        in.Phone,
		CreatedAt:    s.clock.Now(),
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetUserByEmail(txCtx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailTaken
		}
		return s.repo.CreateUser(txCtx, user)
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login checks credentials and returns the account with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, "", err
	}
	if user == nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return *user, token, nil
}

// VerifyToken returns the user ID a bearer token was issued for.
func (s *AuthService) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
