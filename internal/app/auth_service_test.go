package app

import (
	"context"
	"testing"
	"time"

	"github.com/puthiwat7/UniMart/internal/clock"
	"github.com/puthiwat7/UniMart/internal/domain"
)

var testSecret = []byte("test-secret")

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	t.Run("creates account and issues a verifiable token", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, clock.NewFixed(now), testSecret)

		user, token, err := svc.Register(context.Background(), RegisterInput{
			Email:     "alex@link.cuhk.edu.hk",
			Password:  "hunter22",
			Name:      "Alex Wong",
			StudentID: "1155001122",
			College:   "Shaw",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if user.ID == "" {
			t.Fatalf("expected user ID to be set")
		}
		if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
			t.Fatalf("password must be stored hashed")
		}

		got, err := svc.VerifyToken(token)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if got != user.ID {
			t.Fatalf("token subject %s, want %s", got, user.ID)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, clock.NewFixed(now), testSecret)

		in := RegisterInput{Email: "alex@link.cuhk.edu.hk", Password: "hunter22"}
		if _, _, err := svc.Register(context.Background(), in); err != nil {
			t.Fatalf("first register: %v", err)
		}
		if _, _, err := svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, clock.NewFixed(now), testSecret)

		if _, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c"}); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, clock.NewFixed(now), testSecret)

	registered, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alex@link.cuhk.edu.hk",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), "alex@link.cuhk.edu.hk", "hunter22")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if user.ID != registered.ID {
			t.Fatalf("expected user %s, got %s", registered.ID, user.ID)
		}
		if _, err := svc.VerifyToken(token); err != nil {
			t.Fatalf("verify: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "alex@link.cuhk.edu.hk", "wrong"); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "nobody@link.cuhk.edu.hk", "hunter22"); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	t.Run("garbage token rejected", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), clock.NewFixed(now), testSecret)
		if _, err := svc.VerifyToken("not-a-jwt"); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		issuer := NewAuthService(repo, clock.NewFixed(now), testSecret, WithTokenTTL(time.Hour))
		_, token, err := issuer.Register(context.Background(), RegisterInput{
			Email: "alex@link.cuhk.edu.hk", Password: "hunter22",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		later := NewAuthService(repo, clock.NewFixed(now.Add(2*time.Hour)), testSecret)
		if _, err := later.VerifyToken(token); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
		}
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := NewAuthService(newFakeUserRepo(), clock.NewFixed(now), []byte("other-secret"))
		_, token, err := other.Register(context.Background(), RegisterInput{
			Email: "alex@link.cuhk.edu.hk", Password: "hunter22",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		svc := NewAuthService(newFakeUserRepo(), clock.NewFixed(now), testSecret)
		if _, err := svc.VerifyToken(token); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePaymentQR(_ context.Context, userID, paymentQR string) error {
	user, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PaymentQR = paymentQR
	f.users[userID] = user
	return nil
}
