package app

import (
	"context"

	"github.com/puthiwat7/UniMart/internal/domain"
)

type ProfileService struct {
	repo UserRepository
}

func NewProfileService(repo UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (domain.User, error) {
	return s.repo.GetUser(ctx, userID)
}

type UpdateProfileInput struct {
	Name      string
	StudentID string
	Email     string
	College   string
	Phone     string
}

// Update rewrites the editable profile fields. An email change is checked
// for uniqueness in the same transaction as the write.
func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (domain.User, error) {
	if in.College != "" && domain.BuildingsFor(in.College) == nil {
		return domain.User{}, domain.ErrUnknownCollege
	}

	var updated domain.User
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.GetUser(txCtx, userID)
		if err != nil {
			return err
		}

		if in.Email != "" && in.Email != user.Email {
			existing, err := s.repo.GetUserByEmail(txCtx, in.Email)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != userID {
				return domain.ErrEmailTaken
			}
			user.Email = in.Email
		}
		user.Name = in.Name
		user.StudentID = in.StudentID
		user.College = in.College
		user.Phone = in.Phone

		if err := s.repo.UpdateUser(txCtx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

// SetPaymentQR stores the buyer's payment-receiving QR image. An empty
// image is rejected; having a QR on file is what opens the order gate.
func (s *ProfileService) SetPaymentQR(ctx context.Context, userID, paymentQR string) error {
	if paymentQR == "" {
		return domain.ErrPaymentQRRequired
	}
	return s.repo.UpdatePaymentQR(ctx, userID, paymentQR)
}
