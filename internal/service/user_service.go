// FILE: internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"

	"ai-resume-be/pkg/events"
	pktNats "ai-resume-be/pkg/nats"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
	UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error)

	// Billing
	GetBillingInfo(ctx context.Context, userId uuid.UUID) (*dto.UserBillingResponse, error)
	UpdateBillingInfo(ctx context.Context, userId uuid.UUID, req dto.UserBillingUpdateRequest) error
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		AvatarURL: avatarURL,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	user.FullName = req.FullName
	user.UpdatedAt = time.Now()
	return repo.Update(ctx, user)
}

func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "USER_DELETED",
			Data: map[string]interface{}{
				"user_id":     userId,
				"occurred_at": time.Now(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_DELETED event: %v\n", err)
		}
	}

	return uow.UserRepository().Delete(ctx, userId)
}

func (s *userService) UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error) {
	if file.Size > 2*1024*1024 {
		return "", fmt.Errorf("file too large (max 2MB)")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	uploadDir := "./uploads/avatars"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", userId.String(), time.Now().Unix(), ext)
	dstPath := filepath.Join(uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	publicURL := fmt.Sprintf("%s/uploads/avatars/%s", baseURL, filename)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateAvatar(ctx, userId, publicURL); err != nil {
		return "", err
	}

	return publicURL, nil
}

// GetBillingInfo returns the user's default billing address for the
// Settings page. Returns nil when the user never checked out.
func (s *userService) GetBillingInfo(ctx context.Context, userId uuid.UUID) (*dto.UserBillingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	billing, err := uow.BillingRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("is_default", true),
	)
	if err != nil {
		return nil, err
	}
	if billing == nil {
		return nil, nil
	}

	return &dto.UserBillingResponse{
		Id:           billing.Id,
		FirstName:    billing.FirstName,
		LastName:     billing.LastName,
		Email:        billing.Email,
		Phone:        billing.Phone,
		AddressLine1: billing.AddressLine1,
		City:         billing.City,
		PostalCode:   billing.PostalCode,
		Country:      billing.Country,
	}, nil
}

func (s *userService) UpdateBillingInfo(ctx context.Context, userId uuid.UUID, req dto.UserBillingUpdateRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	billing, err := uow.BillingRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("is_default", true),
	)
	if err != nil {
		return err
	}

	isNew := billing == nil
	if isNew {
		billing = &entity.BillingAddress{
			Id:        uuid.New(),
			UserId:    userId,
			IsDefault: true,
			CreatedAt: time.Now(),
		}
	}

	billing.FirstName = req.FirstName
	billing.LastName = req.LastName
	billing.Email = req.Email
	billing.Phone = req.Phone
	billing.AddressLine1 = req.AddressLine1
	billing.City = req.City
	billing.PostalCode = req.PostalCode
	billing.Country = req.Country
	billing.UpdatedAt = time.Now()

	if isNew {
		return uow.BillingRepository().Create(ctx, billing)
	}
	return uow.BillingRepository().Update(ctx, billing)
}
