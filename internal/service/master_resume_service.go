// FILE: internal/service/master_resume_service.go
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"
	"time"

	"code.sajari.com/docconv"
	"github.com/google/uuid"

	"ai-resume-be/internal/apperrors"
	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"
	"ai-resume-be/pkg/ai"
	"ai-resume-be/pkg/resume"
)

type MasterResumeService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.MasterResumeResponse, error)
	SaveManual(ctx context.Context, userId uuid.UUID, res *resume.Resume) (*dto.MasterResumeResponse, error)

	// UploadAndExtract parses an uploaded file (PDF, DOCX, plain text, or
	// an image) into structured resume data and stores it as the user's
	// master resume.
	UploadAndExtract(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.MasterResumeResponse, error)
}

type masterResumeService struct {
	uowFactory unitofwork.RepositoryFactory
	enhancer   ai.Enhancer
	logger     logger.ILogger
}

func NewMasterResumeService(uowFactory unitofwork.RepositoryFactory, enhancer ai.Enhancer, log logger.ILogger) MasterResumeService {
	return &masterResumeService{
		uowFactory: uowFactory,
		enhancer:   enhancer,
		logger:     log,
	}
}

func (s *masterResumeService) Get(ctx context.Context, userId uuid.UUID) (*dto.MasterResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	master, err := uow.MasterResumeRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, apperrors.NotFoundf("master resume for user %s", userId)
	}

	return masterResumeResponse(master), nil
}

func (s *masterResumeService) SaveManual(ctx context.Context, userId uuid.UUID, res *resume.Resume) (*dto.MasterResumeResponse, error) {
	if res.IsEmpty() {
		return nil, apperrors.Validationf("resume must not be empty")
	}

	now := time.Now()
	master := &entity.MasterResume{
		Id:         uuid.New(),
		UserId:     userId,
		Resume:     res,
		ParsedFrom: "manual",
		ParsedAt:   &now,
		CreatedAt:  now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MasterResumeRepository().Upsert(ctx, master); err != nil {
		return nil, err
	}

	return masterResumeResponse(master), nil
}

func (s *masterResumeService) UploadAndExtract(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.MasterResumeResponse, error) {
	if len(data) == 0 {
		return nil, apperrors.Validationf("uploaded file is empty")
	}

	aiCtx, cancel := context.WithTimeout(ctx, constant.EnhanceTimeoutSeconds*time.Second)
	defer cancel()

	input, err := s.extractInput(filename, data)
	if err != nil {
		return nil, err
	}

	extracted, err := s.enhancer.ExtractResume(aiCtx, input)
	if err != nil {
		s.logger.Error("master_resume", "extraction failed", map[string]interface{}{
			"user_id":  userId.String(),
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, apperrors.ErrProviderUnavailable
	}
	if extracted.IsEmpty() {
		return nil, apperrors.Validationf("no resume content found in %s", filename)
	}

	now := time.Now()
	master := &entity.MasterResume{
		Id:         uuid.New(),
		UserId:     userId,
		Resume:     extracted,
		ParsedFrom: filepath.Base(filename),
		ParsedAt:   &now,
		CreatedAt:  now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MasterResumeRepository().Upsert(ctx, master); err != nil {
		return nil, err
	}

	return masterResumeResponse(master), nil
}

// extractInput routes images straight to the vision model and everything
// else through document-to-text conversion.
func (s *masterResumeService) extractInput(filename string, data []byte) (ai.ExtractInput, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ai.ExtractInput{ImageBase64: base64.StdEncoding.EncodeToString(data)}, nil
	case ".txt", ".md":
		return ai.ExtractInput{Text: string(data)}, nil
	}

	mimeType := docconv.MimeTypeByExtension(filename)
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, true)
	if err != nil {
		return ai.ExtractInput{}, apperrors.Validationf("could not read %s: unsupported or corrupt file", filepath.Base(filename))
	}

	text := strings.TrimSpace(res.Body)
	if text == "" {
		return ai.ExtractInput{}, apperrors.Validationf("no text found in %s", filepath.Base(filename))
	}

	return ai.ExtractInput{Text: text}, nil
}

func masterResumeResponse(master *entity.MasterResume) *dto.MasterResumeResponse {
	return &dto.MasterResumeResponse{
		Resume:     master.Resume,
		ParsedFrom: master.ParsedFrom,
		ParsedAt:   master.ParsedAt,
	}
}
