package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-resume-be/internal/apperrors"
	"ai-resume-be/pkg/ai"
	"ai-resume-be/pkg/resume"
)

func newMasterFixture() (*memFactory, *stubEnhancer, MasterResumeService) {
	factory := newMemFactory()
	enhancer := &stubEnhancer{}
	return factory, enhancer, NewMasterResumeService(factory, enhancer, nopLogger{})
}

func TestUploadAndExtractStoresMasterResume(t *testing.T) {
	factory, enhancer, svc := newMasterFixture()
	userId := uuid.New()

	enhancer.extractFn = func(input ai.ExtractInput) (*resume.Resume, error) {
		assert.Contains(t, input.Text, "Grace Hopper")
		assert.Empty(t, input.ImageBase64)
		return &resume.Resume{Name: "Grace Hopper", Summary: "Compiler pioneer."}, nil
	}

	resp, err := svc.UploadAndExtract(context.Background(), userId, "cv.txt", []byte("Grace Hopper\nCompiler pioneer."))
	require.NoError(t, err)
	assert.Equal(t, "cv.txt", resp.ParsedFrom)
	require.NotNil(t, resp.ParsedAt)

	require.Len(t, factory.store.masters, 1)
	master := factory.store.masters[0]
	assert.Equal(t, userId, master.UserId)
	assert.Equal(t, "Grace Hopper", master.Resume.Name)
}

func TestUploadAndExtractRoutesImagesToVision(t *testing.T) {
	_, enhancer, svc := newMasterFixture()

	enhancer.extractFn = func(input ai.ExtractInput) (*resume.Resume, error) {
		assert.Empty(t, input.Text)
		assert.NotEmpty(t, input.ImageBase64)
		return &resume.Resume{Name: "Scanned"}, nil
	}

	_, err := svc.UploadAndExtract(context.Background(), uuid.New(), "scan.png", []byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
}

func TestUploadAndExtractRejectsEmptyFile(t *testing.T) {
	_, _, svc := newMasterFixture()

	_, err := svc.UploadAndExtract(context.Background(), uuid.New(), "cv.txt", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUploadAndExtractProviderFailureStoresNothing(t *testing.T) {
	factory, enhancer, svc := newMasterFixture()

	enhancer.extractFn = func(ai.ExtractInput) (*resume.Resume, error) {
		return nil, errors.New("model offline")
	}

	_, err := svc.UploadAndExtract(context.Background(), uuid.New(), "cv.txt", []byte("plain text body"))
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	assert.Empty(t, factory.store.masters)
}

func TestSaveManualRejectsEmptyResume(t *testing.T) {
	_, _, svc := newMasterFixture()

	_, err := svc.SaveManual(context.Background(), uuid.New(), &resume.Resume{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
