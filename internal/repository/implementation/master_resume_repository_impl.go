package implementation

import (
	"context"
	"errors"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/mapper"
	"ai-resume-be/internal/model"
	"ai-resume-be/internal/repository/contract"
	"ai-resume-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MasterResumeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MasterResumeMapper
}

func NewMasterResumeRepository(db *gorm.DB) contract.MasterResumeRepository {
	return &MasterResumeRepositoryImpl{
		db:     db,
		mapper: mapper.NewMasterResumeMapper(),
	}
}

func (r *MasterResumeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert relies on the unique index on user_id so concurrent writers
// cannot produce two master rows for the same user.
func (r *MasterResumeRepositoryImpl) Upsert(ctx context.Context, res *entity.MasterResume) error {
	m := r.mapper.ToModel(res)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"resume", "parsed_from", "parsed_at", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*res = *r.mapper.ToEntity(m)
	return nil
}

func (r *MasterResumeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MasterResume, error) {
	var m model.MasterResume
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MasterResumeRepositoryImpl) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.MasterResume{}).Error
}
