package scanjob

import (
	"context"
	"errors"

	"invoice-manager/entities"

	"gorm.io/gorm"
)

type (
	ScanJobRepository interface {
		CreateScanJob(ctx context.Context, job *entities.EmailScanJob) error
		GetScanJobByID(ctx context.Context, id string) (*entities.EmailScanJob, error)
		UpdateScanJob(ctx context.Context, job *entities.EmailScanJob) error
		GetScanJobs(ctx context.Context, userID string, page, limit int) ([]*entities.EmailScanJob, int64, error)
		GetActiveScanJob(ctx context.Context, userID string) (*entities.EmailScanJob, error)
	}

	scanJobRepository struct {
		db *gorm.DB
	}
)

func NewScanJobRepository(db *gorm.DB) ScanJobRepository {
	return &scanJobRepository{db: db}
}

func (r *scanJobRepository) CreateScanJob(ctx context.Context, job *entities.EmailScanJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *scanJobRepository) GetScanJobByID(ctx context.Context, id string) (*entities.EmailScanJob, error) {
	var job entities.EmailScanJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *scanJobRepository) UpdateScanJob(ctx context.Context, job *entities.EmailScanJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *scanJobRepository) GetScanJobs(ctx context.Context, userID string, page, limit int) ([]*entities.EmailScanJob, int64, error) {
	var jobs []*entities.EmailScanJob
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.EmailScanJob{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, count, nil
}

func (r *scanJobRepository) GetActiveScanJob(ctx context.Context, userID string) (*entities.EmailScanJob, error) {
	var job entities.EmailScanJob
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{StatusPending, StatusRunning}).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}
