package upload

import (
	"context"

	"invoice-manager/entities"

	"gorm.io/gorm"
)

type (
	UploadRepository interface {
		CreateUpload(ctx context.Context, file *entities.UploadedFile) error
		GetUploadByID(ctx context.Context, id string) (*entities.UploadedFile, error)
		UpdateUpload(ctx context.Context, file *entities.UploadedFile) error
		DeleteUpload(ctx context.Context, id string) error
		GetUploads(ctx context.Context, userID string, page, limit int) ([]*entities.UploadedFile, int64, error)
	}

	uploadRepository struct {
		db *gorm.DB
	}
)

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) CreateUpload(ctx context.Context, file *entities.UploadedFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *uploadRepository) GetUploadByID(ctx context.Context, id string) (*entities.UploadedFile, error) {
	var file entities.UploadedFile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *uploadRepository) UpdateUpload(ctx context.Context, file *entities.UploadedFile) error {
	return r.db.WithContext(ctx).Save(file).Error
}

func (r *uploadRepository) DeleteUpload(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.UploadedFile{}).Error
}

func (r *uploadRepository) GetUploads(ctx context.Context, userID string, page, limit int) ([]*entities.UploadedFile, int64, error) {
	var files []*entities.UploadedFile
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.UploadedFile{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&files).Error; err != nil {
		return nil, 0, err
	}

	return files, count, nil
}
