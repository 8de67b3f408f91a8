package repository

import (
	"clipvault/entities"
	"context"
	"database/sql"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type VideoRepository interface {
	Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error
	Create(ctx context.Context, video *entities.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error)
	ListByOwner(ctx context.Context, userID string) ([]*entities.Video, error)
	ListPublic(ctx context.Context) ([]*entities.Video, error)
	UpdateVisibility(ctx context.Context, id uuid.UUID, isPublic bool) (*entities.Video, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) VideoRepository {
	gormDB, _ := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		},
	)
	return &repo{
		db: gormDB,
	}
}

func (r *repo) getDB() *gorm.DB {
	return r.db
}

func (r *repo) Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return r.getDB().Transaction(func(tx *gorm.DB) error {
		err := callback(ctx)
		if err != nil {
			return err
		}
		return nil
	}, opts...)
}

func (r *repo) Create(ctx context.Context, video *entities.Video) error {
	err := r.getDB().Create(video).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	video := &entities.Video{}
	err := r.getDB().First(video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return video, nil
}

// id desc keeps the order stable when two rows share a created_at.
func (r *repo) ListByOwner(ctx context.Context, userID string) ([]*entities.Video, error) {
	var videos []*entities.Video
	err := r.getDB().Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repo) ListPublic(ctx context.Context) ([]*entities.Video, error) {
	var videos []*entities.Video
	err := r.getDB().Where("is_public = ?", true).Order("created_at DESC, id DESC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repo) UpdateVisibility(ctx context.Context, id uuid.UUID, isPublic bool) (*entities.Video, error) {
	video := &entities.Video{}
	err := r.getDB().First(video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	video.IsPublic = isPublic
	err = r.getDB().Save(video).Error
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.getDB().Delete(&entities.Video{}, "id = ?", id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
