package service

import (
	"clipvault/config"
	"clipvault/constant"
	"clipvault/dto"
	"clipvault/entities"
	"clipvault/policy"
	"clipvault/repository"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"io"
)

type IngestInput struct {
	File        io.Reader
	FileName    string
	Size        int64
	Title       string
	Description string
	IsPublic    bool
}

type VideoService interface {
	Ingest(ctx context.Context, actorID string, in IngestInput) (*entities.Video, error)
	ToggleVisibility(ctx context.Context, actorID string, videoID uuid.UUID, isPublic bool) (*entities.Video, error)
	Delete(ctx context.Context, actorID string, videoID uuid.UUID, publicID string) (*entities.Video, error)
	ListOwned(ctx context.Context, actorID string) ([]*entities.Video, error)
	ListPublic(ctx context.Context) ([]*entities.Video, error)
}

// ReconcilePublisher hands partial-failure work to the reconcile queue.
type ReconcilePublisher interface {
	Publish(ctx context.Context, body interface{}) error
}

type videoService struct {
	repo      repository.VideoRepository
	media     MediaStore
	reconcile ReconcilePublisher
	cfg       *config.Config
}

func NewService(repo repository.VideoRepository, media MediaStore, reconcile ReconcilePublisher, cfg *config.Config) VideoService {
	return &videoService{
		repo:      repo,
		media:     media,
		reconcile: reconcile,
		cfg:       cfg,
	}
}

func (s *videoService) Ingest(ctx context.Context, actorID string, in IngestInput) (*entities.Video, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}
	if in.Size > s.cfg.Upload.MaxBytes {
		return nil, ErrPayloadTooLarge
	}

	zerolog.Ctx(ctx).Info().Str("user_id", actorID).Int64("size", in.Size).Msg("ingesting upload")
	result, err := s.media.Upload(ctx, in.File, in.FileName)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to store media asset")
		return nil, err
	}

	video := &entities.Video{
		ID:             uuid.New(),
		UserID:         actorID,
		Title:          in.Title,
		Description:    in.Description,
		IsPublic:       in.IsPublic,
		PublicID:       result.PublicID,
		OriginalSize:   in.Size,
		CompressedSize: result.CompressedSize,
		Duration:       result.Duration,
	}

	if err = s.repo.Create(ctx, video); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("public_id", result.PublicID).Msg("failed to create video record, releasing asset")
		if removeErr := s.media.Remove(ctx, result.PublicID); removeErr != nil {
			s.publishReconcile(ctx, dto.ReconcileMessage{
				VideoID:  video.ID,
				PublicID: result.PublicID,
				Kind:     constant.ReconcileOrphanAsset,
			})
			return nil, errors.Join(ErrPartialFailure, err)
		}
		return nil, errors.Join(ErrExternalService, err)
	}

	zerolog.Ctx(ctx).Info().Str("video_id", video.ID.String()).Msg("video ingested")
	return video, nil
}

func (s *videoService) ToggleVisibility(ctx context.Context, actorID string, videoID uuid.UUID, isPublic bool) (*entities.Video, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}

	video, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrExternalService, err)
	}

	if d := policy.Decide(actorID, video, policy.OpToggleVisibility); !d.Allowed {
		return nil, ErrForbidden
	}

	// Writing the same value twice is a no-op update, so replays are safe.
	updated, err := s.repo.UpdateVisibility(ctx, videoID, isPublic)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrExternalService, err)
	}

	zerolog.Ctx(ctx).Info().Str("video_id", videoID.String()).Bool("is_public", isPublic).Msg("visibility updated")
	return updated, nil
}

// Delete removes the media asset first; the record is deleted only
// after the asset is gone.
func (s *videoService) Delete(ctx context.Context, actorID string, videoID uuid.UUID, publicID string) (*entities.Video, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}

	video, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrExternalService, err)
	}

	if d := policy.Decide(actorID, video, policy.OpDelete); !d.Allowed {
		return nil, ErrForbidden
	}

	// The record is authoritative for which asset to release; a caller
	// supplied mediaRef only has to agree with it.
	if publicID != "" && publicID != video.PublicID {
		return nil, ErrValidation
	}

	if err = s.media.Remove(ctx, video.PublicID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("video_id", videoID.String()).Msg("media delete failed, keeping record")
		return nil, err
	}

	rows, err := s.repo.Delete(ctx, videoID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("video_id", videoID.String()).Msg("record delete failed after media delete")
		s.publishReconcile(ctx, dto.ReconcileMessage{
			VideoID:  videoID,
			PublicID: video.PublicID,
			Kind:     constant.ReconcileDanglingRecord,
		})
		return nil, errors.Join(ErrPartialFailure, err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	zerolog.Ctx(ctx).Info().Str("video_id", videoID.String()).Msg("video deleted")
	return video, nil
}

func (s *videoService) ListOwned(ctx context.Context, actorID string) ([]*entities.Video, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}

	videos, err := s.repo.ListByOwner(ctx, actorID)
	if err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}
	if videos == nil {
		videos = []*entities.Video{}
	}
	return videos, nil
}

func (s *videoService) ListPublic(ctx context.Context) ([]*entities.Video, error) {
	videos, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}
	if videos == nil {
		videos = []*entities.Video{}
	}
	return videos, nil
}

func (s *videoService) publishReconcile(ctx context.Context, msg dto.ReconcileMessage) {
	if s.reconcile == nil {
		return
	}
	if err := s.reconcile.Publish(ctx, msg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("video_id", msg.VideoID.String()).Str("kind", string(msg.Kind)).Msg("failed to publish reconcile message")
	}
}
