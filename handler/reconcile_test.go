package handler

import (
	"clipvault/constant"
	"clipvault/dto"
	"clipvault/entities"
	"clipvault/service"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reconcileRepo struct {
	videos  map[uuid.UUID]*entities.Video
	deleted []uuid.UUID
}

func (r *reconcileRepo) Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return callback(ctx)
}

func (r *reconcileRepo) Create(ctx context.Context, video *entities.Video) error {
	r.videos[video.ID] = video
	return nil
}

func (r *reconcileRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return video, nil
}

func (r *reconcileRepo) ListByOwner(ctx context.Context, userID string) ([]*entities.Video, error) {
	return nil, nil
}

func (r *reconcileRepo) ListPublic(ctx context.Context) ([]*entities.Video, error) {
	return nil, nil
}

func (r *reconcileRepo) UpdateVisibility(ctx context.Context, id uuid.UUID, isPublic bool) (*entities.Video, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *reconcileRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.deleted = append(r.deleted, id)
	if _, ok := r.videos[id]; !ok {
		return 0, nil
	}
	delete(r.videos, id)
	return 1, nil
}

type reconcileMedia struct {
	removed []string
}

func (m *reconcileMedia) Upload(ctx context.Context, file io.Reader, fileName string) (*service.UploadResult, error) {
	return nil, nil
}

func (m *reconcileMedia) Remove(ctx context.Context, publicID string) error {
	m.removed = append(m.removed, publicID)
	return nil
}

func delivery(t *testing.T, msg dto.ReconcileMessage) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return amqp.Delivery{Body: body}
}

func TestReconcileDanglingRecord(t *testing.T) {
	videoID := uuid.New()
	repo := &reconcileRepo{videos: map[uuid.UUID]*entities.Video{
		videoID: {ID: videoID},
	}}
	deps := ReconcileDependencies{Repo: repo, Media: &reconcileMedia{}}

	err := ReconcileHandler(context.Background(), delivery(t, dto.ReconcileMessage{
		VideoID: videoID,
		Kind:    constant.ReconcileDanglingRecord,
	}), deps)

	require.NoError(t, err)
	assert.Empty(t, repo.videos)
}

// A row already gone means a previous replay finished the job.
func TestReconcileDanglingRecordAlreadyGone(t *testing.T) {
	repo := &reconcileRepo{videos: map[uuid.UUID]*entities.Video{}}
	deps := ReconcileDependencies{Repo: repo, Media: &reconcileMedia{}}

	err := ReconcileHandler(context.Background(), delivery(t, dto.ReconcileMessage{
		VideoID: uuid.New(),
		Kind:    constant.ReconcileDanglingRecord,
	}), deps)

	assert.NoError(t, err)
}

func TestReconcileOrphanAsset(t *testing.T) {
	media := &reconcileMedia{}
	deps := ReconcileDependencies{
		Repo:  &reconcileRepo{videos: map[uuid.UUID]*entities.Video{}},
		Media: media,
	}

	err := ReconcileHandler(context.Background(), delivery(t, dto.ReconcileMessage{
		VideoID:  uuid.New(),
		PublicID: "videos/orphan.mp4",
		Kind:     constant.ReconcileOrphanAsset,
	}), deps)

	require.NoError(t, err)
	assert.Equal(t, []string{"videos/orphan.mp4"}, media.removed)
}

func TestReconcileMalformedMessage(t *testing.T) {
	deps := ReconcileDependencies{
		Repo:  &reconcileRepo{videos: map[uuid.UUID]*entities.Video{}},
		Media: &reconcileMedia{},
	}

	err := ReconcileHandler(context.Background(), amqp.Delivery{Body: []byte("not json")}, deps)

	assert.Error(t, err)
}
