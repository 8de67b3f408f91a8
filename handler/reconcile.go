package handler

import (
	"clipvault/constant"
	"clipvault/dto"
	"clipvault/repository"
	"clipvault/service"
	"context"
	"encoding/json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type ReconcileDependencies struct {
	Repo  repository.VideoRepository
	Media service.MediaStore
}

// ReconcileHandler finishes the failed leg of a two-phase mutation. Both
// legs are safe to replay: a missing row or a missing asset means a
// previous attempt already completed.
func ReconcileHandler(ctx context.Context, msg amqp.Delivery, deps ReconcileDependencies) error {
	var m dto.ReconcileMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal reconcile message")
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("video_id", m.VideoID.String()).
		Str("kind", string(m.Kind)).
		Msg("received reconcile message")

	switch m.Kind {
	case constant.ReconcileDanglingRecord:
		if _, err := deps.Repo.Delete(ctx, m.VideoID); err != nil {
			return err
		}
	case constant.ReconcileOrphanAsset:
		if err := deps.Media.Remove(ctx, m.PublicID); err != nil {
			return err
		}
	default:
		zerolog.Ctx(ctx).Warn().Str("kind", string(m.Kind)).Msg("unknown reconcile kind")
	}

	return nil
}
