package dto

import (
	"clipvault/constant"
	"github.com/google/uuid"
)

type ToggleVisibilityRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

type DeleteVideoRequest struct {
	PublicID string `json:"mediaRef"`
}

// ReconcileMessage asks the reconcile worker to finish the failed leg of
// a two-phase mutation.
type ReconcileMessage struct {
	VideoID  uuid.UUID              `json:"videoId"`
	PublicID string                 `json:"publicId"`
	Kind     constant.ReconcileKind `json:"kind"`
}
