package policy

import (
	"clipvault/entities"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	publicVideo := &entities.Video{UserID: "owner", IsPublic: true}
	privateVideo := &entities.Video{UserID: "owner", IsPublic: false}

	tests := []struct {
		name    string
		actorID string
		video   *entities.Video
		op      Operation
		allowed bool
		reason  string
	}{
		{"anonymous views public", "", publicVideo, OpView, true, ""},
		{"anonymous views private", "", privateVideo, OpView, false, "not visible"},
		{"owner views private", "owner", privateVideo, OpView, true, ""},
		{"owner views public", "owner", publicVideo, OpView, true, ""},
		{"stranger views public", "stranger", publicVideo, OpView, true, ""},
		{"stranger views private", "stranger", privateVideo, OpView, false, "not visible"},

		{"owner toggles private", "owner", privateVideo, OpToggleVisibility, true, ""},
		{"owner toggles public", "owner", publicVideo, OpToggleVisibility, true, ""},
		{"stranger toggles public", "stranger", publicVideo, OpToggleVisibility, false, "forbidden"},
		{"stranger toggles private", "stranger", privateVideo, OpToggleVisibility, false, "forbidden"},
		{"anonymous toggles public", "", publicVideo, OpToggleVisibility, false, "forbidden"},
		{"anonymous toggles private", "", privateVideo, OpToggleVisibility, false, "forbidden"},

		{"owner deletes private", "owner", privateVideo, OpDelete, true, ""},
		{"owner deletes public", "owner", publicVideo, OpDelete, true, ""},
		{"stranger deletes public", "stranger", publicVideo, OpDelete, false, "forbidden"},
		{"stranger deletes private", "stranger", privateVideo, OpDelete, false, "forbidden"},
		{"anonymous deletes private", "", privateVideo, OpDelete, false, "forbidden"},

		{"nil record", "owner", nil, OpView, false, "not visible"},
		{"unknown operation", "owner", publicVideo, Operation("transfer"), false, "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.actorID, tt.video, tt.op)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

// An empty owner id on a record must not make anonymous callers owners.
func TestDecideEmptyActorNeverOwns(t *testing.T) {
	video := &entities.Video{UserID: "", IsPublic: false}

	assert.False(t, Decide("", video, OpView).Allowed)
	assert.False(t, Decide("", video, OpToggleVisibility).Allowed)
	assert.False(t, Decide("", video, OpDelete).Allowed)
}

func TestDecideIsDeterministic(t *testing.T) {
	video := &entities.Video{UserID: "owner", IsPublic: false}
	first := Decide("stranger", video, OpView)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Decide("stranger", video, OpView))
	}
}
