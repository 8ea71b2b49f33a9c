package models

import (
	"time"

	"github.com/google/uuid"
)

// VoiceSettings are the tuning knobs captured when a voice is cloned.
type VoiceSettings map[string]float64

// VoiceOver is a cloned voice stored in the user's voice library,
// with its sample transcript and generated audio.
type VoiceOver struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"-"`
	Name      string        `json:"name"`
	AvatarID  *uuid.UUID    `json:"avatarId,omitempty"`
	AudioURL  string        `json:"audioUrl"`
	Transcript string       `json:"transcript"`
	Duration  int           `json:"duration"`
	Settings  VoiceSettings `json:"settings"`
	CreatedAt time.Time     `json:"createdAt"`
	Avatar    *Avatar       `json:"avatar,omitempty"`
}

// VoiceAnalysis holds the scoring produced by the voice analyzer.
type VoiceAnalysis struct {
	Clarity         int      `json:"clarity"`
	Emotion         int      `json:"emotion"`
	Pace            int      `json:"pace"`
	Engagement      int      `json:"engagement"`
	Recommendations []string `json:"recommendations"`
}
