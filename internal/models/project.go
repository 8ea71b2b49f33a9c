package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the authoring lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// StoryboardFrame is one visual beat of the project's video.
type StoryboardFrame struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Duration    int    `json:"duration,omitempty"`
	Timestamp   int    `json:"timestamp"`
}

// InteractionType classifies an embedded interactive element.
type InteractionType string

const (
	InteractionQuiz     InteractionType = "quiz"
	InteractionDecision InteractionType = "decision"
	InteractionInfo     InteractionType = "info"
)

// Interaction is an interactive element placed at a timestamp within a project.
type Interaction struct {
	ID          string          `json:"id"`
	Type        InteractionType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Options     []string        `json:"options,omitempty"`
	Timestamp   int             `json:"timestamp"`
}

// ProjectVoiceOver is a narration clip attached to a project timeline.
type ProjectVoiceOver struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoiceID   string `json:"voiceId"`
	Timestamp int    `json:"timestamp"`
	Duration  int    `json:"duration"`
	AudioURL  string `json:"audioUrl,omitempty"`
}

// Project is the unit of persistence: one authored training video.
// A nil ID marks an unsaved project; the ID is assigned by the database
// on the first successful save.
type Project struct {
	ID               *uuid.UUID         `json:"id,omitempty"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Script           string             `json:"script"`
	StoryboardFrames []StoryboardFrame  `json:"storyboardFrames"`
	SelectedAvatars  []string           `json:"selectedAvatars"`
	Interactions     []Interaction      `json:"interactions"`
	VoiceOvers       []ProjectVoiceOver `json:"voiceOvers"`
	Duration         int                `json:"duration"`
	Status           ProjectStatus      `json:"status"`
	LastSaved        *time.Time         `json:"lastSaved,omitempty"`
}
