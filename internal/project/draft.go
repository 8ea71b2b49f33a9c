package project

import (
	"math"
	"strings"

	"studio-server/internal/models"
)

// wordsPerMinute is the narration speed used to estimate video duration
// from a script.
const wordsPerMinute = 150

// minScriptDuration is the floor applied to non-empty scripts, in seconds.
const minScriptDuration = 30

// Draft is an immutable in-session snapshot of a content project. Mutating
// methods return a new Draft and never touch the receiver, so snapshots can
// be handed out without locking.
type Draft struct {
	project models.Project
}

// NewDraft returns an empty draft in the initial state.
func NewDraft() *Draft {
	return &Draft{
		project: models.Project{
			Title:            "",
			Description:      "",
			Script:           "",
			StoryboardFrames: []models.StoryboardFrame{},
			SelectedAvatars:  []string{},
			Interactions:     []models.Interaction{},
			VoiceOvers:       []models.ProjectVoiceOver{},
			Duration:         0,
			Status:           models.ProjectStatusDraft,
		},
	}
}

// FromProject builds a draft from a persisted project.
func FromProject(p *models.Project) *Draft {
	return &Draft{project: *cloneProject(p)}
}

// Project returns an independent copy of the draft's current state.
func (d *Draft) Project() *models.Project {
	return cloneProject(&d.project)
}

// EstimateScriptDuration returns the estimated narration time for a script
// in seconds. A blank script estimates to zero.
func EstimateScriptDuration(script string) int {
	words := strings.Fields(script)
	if len(words) == 0 {
		return 0
	}
	estimated := int(math.Round(float64(len(words)) / wordsPerMinute * 60))
	if estimated < minScriptDuration {
		return minScriptDuration
	}
	return estimated
}

// WithTitle returns a draft with the title replaced.
func (d *Draft) WithTitle(title string) *Draft {
	next := d.clone()
	next.project.Title = title
	return next
}

// WithDescription returns a draft with the description replaced.
func (d *Draft) WithDescription(description string) *Draft {
	next := d.clone()
	next.project.Description = description
	return next
}

// WithScript returns a draft with the script replaced and the duration
// re-estimated from its word count.
func (d *Draft) WithScript(script string) *Draft {
	next := d.clone()
	next.project.Script = script
	next.project.Duration = EstimateScriptDuration(script)
	return next
}

// WithStoryboardFrames returns a draft with the storyboard replaced wholesale.
func (d *Draft) WithStoryboardFrames(frames []models.StoryboardFrame) *Draft {
	next := d.clone()
	next.project.StoryboardFrames = append([]models.StoryboardFrame{}, frames...)
	return next
}

// WithSelectedAvatars returns a draft with the avatar selection replaced.
// The second return reports whether the selection actually changed: an
// order-sensitive equal list leaves the draft untouched.
func (d *Draft) WithSelectedAvatars(avatarIDs []string) (*Draft, bool) {
	if equalStringSlices(d.project.SelectedAvatars, avatarIDs) {
		return d, false
	}
	next := d.clone()
	next.project.SelectedAvatars = append([]string{}, avatarIDs...)
	return next, true
}

// WithStatus returns a draft with the status replaced.
func (d *Draft) WithStatus(status models.ProjectStatus) *Draft {
	next := d.clone()
	next.project.Status = status
	return next
}

// AddInteraction returns a draft with the interaction appended.
func (d *Draft) AddInteraction(interaction models.Interaction) *Draft {
	next := d.clone()
	next.project.Interactions = append(next.project.Interactions, interaction)
	return next
}

// UpdateInteraction returns a draft with the matching interaction replaced.
// An unknown ID leaves the draft unchanged.
func (d *Draft) UpdateInteraction(interaction models.Interaction) *Draft {
	next := d.clone()
	for i := range next.project.Interactions {
		if next.project.Interactions[i].ID == interaction.ID {
			next.project.Interactions[i] = interaction
			break
		}
	}
	return next
}

// RemoveInteraction returns a draft without the matching interaction.
// An unknown ID leaves the draft unchanged.
func (d *Draft) RemoveInteraction(interactionID string) *Draft {
	next := d.clone()
	filtered := next.project.Interactions[:0]
	for _, item := range next.project.Interactions {
		if item.ID != interactionID {
			filtered = append(filtered, item)
		}
	}
	next.project.Interactions = filtered
	return next
}

// AddVoiceOver returns a draft with the voice-over segment appended.
func (d *Draft) AddVoiceOver(voiceOver models.ProjectVoiceOver) *Draft {
	next := d.clone()
	next.project.VoiceOvers = append(next.project.VoiceOvers, voiceOver)
	return next
}

// UpdateVoiceOver returns a draft with the matching segment replaced.
// An unknown ID leaves the draft unchanged.
func (d *Draft) UpdateVoiceOver(voiceOver models.ProjectVoiceOver) *Draft {
	next := d.clone()
	for i := range next.project.VoiceOvers {
		if next.project.VoiceOvers[i].ID == voiceOver.ID {
			next.project.VoiceOvers[i] = voiceOver
			break
		}
	}
	return next
}

// RemoveVoiceOver returns a draft without the matching segment.
// An unknown ID leaves the draft unchanged.
func (d *Draft) RemoveVoiceOver(voiceOverID string) *Draft {
	next := d.clone()
	filtered := next.project.VoiceOvers[:0]
	for _, item := range next.project.VoiceOvers {
		if item.ID != voiceOverID {
			filtered = append(filtered, item)
		}
	}
	next.project.VoiceOvers = filtered
	return next
}

func (d *Draft) clone() *Draft {
	return &Draft{project: *cloneProject(&d.project)}
}

// cloneProject makes a deep copy so drafts never share slices.
func cloneProject(p *models.Project) *models.Project {
	copied := *p
	if p.ID != nil {
		id := *p.ID
		copied.ID = &id
	}
	if p.LastSaved != nil {
		saved := *p.LastSaved
		copied.LastSaved = &saved
	}
	copied.StoryboardFrames = append([]models.StoryboardFrame{}, p.StoryboardFrames...)
	copied.SelectedAvatars = append([]string{}, p.SelectedAvatars...)
	copied.VoiceOvers = append([]models.ProjectVoiceOver{}, p.VoiceOvers...)
	copied.Interactions = make([]models.Interaction, len(p.Interactions))
	for i, interaction := range p.Interactions {
		interaction.Options = append([]string{}, interaction.Options...)
		copied.Interactions[i] = interaction
	}
	return &copied
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
