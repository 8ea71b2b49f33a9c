package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"studio-server/internal/models"
)

func TestEstimateScriptDuration(t *testing.T) {
	t.Run("blank script estimates to zero", func(t *testing.T) {
		assert.Equal(t, 0, EstimateScriptDuration(""))
		assert.Equal(t, 0, EstimateScriptDuration("   \n\t  "))
	})

	t.Run("short script hits the floor", func(t *testing.T) {
		// 10 words at 150 wpm is 4 seconds, floored to 30.
		assert.Equal(t, 30, EstimateScriptDuration("one two three four five six seven eight nine ten"))
	})

	t.Run("long script scales with word count", func(t *testing.T) {
		// 300 words at 150 wpm is exactly two minutes.
		script := strings.Repeat("word ", 300)
		assert.Equal(t, 120, EstimateScriptDuration(script))
	})
}

func TestDraft_WithScript(t *testing.T) {
	d := NewDraft().WithScript(strings.Repeat("word ", 150))

	p := d.Project()
	assert.Equal(t, 60, p.Duration)

	cleared := d.WithScript("")
	assert.Equal(t, 0, cleared.Project().Duration)
	// The original draft is untouched.
	assert.Equal(t, 60, d.Project().Duration)
}

func TestDraft_WithSelectedAvatars(t *testing.T) {
	d := NewDraft()

	d1, changed := d.WithSelectedAvatars([]string{"a", "b"})
	assert.True(t, changed)
	assert.Equal(t, []string{"a", "b"}, d1.Project().SelectedAvatars)

	t.Run("same selection is a no-op", func(t *testing.T) {
		d2, changed := d1.WithSelectedAvatars([]string{"a", "b"})
		assert.False(t, changed)
		assert.Same(t, d1, d2)
	})

	t.Run("order matters", func(t *testing.T) {
		d3, changed := d1.WithSelectedAvatars([]string{"b", "a"})
		assert.True(t, changed)
		assert.Equal(t, []string{"b", "a"}, d3.Project().SelectedAvatars)
	})

	t.Run("clearing a selection is a change", func(t *testing.T) {
		d4, changed := d1.WithSelectedAvatars(nil)
		assert.True(t, changed)
		assert.Empty(t, d4.Project().SelectedAvatars)
	})
}

func TestDraft_Interactions(t *testing.T) {
	quiz := models.Interaction{
		ID:      "q1",
		Type:    models.InteractionQuiz,
		Title:   "Check understanding",
		Options: []string{"Yes", "No"},
	}

	d := NewDraft().AddInteraction(quiz)
	assert.Len(t, d.Project().Interactions, 1)

	t.Run("update replaces matching interaction", func(t *testing.T) {
		updated := quiz
		updated.Title = "Revised"
		next := d.UpdateInteraction(updated)
		assert.Equal(t, "Revised", next.Project().Interactions[0].Title)
		assert.Equal(t, "Check understanding", d.Project().Interactions[0].Title)
	})

	t.Run("update with unknown id is a no-op", func(t *testing.T) {
		next := d.UpdateInteraction(models.Interaction{ID: "missing", Title: "ghost"})
		assert.Equal(t, d.Project().Interactions, next.Project().Interactions)
	})

	t.Run("remove drops matching interaction", func(t *testing.T) {
		next := d.RemoveInteraction("q1")
		assert.Empty(t, next.Project().Interactions)
	})

	t.Run("remove with unknown id is a no-op", func(t *testing.T) {
		next := d.RemoveInteraction("missing")
		assert.Len(t, next.Project().Interactions, 1)
	})
}

func TestDraft_VoiceOvers(t *testing.T) {
	clip := models.ProjectVoiceOver{ID: "v1", Text: "Welcome", VoiceID: "voice-a", Duration: 4}

	d := NewDraft().AddVoiceOver(clip)
	assert.Len(t, d.Project().VoiceOvers, 1)

	updated := clip
	updated.Text = "Welcome back"
	next := d.UpdateVoiceOver(updated)
	assert.Equal(t, "Welcome back", next.Project().VoiceOvers[0].Text)

	assert.Empty(t, d.RemoveVoiceOver("v1").Project().VoiceOvers)
	assert.Len(t, d.RemoveVoiceOver("missing").Project().VoiceOvers, 1)
}

func TestDraft_SnapshotIsIndependent(t *testing.T) {
	d := NewDraft().WithStoryboardFrames([]models.StoryboardFrame{{ID: "f1", Description: "Opening"}})

	snapshot := d.Project()
	snapshot.StoryboardFrames[0].Description = "mutated"
	snapshot.Title = "mutated"

	fresh := d.Project()
	assert.Equal(t, "Opening", fresh.StoryboardFrames[0].Description)
	assert.Equal(t, "", fresh.Title)
}
