// Package chronicle archives finished adventures. It is write-only: nothing
// in the game reads a chronicle back.
package chronicle

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
)

// Adventure matches a row of the adventures table.
type Adventure struct {
	ID             uuid.UUID        `json:"id"`
	SessionID      uuid.UUID        `json:"session_id"`
	CharacterName  string           `json:"character_name"`
	CharacterClass game.Class       `json:"character_class"`
	Outcome        game.Outcome     `json:"outcome"`
	VictoryType    game.VictoryType `json:"victory_type,omitempty"`
	Turns          int              `json:"turns"`
	Transcript     game.Transcript  `json:"transcript"`
	FinishedAt     time.Time        `json:"finished_at"`
}

// NewAdventure builds the record of a finished play-through. Inline images
// are dropped from the stored transcript; hosted image URLs are kept.
func NewAdventure(sessionID uuid.UUID, ch game.Character, tr game.Transcript, vt game.VictoryType, finishedAt time.Time) Adventure {
	stored := tr.Clone()
	for i := range stored {
		if strings.HasPrefix(stored[i].ImageURL, "data:") {
			stored[i].ImageURL = ""
		}
	}

	outcome := game.OutcomeContinue
	if last, ok := tr.Last(); ok {
		outcome = last.Outcome
	}

	return Adventure{
		ID:             uuid.New(),
		SessionID:      sessionID,
		CharacterName:  ch.Name,
		CharacterClass: ch.Class,
		Outcome:        outcome,
		VictoryType:    vt,
		Turns:          tr.Turns(),
		Transcript:     stored,
		FinishedAt:     finishedAt.UTC(),
	}
}

// Recorder stores finished adventures.
type Recorder interface {
	Record(ctx context.Context, a Adventure) error
}

// Nop discards every adventure.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Adventure) error { return nil }
