package story

import (
	"encoding/json"
	"strings"

	apperrors "github.com/joshuaIsweety/GoogleAIStudio-DND/internal/errors"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
)

// RawSegment is the story service's JSON payload before validation.
// Pointers distinguish a missing field from an empty one.
type RawSegment struct {
	Story       *string   `json:"story"`
	Choices     *[]string `json:"choices"`
	Outcome     *string   `json:"outcome"`
	VictoryType *string   `json:"victoryType,omitempty"`
}

// MaxChoices is the most choices a segment offers; extras are cut.
const MaxChoices = 4

// Repair names an adjustment Normalize made to an otherwise valid payload.
type Repair string

const (
	RepairUnknownOutcome       Repair = "unknown_outcome"
	RepairUnknownVictoryType   Repair = "unknown_victory_type"
	RepairStrayVictoryType     Repair = "stray_victory_type"
	RepairBlankChoices         Repair = "blank_choices"
	RepairChoicesOnTerminalEnd Repair = "choices_on_terminal_end"
	RepairTooManyChoices       Repair = "too_many_choices"
)

// Parse decodes the model's text into a RawSegment and checks the required
// fields are present with the right types. A surrounding markdown code
// fence is tolerated.
func Parse(text string) (RawSegment, error) {
	var raw RawSegment
	body := stripCodeFence(strings.TrimSpace(text))
	if body == "" {
		return raw, apperrors.NewMalformedResponse("empty response", nil)
	}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return raw, apperrors.NewMalformedResponse("response is not valid story JSON", err)
	}

	var missing []string
	if raw.Story == nil {
		missing = append(missing, "story")
	}
	if raw.Choices == nil {
		missing = append(missing, "choices")
	}
	if raw.Outcome == nil {
		missing = append(missing, "outcome")
	}
	if len(missing) > 0 {
		return raw, apperrors.NewMalformedResponse("response is missing "+strings.Join(missing, ", "), nil)
	}
	return raw, nil
}

// Normalize turns a parsed payload into a sanitized segment. It never fails:
// fields that are cosmetic or unrecognized are dropped and reported as repairs.
//
// An unrecognized outcome is played as "continue". A victory type survives
// only on a victory and only when it is one of the known archetypes.
func Normalize(raw RawSegment) (game.Segment, []Repair) {
	var repairs []Repair
	seg := game.Segment{}

	if raw.Story != nil {
		seg.Text = strings.TrimSpace(*raw.Story)
	}

	outcome := game.OutcomeContinue
	if raw.Outcome != nil {
		if o, ok := game.ParseOutcome(*raw.Outcome); ok {
			outcome = o
		} else {
			repairs = append(repairs, RepairUnknownOutcome)
		}
	}
	seg.Outcome = outcome

	if raw.Choices != nil {
		choices := make([]string, 0, len(*raw.Choices))
		for _, c := range *raw.Choices {
			if c = strings.TrimSpace(c); c != "" {
				choices = append(choices, c)
			}
		}
		if len(choices) != len(*raw.Choices) {
			repairs = append(repairs, RepairBlankChoices)
		}
		if len(choices) > MaxChoices {
			repairs = append(repairs, RepairTooManyChoices)
			choices = choices[:MaxChoices]
		}
		seg.Choices = choices
	}

	// Game over ignores whatever choices came with it; victory keeps them
	// in the transcript but the session never offers them.
	if outcome == game.OutcomeGameOver && len(seg.Choices) > 0 {
		repairs = append(repairs, RepairChoicesOnTerminalEnd)
		seg.Choices = nil
	}

	if raw.VictoryType != nil && strings.TrimSpace(*raw.VictoryType) != "" {
		switch {
		case outcome != game.OutcomeVictory:
			repairs = append(repairs, RepairStrayVictoryType)
		default:
			if v, ok := game.ParseVictoryType(*raw.VictoryType); ok {
				seg.VictoryType = v
			} else {
				repairs = append(repairs, RepairUnknownVictoryType)
			}
		}
	}

	return seg, repairs
}

// Decode is Parse followed by Normalize.
func Decode(text string) (game.Segment, []Repair, error) {
	raw, err := Parse(text)
	if err != nil {
		return game.Segment{}, nil, err
	}
	seg, repairs := Normalize(raw)
	return seg, repairs, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.HasPrefix(strings.TrimSpace(s[:i]), "{") {
		// drop the language tag line
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
