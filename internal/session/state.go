package session

import (
	"slices"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
)

// Phase is the stage of a play-through.
type Phase string

const (
	PhaseCharacterCreation Phase = "CHARACTER_CREATION"
	PhasePlaying           Phase = "PLAYING"
	PhaseVictory           Phase = "VICTORY"
	PhaseGameOver          Phase = "GAME_OVER"
)

// Terminal reports whether the adventure has ended.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseGameOver
}

// User-facing failure messages.
const (
	MsgStartFailed      = "無法開始新的冒險。請稍後再試。"
	MsgTurnFailed       = "故事無法繼續。請再選擇一次。"
	MsgMissingCharacter = "錯誤：找不到角色資訊。"
	MsgNameRequired     = "請輸入你的角色名稱。"
	MsgUnknownClass     = "請選擇戰士、法師或盜賊。"
	MsgChoiceNotOffered = "請從目前提供的選項中選擇。"
)

// State is everything the presentation layer needs to render one session.
//
// Character is nil exactly while Phase is PhaseCharacterCreation.
// PendingChoices is non-empty only while playing and not loading.
type State struct {
	Phase          Phase
	Character      *game.Character
	Transcript     game.Transcript
	PendingChoices []string
	VictoryType    game.VictoryType
	Loading        bool
	LastError      string

	// choices of the last narrative segment, restored when a turn fails
	offered []string
}

// Initial is the state of a fresh session.
func Initial() State {
	return State{Phase: PhaseCharacterCreation}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	if s.Character != nil {
		ch := *s.Character
		s.Character = &ch
	}
	s.Transcript = s.Transcript.Clone()
	s.PendingChoices = slices.Clone(s.PendingChoices)
	s.offered = slices.Clone(s.offered)
	return s
}

// Offers reports whether choice is one of the pending choices.
func (s State) Offers(choice string) bool {
	return slices.Contains(s.PendingChoices, choice)
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// CharacterSubmitted starts the opening request.
type CharacterSubmitted struct{}

// StoryStarted carries the opening segment for a new character.
type StoryStarted struct {
	Character game.Character
	Segment   game.Segment
}

// StartFailed reports that the opening request failed.
type StartFailed struct {
	Message string
}

// ChoiceSelected is the optimistic echo of the player's action.
type ChoiceSelected struct {
	Choice string
}

// SegmentReceived carries the story service's answer to a choice.
type SegmentReceived struct {
	Segment game.Segment
}

// TurnFailed reports that a turn could not be completed.
type TurnFailed struct {
	Message string
}

// PlayAgainRequested returns a finished session to character creation.
type PlayAgainRequested struct{}

func (CharacterSubmitted) event() {}
func (StoryStarted) event()       {}
func (StartFailed) event()        {}
func (ChoiceSelected) event()     {}
func (SegmentReceived) event()    {}
func (TurnFailed) event()         {}
func (PlayAgainRequested) event() {}

// Reduce applies ev to s and returns the next state. It is pure: s is never
// modified and events that do not apply in the current phase return s
// unchanged.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case CharacterSubmitted:
		if s.Phase != PhaseCharacterCreation || s.Loading {
			return s
		}
		next := Initial()
		next.Loading = true
		return next

	case StoryStarted:
		if s.Phase != PhaseCharacterCreation {
			return s
		}
		ch := ev.Character
		next := Initial()
		next.Character = &ch
		next.Transcript = game.Transcript{}.Append(ev.Segment)
		return resolve(next, ev.Segment)

	case StartFailed:
		if s.Phase != PhaseCharacterCreation {
			return s
		}
		next := Initial()
		next.LastError = ev.Message
		return next

	case ChoiceSelected:
		if s.Phase != PhasePlaying || s.Loading {
			return s
		}
		next := s.Clone()
		// A retry of the choice whose turn just failed reuses its echo.
		if last, ok := s.Transcript.Last(); !ok || !last.PlayerEcho || last.Text != ev.Choice {
			next.Transcript = s.Transcript.Append(game.Echo(ev.Choice))
		}
		next.PendingChoices = nil
		next.Loading = true
		next.LastError = ""
		return next

	case SegmentReceived:
		if s.Phase != PhasePlaying || !s.Loading {
			return s
		}
		next := s.Clone()
		next.Transcript = s.Transcript.Append(ev.Segment)
		next.Loading = false
		return resolve(next, ev.Segment)

	case TurnFailed:
		if s.Phase != PhasePlaying {
			return s
		}
		next := s.Clone()
		next.Loading = false
		next.LastError = ev.Message
		next.PendingChoices = slices.Clone(s.offered)
		return next

	case PlayAgainRequested:
		if !s.Phase.Terminal() {
			return s
		}
		return Initial()
	}
	return s
}

// resolve moves the session according to the outcome of seg.
func resolve(s State, seg game.Segment) State {
	s.PendingChoices = nil
	s.offered = nil
	s.VictoryType = game.VictoryNone

	switch seg.Outcome {
	case game.OutcomeVictory:
		s.Phase = PhaseVictory
		s.VictoryType = seg.VictoryType
	case game.OutcomeGameOver:
		s.Phase = PhaseGameOver
	default:
		s.Phase = PhasePlaying
		s.PendingChoices = slices.Clone(seg.Choices)
		s.offered = slices.Clone(seg.Choices)
	}
	return s
}
