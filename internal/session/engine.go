package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/chronicle"
	apperrors "github.com/joshuaIsweety/GoogleAIStudio-DND/internal/errors"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
)

// StoryTeller is the story service as seen by the session.
type StoryTeller interface {
	StartStory(ctx context.Context, ch game.Character) (game.Segment, error)
	ContinueStory(ctx context.Context, ch game.Character, transcript game.Transcript, choice string) (game.Segment, error)
	// Illustrate returns "" when no picture could be made.
	Illustrate(ctx context.Context, storyText string) string
}

// Engine owns the single session. Intents are accepted one at a time: while
// a story request is in flight every other intent fails with a BUSY error.
type Engine struct {
	teller    StoryTeller
	recorder  chronicle.Recorder
	observers []func(State)
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	state State
	id    uuid.UUID
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers fn to receive a snapshot after every state change.
func WithObserver(fn func(State)) Option {
	return func(e *Engine) { e.observers = append(e.observers, fn) }
}

// WithRecorder archives every finished adventure.
func WithRecorder(r chronicle.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine in the character creation phase.
func NewEngine(teller StoryTeller, opts ...Option) *Engine {
	e := &Engine{
		teller:   teller,
		recorder: chronicle.Nop{},
		logger:   zap.NewNop(),
		now:      time.Now,
		state:    Initial(),
		id:       uuid.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// SessionID identifies the current play-through; it changes on PlayAgain.
func (e *Engine) SessionID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// CreateCharacter validates the character and asks for the opening scene.
// A blank name is rejected without touching the session.
func (e *Engine) CreateCharacter(ctx context.Context, name string, class game.Class) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidation(MsgNameRequired)
	}
	if !class.Valid() {
		return apperrors.NewValidation(MsgUnknownClass)
	}
	ch := game.Character{Name: name, Class: class}

	_, err := e.apply(CharacterSubmitted{}, func(s State) error {
		if s.Loading {
			return apperrors.NewBusy()
		}
		if s.Phase != PhaseCharacterCreation {
			return apperrors.NewInvalidTransition("CreateCharacter", string(s.Phase))
		}
		return nil
	})
	if err != nil {
		return err
	}

	log := e.log().With(zap.String("character", ch.Name), zap.String("class", string(ch.Class)))
	log.Info("Starting adventure")

	seg, err := e.teller.StartStory(ctx, ch)
	if err != nil {
		log.Error("Failed to start adventure", zap.Error(err))
		e.dispatch(StartFailed{Message: MsgStartFailed})
		return err
	}
	if seg.Illustratable() {
		seg.ImageURL = e.teller.Illustrate(ctx, seg.Text)
	}

	s := e.dispatch(StoryStarted{Character: ch, Segment: seg})
	e.finish(ctx, s)
	return nil
}

// SelectChoice plays one turn. The player's echo is appended and published
// before the story service is called; it stays in the transcript even if the
// turn fails.
func (e *Engine) SelectChoice(ctx context.Context, choice string) error {
	s, err := e.apply(ChoiceSelected{Choice: choice}, func(s State) error {
		if s.Loading {
			return apperrors.NewBusy()
		}
		if s.Phase != PhasePlaying {
			return apperrors.NewInvalidTransition("SelectChoice", string(s.Phase))
		}
		if s.Character == nil {
			return apperrors.NewMissingCharacter()
		}
		if !s.Offers(choice) {
			return apperrors.NewValidation(MsgChoiceNotOffered)
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrMissingCharacter) {
			e.log().Error("Choice selected without a character")
			e.dispatch(TurnFailed{Message: MsgMissingCharacter})
		}
		return err
	}

	log := e.log().With(zap.String("choice", choice), zap.Int("turn", s.Transcript.Turns()))
	log.Info("Player chose")

	seg, err := e.teller.ContinueStory(ctx, *s.Character, s.Transcript, choice)
	if err != nil {
		log.Error("Failed to continue adventure", zap.Error(err))
		e.dispatch(TurnFailed{Message: MsgTurnFailed})
		return err
	}
	if seg.Illustratable() {
		seg.ImageURL = e.teller.Illustrate(ctx, seg.Text)
	}

	next := e.dispatch(SegmentReceived{Segment: seg})
	e.finish(ctx, next)
	return nil
}

// PlayAgain resets a finished session to character creation.
func (e *Engine) PlayAgain() error {
	_, err := e.apply(PlayAgainRequested{}, func(s State) error {
		if !s.Phase.Terminal() {
			return apperrors.NewInvalidTransition("PlayAgain", string(s.Phase))
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.id = uuid.New()
	e.mu.Unlock()
	e.log().Info("New session")
	return nil
}

// apply checks guard and reduces ev under one lock, then notifies observers.
func (e *Engine) apply(ev Event, guard func(State) error) (State, error) {
	e.mu.Lock()
	if err := guard(e.state); err != nil {
		e.mu.Unlock()
		return State{}, err
	}
	e.state = Reduce(e.state, ev)
	snapshot := e.state.Clone()
	e.mu.Unlock()

	e.notify(snapshot)
	return snapshot, nil
}

func (e *Engine) dispatch(ev Event) State {
	s, _ := e.apply(ev, func(State) error { return nil })
	return s
}

func (e *Engine) notify(s State) {
	for _, fn := range e.observers {
		fn(s.Clone())
	}
}

// finish archives the adventure once it has reached an ending.
func (e *Engine) finish(ctx context.Context, s State) {
	if !s.Phase.Terminal() || s.Character == nil {
		return
	}
	log := e.log().With(zap.String("phase", string(s.Phase)), zap.String("victory_type", string(s.VictoryType)))
	log.Info("Adventure finished", zap.Int("turns", s.Transcript.Turns()))

	a := chronicle.NewAdventure(e.SessionID(), *s.Character, s.Transcript, s.VictoryType, e.now())
	if err := e.recorder.Record(ctx, a); err != nil {
		log.Warn("Failed to record adventure", zap.Error(err))
	}
}

func (e *Engine) log() *zap.Logger {
	return e.logger.With(zap.String("session_id", e.SessionID().String()))
}
