package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/chronicle"
	apperrors "github.com/joshuaIsweety/GoogleAIStudio-DND/internal/errors"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/mocks"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/session"
)

var aria = game.Character{Name: "Aria", Class: game.Mage}

func openingSegment() game.Segment {
	return game.Segment{Text: "...", Choices: []string{"flee", "fight"}, Outcome: game.OutcomeContinue}
}

// startedEngine returns an engine that is already playing with the opening
// segment of openingSegment.
func startedEngine(t *testing.T, teller *mocks.MockStoryTeller, opts ...session.Option) *session.Engine {
	t.Helper()
	teller.On("StartStory", mock.Anything, aria).Return(openingSegment(), nil).Once()
	teller.On("Illustrate", mock.Anything, "...").Return("").Once()

	e := session.NewEngine(teller, opts...)
	require.NoError(t, e.CreateCharacter(context.Background(), "Aria", game.Mage))
	return e
}

func TestEngine_CreateCharacterBlankName(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n", "   　"} {
		teller := mocks.NewMockStoryTeller(t)
		e := session.NewEngine(teller)

		err := e.CreateCharacter(context.Background(), name, game.Warrior)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

		s := e.Snapshot()
		assert.Equal(t, session.PhaseCharacterCreation, s.Phase)
		assert.Empty(t, s.LastError)
		assert.False(t, s.Loading)
		teller.AssertNotCalled(t, "StartStory", mock.Anything, mock.Anything)
	}
}

func TestEngine_CreateCharacterUnknownClass(t *testing.T) {
	e := session.NewEngine(mocks.NewMockStoryTeller(t))

	err := e.CreateCharacter(context.Background(), "Aria", game.Class("BARD"))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestEngine_CreateCharacter(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	teller.On("StartStory", mock.Anything, game.Character{Name: "Aria", Class: game.Mage}).Return(openingSegment(), nil).Once()
	teller.On("Illustrate", mock.Anything, "...").Return("data:image/jpeg;base64,AAAA").Once()

	e := session.NewEngine(teller)
	require.NoError(t, e.CreateCharacter(context.Background(), "  Aria  ", game.Mage))

	s := e.Snapshot()
	assert.Equal(t, session.PhasePlaying, s.Phase)
	require.NotNil(t, s.Character)
	assert.Equal(t, "Aria", s.Character.Name)
	require.Len(t, s.Transcript, 1)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", s.Transcript[0].ImageURL)
	assert.Equal(t, []string{"flee", "fight"}, s.PendingChoices)
	assert.False(t, s.Loading)
	assert.Empty(t, s.LastError)
}

func TestEngine_CreateCharacterFailure(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	teller.On("StartStory", mock.Anything, aria).
		Return(game.Segment{}, apperrors.NewServiceFailure("story request failed", errors.New("timeout"))).Once()

	e := session.NewEngine(teller)
	err := e.CreateCharacter(context.Background(), "Aria", game.Mage)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrServiceFailure))

	s := e.Snapshot()
	assert.Equal(t, session.PhaseCharacterCreation, s.Phase)
	assert.Nil(t, s.Character)
	assert.Equal(t, session.MsgStartFailed, s.LastError)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Transcript)

	// the intent can simply be issued again
	teller.On("StartStory", mock.Anything, aria).Return(openingSegment(), nil).Once()
	teller.On("Illustrate", mock.Anything, "...").Return("").Once()
	require.NoError(t, e.CreateCharacter(context.Background(), "Aria", game.Mage))
	assert.Equal(t, session.PhasePlaying, e.Snapshot().Phase)
	assert.Empty(t, e.Snapshot().LastError)
}

func TestEngine_SelectChoiceVictory(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	recorder := mocks.NewMockRecorder(t)
	e := startedEngine(t, teller, session.WithRecorder(recorder))

	wantContext := game.Transcript{openingSegment(), game.Echo("fight")}
	teller.On("ContinueStory", mock.Anything, aria, wantContext, "fight").
		Return(game.Segment{Text: "You win!", Outcome: game.OutcomeVictory, VictoryType: game.VictoryBossBattle}, nil).Once()
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(a chronicle.Adventure) bool {
		return a.CharacterName == "Aria" &&
			a.Outcome == game.OutcomeVictory &&
			a.VictoryType == game.VictoryBossBattle &&
			a.Turns == 1 &&
			len(a.Transcript) == 3
	})).Return(nil).Once()

	before := len(e.Snapshot().Transcript)
	require.NoError(t, e.SelectChoice(context.Background(), "fight"))

	s := e.Snapshot()
	assert.Equal(t, session.PhaseVictory, s.Phase)
	assert.Equal(t, game.VictoryBossBattle, s.VictoryType)
	assert.Len(t, s.Transcript, before+2)
	assert.Empty(t, s.PendingChoices)
	assert.Empty(t, s.Transcript[2].ImageURL, "terminal segments are not illustrated")
	teller.AssertNumberOfCalls(t, "Illustrate", 1)
}

func TestEngine_SelectChoiceGameOver(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	e := startedEngine(t, teller)

	teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "flee").
		Return(game.Segment{Text: "The floor gives way.", Outcome: game.OutcomeGameOver}, nil).Once()

	require.NoError(t, e.SelectChoice(context.Background(), "flee"))

	s := e.Snapshot()
	assert.Equal(t, session.PhaseGameOver, s.Phase)
	assert.Equal(t, game.VictoryNone, s.VictoryType)
	assert.Empty(t, s.PendingChoices)
}

func TestEngine_SelectChoiceContinueIllustrated(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	e := startedEngine(t, teller)

	teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "fight").
		Return(game.Segment{Text: "The troll staggers.", Choices: []string{"strike", "taunt"}, Outcome: game.OutcomeContinue}, nil).Once()
	teller.On("Illustrate", mock.Anything, "The troll staggers.").Return("").Once()

	require.NoError(t, e.SelectChoice(context.Background(), "fight"))

	s := e.Snapshot()
	assert.Equal(t, session.PhasePlaying, s.Phase)
	assert.Equal(t, []string{"strike", "taunt"}, s.PendingChoices)
	assert.Empty(t, s.Transcript[2].ImageURL)
	assert.Empty(t, s.LastError, "a missing image is not an error")
}

func TestEngine_EchoPublishedBeforeResponse(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)

	var (
		mu        sync.Mutex
		snapshots []session.State
	)
	observe := session.WithObserver(func(s session.State) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, s)
	})
	e := startedEngine(t, teller, observe)

	var duringCall session.State
	teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "fight").
		Run(func(mock.Arguments) { duringCall = e.Snapshot() }).
		Return(game.Segment{}, apperrors.NewMalformedResponse("response is missing outcome", nil)).Once()

	err := e.SelectChoice(context.Background(), "fight")
	require.Error(t, err)

	require.Len(t, duringCall.Transcript, 2)
	assert.Equal(t, game.Echo("fight"), duringCall.Transcript[1])
	assert.True(t, duringCall.Loading)

	mu.Lock()
	defer mu.Unlock()
	// CharacterSubmitted, StoryStarted, ChoiceSelected, TurnFailed
	require.Len(t, snapshots, 4)
	assert.True(t, snapshots[2].Transcript[1].PlayerEcho)
	assert.Equal(t, session.MsgTurnFailed, snapshots[3].LastError)
}

func TestEngine_SelectChoiceFailureKeepsEcho(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	e := startedEngine(t, teller)

	teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "fight").
		Return(game.Segment{}, apperrors.NewServiceFailure("story request failed", errors.New("503"))).Once()

	err := e.SelectChoice(context.Background(), "fight")
	assert.True(t, apperrors.Is(err, apperrors.ErrServiceFailure))

	s := e.Snapshot()
	assert.Equal(t, session.PhasePlaying, s.Phase)
	assert.Equal(t, session.MsgTurnFailed, s.LastError)
	assert.False(t, s.Loading)
	require.Len(t, s.Transcript, 2)
	assert.True(t, s.Transcript[1].PlayerEcho)
	assert.Equal(t, []string{"flee", "fight"}, s.PendingChoices)

	// retrying the same choice does not duplicate the echo
	teller.On("ContinueStory", mock.Anything, aria, game.Transcript{openingSegment(), game.Echo("fight")}, "fight").
		Return(game.Segment{Text: "You win!", Outcome: game.OutcomeVictory}, nil).Once()

	require.NoError(t, e.SelectChoice(context.Background(), "fight"))
	s = e.Snapshot()
	assert.Len(t, s.Transcript, 3)
	assert.Equal(t, session.PhaseVictory, s.Phase)
	assert.Equal(t, game.VictoryNone, s.VictoryType)
	assert.Empty(t, s.LastError)
}

func TestEngine_RetryAfterFailure(t *testing.T) {
	failed := apperrors.NewServiceFailure("story request failed", errors.New("503"))

	t.Run("same choice reuses the echo", func(t *testing.T) {
		teller := mocks.NewMockStoryTeller(t)
		e := startedEngine(t, teller)
		echoed := game.Transcript{openingSegment(), game.Echo("flee")}

		teller.On("ContinueStory", mock.Anything, aria, echoed, "flee").Return(game.Segment{}, failed).Twice()

		require.Error(t, e.SelectChoice(context.Background(), "flee"))
		require.Error(t, e.SelectChoice(context.Background(), "flee"))

		s := e.Snapshot()
		assert.Equal(t, echoed, s.Transcript)
		assert.Equal(t, []string{"flee", "fight"}, s.PendingChoices)
	})

	t.Run("different choice appends a new echo", func(t *testing.T) {
		teller := mocks.NewMockStoryTeller(t)
		e := startedEngine(t, teller)

		teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "flee").Return(game.Segment{}, failed).Once()
		teller.On("ContinueStory", mock.Anything, aria,
			game.Transcript{openingSegment(), game.Echo("flee"), game.Echo("fight")}, "fight").
			Return(game.Segment{Text: "You fall.", Outcome: game.OutcomeGameOver}, nil).Once()

		require.Error(t, e.SelectChoice(context.Background(), "flee"))
		require.NoError(t, e.SelectChoice(context.Background(), "fight"))

		s := e.Snapshot()
		require.Len(t, s.Transcript, 4)
		assert.Equal(t, 2, s.Transcript.Turns())
		assert.Equal(t, session.PhaseGameOver, s.Phase)
	})
}

func TestEngine_SelectChoiceRejected(t *testing.T) {
	t.Run("not playing", func(t *testing.T) {
		e := session.NewEngine(mocks.NewMockStoryTeller(t))
		err := e.SelectChoice(context.Background(), "fight")
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidTransition))
		assert.Empty(t, e.Snapshot().Transcript)
	})

	t.Run("not offered", func(t *testing.T) {
		e := startedEngine(t, mocks.NewMockStoryTeller(t))
		err := e.SelectChoice(context.Background(), "dance")
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		assert.Len(t, e.Snapshot().Transcript, 1)
	})
}

func TestEngine_BusyWhileLoading(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	e := startedEngine(t, teller)

	entered := make(chan struct{})
	release := make(chan struct{})
	teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "fight").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(game.Segment{Text: "Onward.", Choices: []string{"go"}, Outcome: game.OutcomeContinue}, nil).Once()
	teller.On("Illustrate", mock.Anything, "Onward.").Return("").Once()

	done := make(chan error, 1)
	go func() { done <- e.SelectChoice(context.Background(), "fight") }()
	<-entered

	err := e.SelectChoice(context.Background(), "flee")
	assert.True(t, apperrors.Is(err, apperrors.ErrBusy))
	err = e.CreateCharacter(context.Background(), "Bram", game.Rogue)
	assert.True(t, apperrors.Is(err, apperrors.ErrBusy))
	assert.Empty(t, e.Snapshot().PendingChoices)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"go"}, e.Snapshot().PendingChoices)
}

func TestEngine_PlayAgain(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	e := startedEngine(t, teller)

	err := e.PlayAgain()
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidTransition), "not allowed while playing")

	teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "fight").
		Return(game.Segment{Text: "You win!", Outcome: game.OutcomeVictory, VictoryType: game.VictoryTreasureHunt}, nil).Once()
	require.NoError(t, e.SelectChoice(context.Background(), "fight"))

	first := e.SessionID()
	require.NoError(t, e.PlayAgain())

	assert.Equal(t, session.Initial(), e.Snapshot())
	assert.NotEqual(t, first, e.SessionID())
}

func TestEngine_RecorderFailureIsNotSurfaced(t *testing.T) {
	teller := mocks.NewMockStoryTeller(t)
	recorder := mocks.NewMockRecorder(t)
	e := startedEngine(t, teller, session.WithRecorder(recorder))

	teller.On("ContinueStory", mock.Anything, aria, mock.Anything, "flee").
		Return(game.Segment{Text: "Lost forever.", Outcome: game.OutcomeGameOver}, nil).Once()
	recorder.On("Record", mock.Anything, mock.Anything).Return(errors.New("supabase down")).Once()

	require.NoError(t, e.SelectChoice(context.Background(), "flee"))
	s := e.Snapshot()
	assert.Equal(t, session.PhaseGameOver, s.Phase)
	assert.Empty(t, s.LastError)
}
