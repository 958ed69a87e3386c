package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/session"
)

// MockStoryTeller is a mock type for the StoryTeller type
type MockStoryTeller struct {
	mock.Mock
}

// StartStory provides a mock function with given fields: ctx, ch
func (_m *MockStoryTeller) StartStory(ctx context.Context, ch game.Character) (game.Segment, error) {
	ret := _m.Called(ctx, ch)

	var r0 game.Segment
	if rf, ok := ret.Get(0).(func(context.Context, game.Character) game.Segment); ok {
		r0 = rf(ctx, ch)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(game.Segment)
	}

	return r0, ret.Error(1)
}

// ContinueStory provides a mock function with given fields: ctx, ch, transcript, choice
func (_m *MockStoryTeller) ContinueStory(ctx context.Context, ch game.Character, transcript game.Transcript, choice string) (game.Segment, error) {
	ret := _m.Called(ctx, ch, transcript, choice)

	var r0 game.Segment
	if rf, ok := ret.Get(0).(func(context.Context, game.Character, game.Transcript, string) game.Segment); ok {
		r0 = rf(ctx, ch, transcript, choice)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(game.Segment)
	}

	return r0, ret.Error(1)
}

// Illustrate provides a mock function with given fields: ctx, storyText
func (_m *MockStoryTeller) Illustrate(ctx context.Context, storyText string) string {
	return _m.Called(ctx, storyText).String(0)
}

// NewMockStoryTeller creates a new instance of MockStoryTeller. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockStoryTeller(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStoryTeller {
	m := &MockStoryTeller{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ session.StoryTeller = (*MockStoryTeller)(nil)
