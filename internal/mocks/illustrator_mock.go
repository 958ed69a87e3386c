package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/story"
)

// MockIllustrator is a mock type for the Illustrator type
type MockIllustrator struct {
	mock.Mock
}

// Illustrate provides a mock function with given fields: ctx, prompt
func (_m *MockIllustrator) Illustrate(ctx context.Context, prompt string) (string, error) {
	ret := _m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}

// Backend provides a mock function with given fields:
func (_m *MockIllustrator) Backend() string {
	return _m.Called().String(0)
}

// NewMockIllustrator creates a new instance of MockIllustrator with Backend stubbed as "mock".
func NewMockIllustrator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIllustrator {
	m := &MockIllustrator{}
	m.Mock.Test(t)
	m.On("Backend").Return("mock").Maybe()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ story.Illustrator = (*MockIllustrator)(nil)
