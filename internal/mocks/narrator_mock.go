package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/story"
)

// MockNarrator is a mock type for the Narrator type
type MockNarrator struct {
	mock.Mock
}

// Narrate provides a mock function with given fields: ctx, req
func (_m *MockNarrator) Narrate(ctx context.Context, req story.Request) (string, error) {
	ret := _m.Called(ctx, req)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, story.Request) string); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.String(0)
	}

	return r0, ret.Error(1)
}

// Backend provides a mock function with given fields:
func (_m *MockNarrator) Backend() string {
	return _m.Called().String(0)
}

// Model provides a mock function with given fields:
func (_m *MockNarrator) Model() string {
	return _m.Called().String(0)
}

// NewMockNarrator creates a new instance of MockNarrator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// Backend and Model are stubbed as "mock" / "mock-model".
func NewMockNarrator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNarrator {
	m := &MockNarrator{}
	m.Mock.Test(t)
	m.On("Backend").Return("mock").Maybe()
	m.On("Model").Return("mock-model").Maybe()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ story.Narrator = (*MockNarrator)(nil)
