package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/chronicle"
)

// MockRecorder is a mock type for the Recorder type
type MockRecorder struct {
	mock.Mock
}

// Record provides a mock function with given fields: ctx, a
func (_m *MockRecorder) Record(ctx context.Context, a chronicle.Adventure) error {
	return _m.Called(ctx, a).Error(0)
}

// NewMockRecorder creates a new instance of MockRecorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRecorder {
	m := &MockRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ chronicle.Recorder = (*MockRecorder)(nil)
