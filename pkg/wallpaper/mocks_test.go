package wallpaper

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner implements util.Runner for testing.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := append([]interface{}{name}, toInterfaces(args)...)
	ret := m.Called(callArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	callArgs := append([]interface{}{name}, toInterfaces(args)...)
	return m.Called(callArgs...).Error(0)
}

// MockEvaluator implements scriptEvaluator for testing.
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, script string) error {
	return m.Called(script).Error(0)
}

// MockPlatform implements Platform for testing.
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) SetWallpaper(ctx context.Context, path string) error {
	return m.Called(path).Error(0)
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
