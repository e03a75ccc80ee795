package storage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/JakeFAU/draftpicks/internal/draft"
)

// MockSink is a testify mock of Sink.
type MockSink struct {
	mock.Mock
}

// Replace is the mock implementation of the Replace method.
func (m *MockSink) Replace(ctx context.Context, records []draft.Record) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1) //nolint:wrapcheck
}

// List is the mock implementation of the List method.
func (m *MockSink) List(ctx context.Context) ([]draft.Record, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]draft.Record)
	return recs, args.Error(1) //nolint:wrapcheck
}

// Close is the mock implementation of the Close method.
func (m *MockSink) Close() error {
	args := m.Called()
	return args.Error(0) //nolint:wrapcheck
}

// Table is the mock implementation of the Table method.
func (m *MockSink) Table() string {
	return m.Called().String(0)
}

// Location is the mock implementation of the Location method.
func (m *MockSink) Location() string {
	return m.Called().String(0)
}
