package sheets

import (
	"context"
	"sync"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
)

// MockWriter is a mock implementation of service.ViewExporter for testing.
type MockWriter struct {
	ExportFunc      func(ctx context.Context, view kpi.View) (string, error)
	ExportCalls     []ExportCall
	ExportCallCount int
	mu              sync.Mutex
}

// ExportCall represents a single call to Export.
type ExportCall struct {
	Error         error
	SpreadsheetID string
	View          kpi.View
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		ExportCalls: make([]ExportCall, 0),
	}
}

// Export records the call and delegates to ExportFunc when set.
func (m *MockWriter) Export(ctx context.Context, view kpi.View) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExportCallCount++

	id := "mock-spreadsheet"
	var err error
	if m.ExportFunc != nil {
		id, err = m.ExportFunc(ctx, view)
	}

	m.ExportCalls = append(m.ExportCalls, ExportCall{
		View:          view,
		SpreadsheetID: id,
		Error:         err,
	})

	return id, err
}

// GetExportCalls returns a copy of all export calls.
func (m *MockWriter) GetExportCalls() []ExportCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]ExportCall, len(m.ExportCalls))
	copy(calls, m.ExportCalls)
	return calls
}

// SetExportError configures the mock to fail every Export call.
func (m *MockWriter) SetExportError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExportFunc = func(_ context.Context, _ kpi.View) (string, error) {
		return "", err
	}
}
