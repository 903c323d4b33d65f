package mocks

import (
	"github.com/brettbedarf/fileflow"
	"github.com/stretchr/testify/mock"
)

// MockObserver implements fileflow.Observer for testing across packages
type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) OnEvent(ev fileflow.Event) {
	m.Called(ev)
}

// MockTreeReader implements fileflow.TreeReader for testing consumers of the
// read-only tree view
type MockTreeReader struct {
	mock.Mock
}

func (m *MockTreeReader) List(dirPath, search string) []fileflow.Record {
	args := m.Called(dirPath, search)

	// Handle nil returns
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]fileflow.Record)
}

func (m *MockTreeReader) LookupPath(path string) (fileflow.Record, bool) {
	args := m.Called(path)
	return args.Get(0).(fileflow.Record), args.Bool(1)
}
