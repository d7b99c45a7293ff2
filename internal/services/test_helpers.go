package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/LinFrancis/escuela-aucca/internal/source"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// MockTableLoader is a mock for the TableLoader interface
type MockTableLoader struct {
	mock.Mock
}

func (m *MockTableLoader) Load(ctx context.Context, src source.Source) (*survey.Table, error) {
	args := m.Called(ctx, src)
	table, _ := args.Get(0).(*survey.Table)
	return table, args.Error(1)
}

// MockSourceChecker is a mock for the SourceChecker interface
type MockSourceChecker struct {
	mock.Mock
}

func (m *MockSourceChecker) Table(ctx context.Context) (*survey.Table, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(*survey.Table)
	return table, args.Error(1)
}

func (m *MockSourceChecker) SourceKind() string {
	return m.Called().String(0)
}
