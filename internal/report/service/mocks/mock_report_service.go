package mocks

import (
	"context"
	"io"
	"time"

	"github.com/ridloal/smartshop-pos/internal/report/domain"
	"github.com/stretchr/testify/mock"
)

type MockReportService struct {
	mock.Mock
}

// ExportSales writes the string given as the first return value to w.
func (m *MockReportService) ExportSales(ctx context.Context, w io.Writer) (int, error) {
	args := m.Called(ctx, w)
	if body, ok := args.Get(0).(string); ok && args.Error(2) == nil {
		io.WriteString(w, body)
	}
	return args.Int(1), args.Error(2)
}

func (m *MockReportService) ExportSalesToFile(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}

func (m *MockReportService) Summary(ctx context.Context, now time.Time) (*domain.Summary, error) {
	args := m.Called(ctx, now)
	if s := args.Get(0); s != nil {
		return s.(*domain.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}
