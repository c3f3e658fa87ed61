package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/companyinfo-cli/internal/model"
	"github.com/sells-group/companyinfo-cli/pkg/google"
)

// --- Resolver mock ---

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, companyName string, maxResults int) ([]google.Result, error) {
	args := m.Called(ctx, companyName, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]google.Result), args.Error(1)
}

// --- Fetcher mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// --- Extractor mock ---

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, rec *model.CompanyRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
