package dropdowns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/config"
	"github.com/gabapdb/sourcing-pettycash/internal/watch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) ListOptions(clientID, category string) ([]Option, error) {
	args := m.Called(clientID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Option), args.Error(1)
}

func (m *MockOptionRepository) InsertOption(clientID, category, value string) error {
	args := m.Called(clientID, category, value)
	return args.Error(0)
}

func newTestService(repo OptionRepository) *Service {
	cfg, _ := config.Load("")
	return NewService(repo, cfg, watch.NewHub[[]string](), zap.NewNop())
}

func TestOptionsPrependsDefaults(t *testing.T) {
	mockRepo := new(MockOptionRepository)
	mockRepo.On("ListOptions", "c1", "sourcingTypes").Return([]Option{
		{Value: "Carpentry"},
		{Value: "electrical"}, // case-insensitive duplicate of the default
	}, nil)

	service := newTestService(mockRepo)

	options, err := service.Options("c1", "sourcingTypes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Electrical", "Plumbing", "Finishing", "Lighting", "Carpentry"}, options)
}

func TestAddOption(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		existing    []Option
		setupInsert func(m *MockOptionRepository)
		expectedErr error
	}{
		{
			name:     "new option persists trimmed",
			value:    "  Carpentry ",
			existing: []Option{},
			setupInsert: func(m *MockOptionRepository) {
				m.On("InsertOption", "c1", "sourcingTypes", "Carpentry").Return(nil)
			},
			expectedErr: nil,
		},
		{
			name:        "case-insensitive duplicate of default rejected",
			value:       "electrical",
			existing:    []Option{},
			expectedErr: ErrDuplicateOption,
		},
		{
			name:        "case-insensitive duplicate of persisted rejected",
			value:       "CARPENTRY",
			existing:    []Option{{Value: "Carpentry"}},
			expectedErr: ErrDuplicateOption,
		},
		{
			name:        "blank value rejected before any store call",
			value:       "   ",
			expectedErr: ErrEmptyOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOptionRepository)
			if tt.expectedErr != ErrEmptyOption {
				mockRepo.On("ListOptions", "c1", "sourcingTypes").Return(tt.existing, nil)
			}
			if tt.setupInsert != nil {
				tt.setupInsert(mockRepo)
			}

			service := newTestService(mockRepo)
			err := service.AddOption("c1", "sourcingTypes", tt.value)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAddOptionSurfacesWriteFailure(t *testing.T) {
	mockRepo := new(MockOptionRepository)
	mockRepo.On("ListOptions", "c1", "sourcingStores").Return([]Option{}, nil)
	mockRepo.On("InsertOption", "c1", "sourcingStores", "Citi Hardware").Return(errors.New("store write failed"))

	service := newTestService(mockRepo)
	err := service.AddOption("c1", "sourcingStores", "Citi Hardware")
	assert.Error(t, err)
}

func TestSubscribeEmitsCurrentThenUpdates(t *testing.T) {
	mockRepo := new(MockOptionRepository)
	mockRepo.On("ListOptions", "c1", "sourcingTypes").Return([]Option{}, nil).Once()

	service := newTestService(mockRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := service.Subscribe(ctx, "c1", "sourcingTypes")
	require.NoError(t, err)

	select {
	case first := <-updates:
		assert.Equal(t, []string{"Electrical", "Plumbing", "Finishing", "Lighting"}, first)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	// Duplicate pre-check sees the old list; the broadcast reload sees the new one.
	mockRepo.On("ListOptions", "c1", "sourcingTypes").Return([]Option{}, nil).Once()
	mockRepo.On("ListOptions", "c1", "sourcingTypes").Return([]Option{{Value: "Carpentry"}}, nil)
	mockRepo.On("InsertOption", "c1", "sourcingTypes", "Carpentry").Return(nil)
	require.NoError(t, service.AddOption("c1", "sourcingTypes", "Carpentry"))

	select {
	case next := <-updates:
		assert.Contains(t, next, "Carpentry")
	case <-time.After(time.Second):
		t.Fatal("no snapshot after add")
	}
}
