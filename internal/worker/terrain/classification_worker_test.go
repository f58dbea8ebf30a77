package terrain_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/usecase/dto"
	"github.com/terrain-microservice/internal/worker/terrain"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockPointClassifier is a mock of PointClassifier
type MockPointClassifier struct {
	mock.Mock
}

func (m *MockPointClassifier) ClassifyPoint(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClassifyResponse), args.Error(1)
}

func TestClassificationWorker_Name(t *testing.T) {
	w := terrain.NewClassificationWorker(
		&MockStreamRepository{},
		&MockPointClassifier{},
		"test-group",
		zap.NewNop(),
	)

	assert.Equal(t, "terrain-classification", w.Name())
}

func TestClassificationWorker_Stop(t *testing.T) {
	w := terrain.NewClassificationWorker(
		&MockStreamRepository{},
		&MockPointClassifier{},
		"test-group",
		zap.NewNop(),
	)

	// Stop should not error even if not started
	assert.NoError(t, w.Stop())

	// Calling stop multiple times should be safe
	assert.NoError(t, w.Stop())
}

func TestClassificationWorker_ProcessesJob(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockClassifier := &MockPointClassifier{}
	logger := zap.NewNop()

	jobID := uuid.New()
	job := domain.ClassificationJobEvent{
		JobID:  jobID,
		Points: []domain.Point{{Lat: 13.0827, Lon: 80.2707}},
	}
	data, err := json.Marshal(job)
	require.NoError(t, err)

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- domain.StreamMessage{ID: "1-0", Data: string(data)}
	close(msgChan)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamClassifyJobs, "test-group").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamClassifyJobs, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamClassifyJobs, "test-group", "1-0").Return(nil)

	mockClassifier.On("ClassifyPoint", mock.Anything, dto.ClassifyRequest{Lat: 13.0827, Lon: 80.2707}).
		Return(&dto.ClassifyResponse{
			Point:    domain.Point{Lat: 13.0827, Lon: 80.2707},
			Category: domain.CategoryNeithal,
			Tier:     domain.TierStrict,
			Rule:     "coastal_lowland",
		}, nil)

	var published domain.ClassificationDoneEvent
	mockStream.On("PublishToStream", mock.Anything, domain.StreamClassifyDone, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(domain.ClassificationDoneEvent)
		}).
		Return(nil)

	w := terrain.NewClassificationWorker(mockStream, mockClassifier, "test-group", logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Channel closes after the single message, Start returns nil
	err = w.Start(ctx)
	require.NoError(t, err)

	mockStream.AssertExpectations(t)
	mockClassifier.AssertExpectations(t)

	assert.Equal(t, jobID, published.JobID)
	require.Len(t, published.Results, 1)
	assert.Equal(t, domain.CategoryNeithal, published.Results[0].Classification.Category)
	assert.Empty(t, published.Results[0].Error)
}

func TestClassificationWorker_MalformedMessageIsAcked(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockClassifier := &MockPointClassifier{}

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- domain.StreamMessage{ID: "1-0", Data: "{not json"}
	close(msgChan)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamClassifyJobs, "test-group").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamClassifyJobs, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamClassifyJobs, "test-group", "1-0").Return(nil)

	w := terrain.NewClassificationWorker(mockStream, mockClassifier, "test-group", zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, w.Start(ctx))

	// Broken message is acknowledged, nothing is classified or published
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamClassifyJobs, "test-group", "1-0")
	mockStream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	mockClassifier.AssertNotCalled(t, "ClassifyPoint", mock.Anything, mock.Anything)
}
