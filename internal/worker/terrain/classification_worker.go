package terrain

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/domain/repository"
	"github.com/terrain-microservice/internal/usecase/dto"
	"github.com/terrain-microservice/internal/worker"
)

// PointClassifier - часть ClassifyUseCase, нужная воркеру
type PointClassifier interface {
	ClassifyPoint(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error)
}

// ClassificationWorker обрабатывает задания асинхронной пакетной классификации:
// читает задания из стрима, классифицирует точки и публикует результат
// в стрим завершённых заданий
type ClassificationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	classifier   PointClassifier
	consumerName string
}

// NewClassificationWorker создает новый ClassificationWorker
func NewClassificationWorker(
	streamRepo repository.StreamRepository,
	classifier PointClassifier,
	consumerGroup string,
	logger *zap.Logger,
) *ClassificationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &ClassificationWorker{
		BaseWorker:   worker.NewBaseWorker("terrain-classification", consumerGroup, logger),
		streamRepo:   streamRepo,
		classifier:   classifier,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *ClassificationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ClassificationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamClassifyJobs, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamClassifyJobs, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		logger.Error("Failed to start stream consumer", zap.Error(err))
		return fmt.Errorf("failed to start stream consumer: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно задание из стрима
func (w *ClassificationWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()
	started := time.Now()

	var job domain.ClassificationJobEvent
	if err := json.Unmarshal([]byte(msg.Data), &job); err != nil {
		logger.Warn("Failed to parse job event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// ACK битое сообщение чтобы не застревало
		_ = w.streamRepo.AckMessage(ctx, domain.StreamClassifyJobs, w.ConsumerGroup(), msg.ID)
		return
	}

	done := domain.ClassificationDoneEvent{JobID: job.JobID}

	if !job.HasPoints() {
		done.Error = "job contains no points"
	} else {
		done.Results = w.classifyPoints(ctx, job.Points)
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamClassifyDone, done); err != nil {
		logger.Error("Failed to publish job result",
			zap.String("job_id", job.JobID.String()),
			zap.Error(err))
		// Не подтверждаем - сообщение останется в pending и будет
		// переобработано после перезапуска
		return
	}

	if err := w.streamRepo.AckMessage(ctx, domain.StreamClassifyJobs, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to acknowledge message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return
	}

	logger.Info("Classification job processed",
		zap.String("job_id", job.JobID.String()),
		zap.Int("points", len(job.Points)),
		zap.Duration("duration", time.Since(started)))
}

// classifyPoints классифицирует точки задания, ошибки - попоточечно
func (w *ClassificationWorker) classifyPoints(ctx context.Context, points []domain.Point) []domain.PointClassification {
	results := make([]domain.PointClassification, len(points))

	for i, p := range points {
		results[i] = domain.PointClassification{Index: i, Point: p}

		resp, err := w.classifier.ClassifyPoint(ctx, dto.ClassifyRequest{Lat: p.Lat, Lon: p.Lon})
		if err != nil {
			results[i].Error = err.Error()
			continue
		}

		results[i].Classification = &domain.Classification{
			Category:     resp.Category,
			Tier:         resp.Tier,
			Rule:         resp.Rule,
			Explanations: resp.Explanations,
			Sample:       resp.Sample,
		}
	}

	return results
}
