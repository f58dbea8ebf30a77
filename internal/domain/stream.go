package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с именами на стороне публикующего сервиса)
const (
	StreamClassifyJobs = "terrain:classification:jobs"
	StreamClassifyDone = "terrain:classification:done"
)

// ClassificationJobEvent - входящее событие на batch-классификацию
type ClassificationJobEvent struct {
	JobID  uuid.UUID `json:"job_id"`
	Points []Point   `json:"points"`
}

// HasPoints проверяет, что в задании есть хотя бы одна точка
func (e *ClassificationJobEvent) HasPoints() bool {
	return len(e.Points) > 0
}

// ClassificationDoneEvent - результат batch-классификации
type ClassificationDoneEvent struct {
	JobID   uuid.UUID             `json:"job_id"`
	Results []PointClassification `json:"results"`
	Error   string                `json:"error,omitempty"`
}

// PointClassification - результат классификации одной точки задания
type PointClassification struct {
	Index          int             `json:"index"`
	Point          Point           `json:"point"`
	Classification *Classification `json:"classification,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis стрима
type StreamMessage struct {
	ID   string
	Data string
}
