package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lumenbank/credit-approval/internal/infrastructure/ingest"
	"github.com/lumenbank/credit-approval/pkg/kafka"
)

// IngestHandler enqueues portfolio ingestion runs for the out-of-band worker.
type IngestHandler struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewIngestHandler creates the handler.
func NewIngestHandler(producer *kafka.Producer, topic string, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{producer: producer, topic: topic, logger: logger}
}

// Trigger handles POST /admin/ingest: it enqueues a request and returns 202;
// the batch itself runs in ingestd.
func (h *IngestHandler) Trigger(c *gin.Context) {
	req := ingest.Request{
		RequestID:   uuid.New().String(),
		RequestedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode request"})
		return
	}

	if err := h.producer.Publish(c.Request.Context(), h.topic, kafka.Message{
		Key:   []byte(req.RequestID),
		Value: payload,
	}); err != nil {
		h.logger.Error("failed to enqueue ingestion request", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not enqueue ingestion"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"request_id": req.RequestID})
}
