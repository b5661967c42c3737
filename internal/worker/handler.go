package worker

import (
	"context"
	"fmt"
	"log"

	"vidora/internal/queue"
)

// ChannelViewSink defines the interface for folding view counts into
// channels. This abstracts the repository layer so workers don't depend on
// the DB directly.
type ChannelViewSink interface {
	// IncrementTotalViews adds delta views to the channel's running total.
	IncrementTotalViews(ctx context.Context, channelID int64, delta int64) error
}

// Handler processes view events from the queue.
type Handler struct {
	sink ChannelViewSink
}

// NewHandler creates a new event handler.
func NewHandler(sink ChannelViewSink) *Handler {
	return &Handler{sink: sink}
}

// HandleBatch folds a batch of view events into the channel totals.
// Events for the same channel are coalesced into a single increment, so a
// batch of N views on one channel costs one UPDATE.
func (h *Handler) HandleBatch(ctx context.Context, messages []queue.Message) error {
	deltas := map[int64]int64{}
	for _, msg := range messages {
		if msg.Event.Type != queue.EventVideoViewed {
			log.Printf("[Worker] Unknown event type: %s (msgID=%s)", msg.Event.Type, msg.ID)
			continue
		}
		if msg.Event.ChannelID == 0 {
			continue
		}
		deltas[msg.Event.ChannelID]++
	}

	for channelID, delta := range deltas {
		if err := h.sink.IncrementTotalViews(ctx, channelID, delta); err != nil {
			return fmt.Errorf("increment channel %d views by %d: %w", channelID, delta, err)
		}
	}

	return nil
}
