package worker

import (
	"context"
	"errors"
	"testing"

	"vidora/internal/queue"
)

type mockViewSink struct {
	increments map[int64]int64
	err        error
}

func (m *mockViewSink) IncrementTotalViews(ctx context.Context, channelID int64, delta int64) error {
	if m.err != nil {
		return m.err
	}
	if m.increments == nil {
		m.increments = map[int64]int64{}
	}
	m.increments[channelID] += delta
	return nil
}

func viewMessage(id string, videoID, channelID int64) queue.Message {
	return queue.Message{
		ID:    id,
		Event: queue.NewVideoViewedEvent(videoID, channelID),
	}
}

func TestHandler_HandleBatch_CoalescesPerChannel(t *testing.T) {
	sink := &mockViewSink{}
	h := NewHandler(sink)

	messages := []queue.Message{
		viewMessage("1-0", 10, 5),
		viewMessage("1-1", 11, 5),
		viewMessage("1-2", 12, 7),
		viewMessage("1-3", 10, 5),
	}

	if err := h.HandleBatch(context.Background(), messages); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if sink.increments[5] != 3 {
		t.Errorf("channel 5 delta = %d, want 3", sink.increments[5])
	}
	if sink.increments[7] != 1 {
		t.Errorf("channel 7 delta = %d, want 1", sink.increments[7])
	}
}

func TestHandler_HandleBatch_SkipsUnknownEvents(t *testing.T) {
	sink := &mockViewSink{}
	h := NewHandler(sink)

	messages := []queue.Message{
		{ID: "1-0", Event: queue.ViewEvent{Type: "something_else", ChannelID: 5}},
		viewMessage("1-1", 10, 5),
	}

	if err := h.HandleBatch(context.Background(), messages); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if sink.increments[5] != 1 {
		t.Errorf("channel 5 delta = %d, want 1", sink.increments[5])
	}
}

func TestHandler_HandleBatch_SinkError(t *testing.T) {
	sinkErr := errors.New("db down")
	h := NewHandler(&mockViewSink{err: sinkErr})

	err := h.HandleBatch(context.Background(), []queue.Message{viewMessage("1-0", 10, 5)})
	if !errors.Is(err, sinkErr) {
		t.Errorf("error = %v, want wrapped %v", err, sinkErr)
	}
}
