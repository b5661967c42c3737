package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the views stream
const (
	EventVideoViewed = "video_viewed"
)

// Stream names
const (
	StreamViews = "stream:views"
)

// Consumer group name for view workers
const (
	ConsumerGroupViews = "view_workers"
)

// ViewEvent represents a single video view published to the views stream.
// Workers fold these into the owning channel's total view counter.
type ViewEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when the view happened

	VideoID   int64 `json:"video_id"`
	ChannelID int64 `json:"channel_id"`
}

// NewVideoViewedEvent creates an event for a single view of a video.
func NewVideoViewedEvent(videoID, channelID int64) ViewEvent {
	return ViewEvent{
		Type:      EventVideoViewed,
		Timestamp: time.Now().Unix(),
		VideoID:   videoID,
		ChannelID: channelID,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so the payload travels as JSON in
// a "data" field next to a plain "type" field for quick filtering.
func (e ViewEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseViewEvent parses a ViewEvent from Redis stream message values.
func ParseViewEvent(values map[string]interface{}) (ViewEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return ViewEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event ViewEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return ViewEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
