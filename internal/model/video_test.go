package model

import (
	"encoding/json"
	"testing"
)

func TestVideoMarshalJSON_EmitsBothURLFields(t *testing.T) {
	v := Video{
		ID:       1,
		Title:    "A video",
		VideoURL: "https://example.com/v.mp4",
		Likes:    []int64{},
		Dislikes: []int64{},
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out["videoUrl"] != "https://example.com/v.mp4" {
		t.Errorf("videoUrl = %v, want the source URL", out["videoUrl"])
	}
	if out["url"] != "https://example.com/v.mp4" {
		t.Errorf("url = %v, want the source URL", out["url"])
	}
}

func TestCreateVideoRequest_SourceURL(t *testing.T) {
	tests := []struct {
		name string
		req  CreateVideoRequest
		want string
	}{
		{
			name: "url field wins when both set",
			req:  CreateVideoRequest{URL: "https://a.example/v.mp4", VideoURL: "https://b.example/v.mp4"},
			want: "https://a.example/v.mp4",
		},
		{
			name: "falls back to videoUrl",
			req:  CreateVideoRequest{VideoURL: "https://b.example/v.mp4"},
			want: "https://b.example/v.mp4",
		},
		{
			name: "empty when neither set",
			req:  CreateVideoRequest{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.SourceURL(); got != tt.want {
				t.Errorf("SourceURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
