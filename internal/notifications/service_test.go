package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"splice/internal/config"
	"splice/internal/notifications"
)

func TestNewServiceReturnsNoopWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.Enabled = false
	cfg.Notifications.TopicURL = "https://ntfy.sh/splice"

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.Enabled = true
	cfg.Notifications.TopicURL = "   "

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRenderStarted(context.Background(), "Road Trip"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		send           func(notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "import completed",
			send: func(svc notifications.Service) error {
				return svc.NotifyImportComplete(context.Background(), "surf.mp4", "video")
			},
			expectTitle:   "Splice - Imported",
			expectMessage: "🎬 Imported: surf.mp4 (video)",
			expectTags:    "splice,import,completed",
		},
		{
			name: "render started",
			send: func(svc notifications.Service) error {
				return svc.NotifyRenderStarted(context.Background(), "Road Trip")
			},
			expectTitle:   "Splice - Render Started",
			expectMessage: "Started rendering: Road Trip",
			expectTags:    "splice,render,started",
		},
		{
			name: "render completed",
			send: func(svc notifications.Service) error {
				return svc.NotifyRenderCompleted(context.Background(), "Road Trip", "Road Trip.mp4")
			},
			expectTitle:    "Splice - Render Complete",
			expectMessage:  "✅ Render complete: Road Trip\nFile: Road Trip.mp4",
			expectTags:     "splice,render,completed",
			expectPriority: "high",
		},
		{
			name: "render failed",
			send: func(svc notifications.Service) error {
				return svc.NotifyRenderFailed(context.Background(), "Road Trip", errors.New("ffmpeg exited with code 1"))
			},
			expectTitle:    "Splice - Render Failed",
			expectMessage:  "❌ Render failed: Road Trip\nffmpeg exited with code 1",
			expectTags:     "splice,render,failed",
			expectPriority: "high",
		},
		{
			name: "error with context",
			send: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("database locked"), "edit")
			},
			expectTitle:    "Splice - Error",
			expectMessage:  "❌ Error with edit: database locked",
			expectTags:     "splice,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			send: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Splice - Test",
			expectMessage:  "🧪 Notification system test",
			expectTags:     "splice,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.Enabled = true
			cfg.Notifications.TopicURL = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.send(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.Enabled = true
	cfg.Notifications.TopicURL = server.URL

	svc := notifications.NewService(&cfg)
	err := svc.NotifyRenderStarted(context.Background(), "Road Trip")
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected the status code in the error, got %v", err)
	}
}
