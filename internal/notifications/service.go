package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"splice/internal/config"
)

const userAgent = "Splice/0.1.0"

// Service defines the notification surface exposed to the editor and render
// pipeline. Every method is safe to call with a nil or unconfigured backend.
type Service interface {
	NotifyImportComplete(ctx context.Context, clipName, kind string) error
	NotifyRenderStarted(ctx context.Context, projectName string) error
	NotifyRenderCompleted(ctx context.Context, projectName, outputFile string) error
	NotifyRenderFailed(ctx context.Context, projectName string, cause error) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When notifications are disabled or no topic is set, a noop implementation
// is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.TopicURL)
	if !cfg.Notifications.Enabled || topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyImportComplete(ctx context.Context, clipName, kind string) error {
	clipName = strings.TrimSpace(clipName)
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = "unknown"
	}
	data := payload{
		title:   "Splice - Imported",
		message: fmt.Sprintf("🎬 Imported: %s (%s)", clipName, kind),
		tags:    []string{"splice", "import", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderStarted(ctx context.Context, projectName string) error {
	projectName = strings.TrimSpace(projectName)
	data := payload{
		title:   "Splice - Render Started",
		message: fmt.Sprintf("Started rendering: %s", projectName),
		tags:    []string{"splice", "render", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderCompleted(ctx context.Context, projectName, outputFile string) error {
	projectName = strings.TrimSpace(projectName)
	outputFile = strings.TrimSpace(outputFile)
	message := fmt.Sprintf("✅ Render complete: %s", projectName)
	if outputFile != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, outputFile)
	}
	data := payload{
		title:    "Splice - Render Complete",
		message:  message,
		tags:     []string{"splice", "render", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderFailed(ctx context.Context, projectName string, cause error) error {
	projectName = strings.TrimSpace(projectName)
	reason := "unknown"
	if cause != nil {
		reason = strings.TrimSpace(cause.Error())
	}
	data := payload{
		title:    "Splice - Render Failed",
		message:  fmt.Sprintf("❌ Render failed: %s\n%s", projectName, reason),
		tags:     []string{"splice", "render", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Splice - Error",
		message:  builder.String(),
		tags:     []string{"splice", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Splice - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"splice", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyImportComplete(context.Context, string, string) error  { return nil }
func (noopService) NotifyRenderStarted(context.Context, string) error           { return nil }
func (noopService) NotifyRenderCompleted(context.Context, string, string) error { return nil }
func (noopService) NotifyRenderFailed(context.Context, string, error) error     { return nil }
func (noopService) NotifyError(context.Context, error, string) error            { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
