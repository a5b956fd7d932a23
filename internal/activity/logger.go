package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mbalagam/marketplace/internal/alert"
	"github.com/mbalagam/marketplace/internal/events"
)

const (
	activityFile    = "activity.log"
	applicationFile = "application.log"

	// ActionHTTPRequest entries go to application.log, everything else to
	// activity.log.
	ActionHTTPRequest = "http_request"
)

// Log timestamps are written in IST (UTC+5:30) to line up with the historical
// activity.log contents.
var ist = time.FixedZone("IST", 5*3600+30*60)

type ctxKey struct{}

// WithClientIP records the caller's IP so entries logged deeper in the stack
// carry it.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

func clientIP(ctx context.Context) string {
	if v := ctx.Value(ctxKey{}); v != nil {
		if ip, ok := v.(string); ok {
			return ip
		}
	}
	return ""
}

type Entry struct {
	ID       string         `json:"id"`
	TS       string         `json:"ts"`
	Action   string         `json:"action"`
	IP       string         `json:"ip"`
	Detail   map[string]any `json:"detail"`
	Username string         `json:"username,omitempty"`
}

// Logger appends newline-delimited JSON entries to the activity and
// application logs. It is strictly fire-and-forget: a failed write, publish
// or alert never fails the operation being logged.
type Logger struct {
	activityPath    string
	applicationPath string

	log      *zap.Logger
	producer *events.Producer
	notifier *alert.Notifier
}

func NewLogger(logsDir string, log *zap.Logger, producer *events.Producer, notifier *alert.Notifier) (*Logger, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{
		activityPath:    filepath.Join(logsDir, activityFile),
		applicationPath: filepath.Join(logsDir, applicationFile),
		log:             log,
		producer:        producer,
		notifier:        notifier,
	}, nil
}

// Event records one action. username may be empty; the key is then omitted
// from the entry. detail may be nil.
func (l *Logger) Event(ctx context.Context, action, username string, detail map[string]any) {
	if detail == nil {
		detail = map[string]any{}
	}
	entry := Entry{
		ID:       uuid.NewString(),
		TS:       time.Now().In(ist).Format(time.RFC3339Nano),
		Action:   action,
		IP:       clientIP(ctx),
		Detail:   detail,
		Username: username,
	}

	target := l.activityPath
	if action == ActionHTTPRequest {
		target = l.applicationPath
	}
	if err := l.append(target, entry); err != nil {
		l.log.Warn("activity log write failed", zap.String("action", action), zap.Error(err))
	}

	if l.producer != nil {
		go l.publish(entry)
	}
	if l.notifier != nil && strings.HasSuffix(action, "_failed") {
		go l.alert(entry)
	}
}

func (l *Logger) append(path string, entry Entry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

func (l *Logger) publish(entry Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.producer.PublishEvent(ctx, entry.Action, entry); err != nil {
		l.log.Warn("activity event publish failed", zap.String("action", entry.Action), zap.Error(err))
	}
}

func (l *Logger) alert(entry Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	who := entry.Username
	if who == "" {
		who = "unknown"
	}
	desc, _ := json.Marshal(entry)
	err := l.notifier.Notify(ctx, alert.Incident{
		ShortDescription: fmt.Sprintf("%s - %s", entry.Action, who),
		Description:      string(desc),
	})
	if err != nil {
		failure := Entry{
			ID:     uuid.NewString(),
			TS:     time.Now().In(ist).Format(time.RFC3339Nano),
			Action: "alert_notify_failed",
			Detail: map[string]any{"error": err.Error(), "source_action": entry.Action},
		}
		if werr := l.append(l.activityPath, failure); werr != nil {
			l.log.Warn("activity log write failed", zap.Error(werr))
		}
	}
}
