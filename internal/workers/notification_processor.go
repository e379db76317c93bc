package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/Fatush13/simplestore/internal/core/ports"
	"github.com/Fatush13/simplestore/internal/pkg/config"
)

// alertCooldown suppresses repeat alerts for the same item while one is
// already outstanding.
const alertCooldown = time.Hour

// NotificationProcessor handles TypeLowStockAlert tasks.
type NotificationProcessor struct {
	config  *config.Config
	service ports.StoreService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

func NewNotificationProcessor(cfg *config.Config, service ports.StoreService, cache ports.CacheRepository, logger *slog.Logger) *NotificationProcessor {
	return &NotificationProcessor{
		config:  cfg,
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("processor", "notification")),
	}
}

func (p *NotificationProcessor) ProcessLowStockAlert(ctx context.Context, t *asynq.Task) error {
	var payload LowStockPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshaling low stock payload: %v: %w", err, asynq.SkipRetry)
	}

	itemID, err := uuid.Parse(payload.ItemID)
	if err != nil {
		return fmt.Errorf("invalid item id %q: %w", payload.ItemID, asynq.SkipRetry)
	}

	// One alert per item per cooldown window.
	fresh, err := p.cache.SetNX(ctx, "alert:low_stock:"+payload.ItemID, time.Now().UTC(), alertCooldown)
	if err != nil {
		p.logger.WarnContext(ctx, "alert dedup check failed", slog.Any("error", err))
	} else if !fresh {
		p.logger.DebugContext(ctx, "low stock alert suppressed",
			slog.String("item_id", payload.ItemID))
		return nil
	}

	item, err := p.service.GetItem(ctx, itemID)
	if err != nil {
		// Item may have been deleted since the sale; nothing to alert on.
		p.logger.InfoContext(ctx, "skipping alert for missing item",
			slog.String("item_id", payload.ItemID), slog.Any("error", err))
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s", item.Name)
	body := fmt.Sprintf("Item %s (%s) is down to %d units.", item.Name, item.ID, payload.Remaining)

	if p.config.App.Environment == "development" {
		p.logger.InfoContext(ctx, "low stock alert",
			slog.String("item_id", payload.ItemID),
			slog.String("name", item.Name),
			slog.Int64("remaining", payload.Remaining))
		return nil
	}

	return p.sendEmail(ctx, subject, body)
}

func (p *NotificationProcessor) sendEmail(ctx context.Context, subject, body string) error {
	n := p.config.Notifications
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.FromAddress, n.AlertAddress, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", n.SMTPHost, n.SMTPPort)
	auth := smtp.PlainAuth("", n.SMTPUser, n.SMTPPassword, n.SMTPHost)
	if err := smtp.SendMail(addr, auth, n.FromAddress, []string{n.AlertAddress}, msg); err != nil {
		return fmt.Errorf("sending alert email: %w", err)
	}

	p.logger.InfoContext(ctx, "alert email sent", slog.String("subject", subject))
	return nil
}
