package maintenance

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/settingsd/internal/services"
	"github.com/charlesng35/settingsd/pkg/logger"
)

const (
	defaultAuditRetentionDays = 90
	defaultAuditSpec          = "@daily"
)

// Cleaner runs background housekeeping for the audit trail.
type Cleaner struct {
	audit     *services.AuditService
	cron      *cron.Cron
	log       *zap.Logger
	retention int
	schedule  string
	started   bool
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithAuditRetentionDays adjusts how long audit logs are retained before cleanup.
func WithAuditRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.retention = days
		}
	}
}

// WithAuditSchedule overrides the cron schedule for audit retention enforcement.
func WithAuditSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner. A nil audit service disables every job.
func NewCleaner(audit *services.AuditService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		audit:     audit,
		retention: defaultAuditRetentionDays,
		schedule:  defaultAuditSpec,
		log:       logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the retention job and launches the scheduler.
func (c *Cleaner) Start() error {
	if c.audit == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		removed, err := c.audit.CleanupOlderThan(context.Background(), c.retention)
		if err != nil {
			c.log.Warn("audit cleanup failed", zap.Error(err))
			return
		}
		if removed > 0 {
			c.log.Info("audit cleanup completed", zap.Int64("removed", removed), zap.Int("retention_days", c.retention))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	c.started = true
	return nil
}

// Stop halts the scheduler and waits for a running job up to the context deadline.
func (c *Cleaner) Stop(ctx context.Context) error {
	if c.cron == nil || !c.started {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	done := c.cron.Stop()
	c.started = false

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return errors.New("maintenance: timed out waiting for running jobs")
	}
}

// RunOnce executes every configured cleanup routine sequentially.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.audit != nil {
		if _, err := c.audit.CleanupOlderThan(ctx, c.retention); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
