package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/repository"
	orderUC "github.com/fastygo/crm/usecase/order"
	productUC "github.com/fastygo/crm/usecase/product"
	reportUC "github.com/fastygo/crm/usecase/report"
)

// Sink names under which jobs append their log lines.
const (
	SinkHeartbeat = "heartbeat"
	SinkLowStock  = "low_stock"
	SinkReminders = "order_reminders"
	SinkReport    = "crm_report"
)

// Sink is the external append-only log the maintenance jobs write to.
type Sink interface {
	Append(job, line string) error
}

// Pruner drops aged sink entries. Sinks without retention simply don't
// implement it.
type Pruner interface {
	Cleanup(olderThan time.Time) error
}

// Config bounds the outbound calls every job makes. Retention limits how long
// sink entries are kept; zero disables trimming.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	Retention  time.Duration
}

// Jobs holds the maintenance job bodies. Scheduling is wired separately; each
// method is safe to invoke from any trigger. Job failures are logged to the
// sink and never propagated.
type Jobs struct {
	products *productUC.UseCase
	orders   *orderUC.UseCase
	report   *reportUC.UseCase
	sink     Sink
	pruner   Pruner
	logger   *zap.Logger
	cfg      Config
	now      func() time.Time
}

func New(
	products *productUC.UseCase,
	orders *orderUC.UseCase,
	report *reportUC.UseCase,
	sink Sink,
	logger *zap.Logger,
	cfg Config,
) *Jobs {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &Jobs{
		products: products,
		orders:   orders,
		report:   report,
		sink:     sink,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
	if pruner, ok := sink.(Pruner); ok {
		j.pruner = pruner
	}
	return j
}

// TrimLog drops sink entries older than the retention window.
func (j *Jobs) TrimLog() {
	if j.pruner == nil || j.cfg.Retention <= 0 {
		return
	}
	cutoff := j.now().Add(-j.cfg.Retention)
	if err := j.pruner.Cleanup(cutoff); err != nil {
		j.logger.Error("job log trim failed", zap.Error(err))
	}
}

// Heartbeat appends a timestamped liveness line.
func (j *Jobs) Heartbeat() {
	line := fmt.Sprintf("%s CRM is alive", j.now().Format("02-01-2006 15:04:05"))
	j.append(SinkHeartbeat, line)
}

// LowStockSweep replenishes low-stock products and logs a summary plus one
// line per updated product.
func (j *Jobs) LowStockSweep(ctx context.Context) {
	var updated []domain.Product
	var message string

	err := j.withRetry(ctx, func(ctx context.Context) error {
		products, msg, err := j.products.ReplenishLowStock(ctx)
		if err != nil {
			return err
		}
		updated = products
		message = msg
		return nil
	})
	if err != nil {
		j.logger.Error("low stock sweep failed", zap.Error(err))
		j.append(SinkLowStock, fmt.Sprintf("%s - ERROR: %v", j.now().Format("2006-01-02 15:04:05"), err))
		return
	}

	j.append(SinkLowStock, fmt.Sprintf("%s - %s", j.now().Format("2006-01-02 15:04:05"), message))
	for _, product := range updated {
		j.append(SinkLowStock, fmt.Sprintf("Updated: %s, New Stock: %d", product.Name, product.Stock))
	}
}

// OrderReminderScan logs a reminder line for every order placed within the
// last seven days.
func (j *Jobs) OrderReminderScan(ctx context.Context) {
	since := j.now().AddDate(0, 0, -7)

	var recent []reminderOrder
	err := j.withRetry(ctx, func(ctx context.Context) error {
		found, err := j.collectOrders(ctx, since)
		if err != nil {
			return err
		}
		recent = found
		return nil
	})
	if err != nil {
		j.logger.Error("order reminder scan failed", zap.Error(err))
		j.append(SinkReminders, fmt.Sprintf("[%s] ERROR: Could not process reminders. Error: %v",
			j.now().Format("2006-01-02 15:04:05"), err))
		return
	}

	j.append(SinkReminders, fmt.Sprintf("Processing reminders at %s", j.now().Format("2006-01-02 15:04:05")))
	if len(recent) == 0 {
		j.append(SinkReminders, "No pending orders found.")
		return
	}
	for _, order := range recent {
		j.append(SinkReminders, fmt.Sprintf("REMINDER: Order ID %s for customer %s", order.ID, order.CustomerEmail))
	}
}

// NightlyReport aggregates counts and revenue into one report line.
func (j *Jobs) NightlyReport(ctx context.Context) {
	var snapshot reportUC.Report
	err := j.withRetry(ctx, func(ctx context.Context) error {
		s, err := j.report.Snapshot(ctx)
		if err != nil {
			return err
		}
		snapshot = s
		return nil
	})
	if err != nil {
		j.logger.Error("nightly report failed", zap.Error(err))
		j.append(SinkReport, fmt.Sprintf("Failed to generate CRM report at %s: %v",
			j.now().Format("2006-01-02 15:04:05"), err))
		return
	}

	j.append(SinkReport, snapshot.FormatLine())
}

type reminderOrder struct {
	ID            string
	CustomerEmail string
}

// collectOrders pages through all orders newer than since; list queries clamp
// page size so one page is never enough.
func (j *Jobs) collectOrders(ctx context.Context, since time.Time) ([]reminderOrder, error) {
	const pageSize = 100

	var collected []reminderOrder
	for offset := 0; ; offset += pageSize {
		page, err := j.orders.List(ctx, repository.OrderFilter{
			DateFrom: &since,
			Limit:    pageSize,
			Offset:   offset,
		})
		if err != nil {
			return nil, err
		}
		for _, order := range page {
			collected = append(collected, reminderOrder{ID: order.ID, CustomerEmail: order.CustomerEmail})
		}
		if len(page) < pageSize {
			return collected, nil
		}
	}
}

func (j *Jobs) withRetry(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < j.cfg.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, j.cfg.Timeout)
		lastErr = fn(attemptCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func (j *Jobs) append(sink, line string) {
	if j.sink == nil {
		return
	}
	if err := j.sink.Append(sink, line); err != nil {
		j.logger.Error("failed to append job log line",
			zap.String("sink", sink),
			zap.Error(err))
	}
}
