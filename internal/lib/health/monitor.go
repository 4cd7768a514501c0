package health

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Monitor runs a fixed set of checks on a cron schedule.
type Monitor struct {
	cron    *cron.Cron
	checker *Checker
	names   []string
	logger  *zerolog.Logger
}

// NewMonitor schedules names to run every interval. Overlapping runs are skipped.
func NewMonitor(checker *Checker, interval time.Duration, names []string, logger *zerolog.Logger) (*Monitor, error) {
	cronLogger := cronLogger{logger: logger.With().Str("component", "health_monitor").Logger()}

	m := &Monitor{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		checker: checker,
		names:   names,
		logger:  logger,
	}

	if _, err := m.cron.AddFunc(fmt.Sprintf("@every %s", interval), m.tick); err != nil {
		return nil, fmt.Errorf("failed to schedule health monitor: %w", err)
	}

	return m, nil
}

func (m *Monitor) Start() {
	m.logger.Info().Strs("checks", m.names).Msg("starting health monitor")
	m.cron.Start()
}

// Stop halts scheduling and waits for a running tick, bounded by ctx.
func (m *Monitor) Stop(ctx context.Context) {
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
		m.logger.Warn().Msg("health monitor did not stop in time")
	}
}

func (m *Monitor) tick() {
	report := m.checker.Run(context.Background(), m.names...)
	if !report.Healthy() {
		m.logger.Warn().Interface("checks", report.Checks).Msg("scheduled health check failed")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
