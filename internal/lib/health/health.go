// Package health runs dependency checks for the /status endpoint and the
// scheduled monitor.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc pings one dependency.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// Report is the body served by /status.
type Report struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type check struct {
	fn CheckFunc
	// required checks turn the whole report unhealthy when they fail.
	required bool
}

// Checker holds the registered checks. It is safe for concurrent use once
// registration is done.
type Checker struct {
	checks      map[string]check
	timeout     time.Duration
	environment string
	logger      *zerolog.Logger
	nrApp       *newrelic.Application
}

// NewChecker creates a Checker; nrApp may be nil.
func NewChecker(environment string, timeout time.Duration, logger *zerolog.Logger, nrApp *newrelic.Application) *Checker {
	return &Checker{
		checks:      make(map[string]check),
		timeout:     timeout,
		environment: environment,
		logger:      logger,
		nrApp:       nrApp,
	}
}

// Register adds a named check.
func (c *Checker) Register(name string, required bool, fn CheckFunc) {
	c.checks[name] = check{fn: fn, required: required}
}

// Names lists the registered checks in name order.
func (c *Checker) Names() []string {
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named checks concurrently, or every check when names is
// empty. Unknown names are ignored.
func (c *Checker) Run(ctx context.Context, names ...string) Report {
	if len(names) == 0 {
		names = c.Names()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	report := Report{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: c.environment,
		Checks:      make(map[string]CheckResult, len(names)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, name := range names {
		chk, ok := c.checks[name]
		if !ok {
			continue
		}

		wg.Add(1)
		go func(name string, chk check) {
			defer wg.Done()

			start := time.Now()
			err := chk.fn(ctx)
			elapsed := time.Since(start)

			result := CheckResult{Status: StatusHealthy, ResponseTime: elapsed.String()}
			if err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				c.recordFailure(name, err, elapsed)
			} else {
				c.logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = result
			if err != nil && chk.required {
				report.Status = StatusUnhealthy
			}
		}(name, chk)
	}
	wg.Wait()

	return report
}

func (c *Checker) recordFailure(name string, err error, elapsed time.Duration) {
	c.logger.Error().
		Err(err).
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if c.nrApp != nil {
		c.nrApp.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
}
