// Package health provides health monitoring and aggregation services
package health

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrHealthCheckNotFound is returned by CheckOne for an unregistered name.
var ErrHealthCheckNotFound = errors.New("health check not found")

// ErrMonitoringAlreadyRunning reports that health polling is already
// running. Nothing in this package returns it.
var ErrMonitoringAlreadyRunning = errors.New("monitoring is already running")

// Aggregator implements the HealthAggregator interface, combining any number
// of registered HealthChecker results into a single worst-state status.
type Aggregator struct {
	mu          sync.RWMutex
	checkers    map[string]HealthChecker
	lastResults map[string]*CheckResult
	lastStatus  *AggregatedStatus
	config      *AggregatorConfig
	callbacks   []StatusChangeCallback
}

// AggregatorConfig represents configuration for the health aggregator
type AggregatorConfig struct {
	CheckInterval    time.Duration `json:"check_interval"`
	Timeout          time.Duration `json:"timeout"`
	EnableHistory    bool          `json:"enable_history"`
	HistorySize      int           `json:"history_size"`
	ParallelChecks   bool          `json:"parallel_checks"`
	FailureThreshold int           `json:"failure_threshold"`
}

// NewAggregator creates a new health aggregator
func NewAggregator(config *AggregatorConfig) *Aggregator {
	if config == nil {
		config = &AggregatorConfig{
			CheckInterval:    30 * time.Second,
			Timeout:          10 * time.Second,
			EnableHistory:    true,
			HistorySize:      100,
			ParallelChecks:   true,
			FailureThreshold: 3,
		}
	}

	return &Aggregator{
		checkers:    make(map[string]HealthChecker),
		lastResults: make(map[string]*CheckResult),
		config:      config,
		callbacks:   make([]StatusChangeCallback, 0),
	}
}

// RegisterCheck registers a health check with the aggregator
func (a *Aggregator) RegisterCheck(ctx context.Context, checker HealthChecker) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.checkers[checker.Name()] = checker
	return nil
}

// UnregisterCheck removes a health check from the aggregator
func (a *Aggregator) UnregisterCheck(ctx context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.checkers, name)
	delete(a.lastResults, name)
	return nil
}

// CheckAll runs all registered health checks and returns aggregated status,
// applying worst-state logic: a single critical checker sinks the overall
// status, a warning sinks it short of critical. Every check counts toward
// both views: readiness reports a warning overall as healthy, and liveness
// is the overall status.
func (a *Aggregator) CheckAll(ctx context.Context) (*AggregatedStatus, error) {
	a.mu.RLock()
	checkers := make(map[string]HealthChecker, len(a.checkers))
	for name, c := range a.checkers {
		checkers[name] = c
	}
	a.mu.RUnlock()

	results := make(map[string]*CheckResult, len(checkers))
	for name, checker := range checkers {
		result, err := checker.Check(ctx)
		if err != nil {
			result = &CheckResult{
				Name:      name,
				Status:    StatusCritical,
				Error:     err.Error(),
				Timestamp: time.Now(),
			}
		}
		results[name] = result
	}

	status := aggregate(results)

	a.mu.Lock()
	previous := a.lastStatus
	for name, result := range results {
		a.lastResults[name] = result
	}
	a.lastStatus = status
	callbacks := append([]StatusChangeCallback(nil), a.callbacks...)
	a.mu.Unlock()

	if previous == nil || previous.OverallStatus != status.OverallStatus {
		for _, cb := range callbacks {
			_ = cb(ctx, previous, status)
		}
	}

	return status, nil
}

// CheckOne runs a specific health check by name
func (a *Aggregator) CheckOne(ctx context.Context, name string) (*CheckResult, error) {
	a.mu.RLock()
	checker, exists := a.checkers[name]
	a.mu.RUnlock()

	if !exists {
		return nil, ErrHealthCheckNotFound
	}

	result, err := checker.Check(ctx)
	if err != nil {
		result = &CheckResult{
			Name:      name,
			Status:    StatusCritical,
			Error:     err.Error(),
			Timestamp: time.Now(),
		}
	}

	a.mu.Lock()
	a.lastResults[name] = result
	a.mu.Unlock()

	return result, nil
}

// GetStatus returns the current aggregated health status without running checks
func (a *Aggregator) GetStatus(ctx context.Context) (*AggregatedStatus, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.lastStatus != nil {
		return a.lastStatus, nil
	}

	results := make(map[string]*CheckResult, len(a.lastResults))
	for k, v := range a.lastResults {
		results[k] = v
	}
	return aggregate(results), nil
}

// IsReady returns true if the system is ready to accept traffic
func (a *Aggregator) IsReady(ctx context.Context) (bool, error) {
	status, err := a.CheckAll(ctx)
	if err != nil {
		return false, err
	}
	return status.ReadinessStatus == StatusHealthy || status.ReadinessStatus == StatusWarning, nil
}

// IsLive returns true if the system is alive (for liveness probes)
func (a *Aggregator) IsLive(ctx context.Context) (bool, error) {
	status, err := a.CheckAll(ctx)
	if err != nil {
		return false, err
	}
	return status.LivenessStatus != StatusCritical, nil
}

// aggregate folds a set of per-checker results into one worst-state summary.
func aggregate(results map[string]*CheckResult) *AggregatedStatus {
	summary := &StatusSummary{TotalChecks: len(results)}
	overall := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusCritical:
			summary.CriticalChecks++
			overall = StatusCritical
		case StatusWarning:
			summary.WarningChecks++
			if overall != StatusCritical {
				overall = StatusWarning
			}
		case StatusHealthy:
			summary.PassingChecks++
		default:
			summary.UnknownChecks++
			if overall == StatusHealthy {
				overall = StatusUnknown
			}
		}
	}
	if len(results) == 0 {
		overall = StatusUnknown
	}

	readiness := overall
	if overall == StatusWarning {
		readiness = StatusHealthy
	}

	return &AggregatedStatus{
		OverallStatus:   overall,
		ReadinessStatus: readiness,
		LivenessStatus:  overall,
		Timestamp:       time.Now(),
		CheckResults:    results,
		Summary:         summary,
	}
}

// SetCallback registers a callback invoked whenever CheckAll observes the
// overall status change.
func (a *Aggregator) SetCallback(callback StatusChangeCallback) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callbacks = append(a.callbacks, callback)
	return nil
}

// BasicChecker implements a basic HealthChecker for testing
type BasicChecker struct {
	name        string
	description string
	checkFunc   func(context.Context) error
}

// NewBasicChecker creates a new basic health checker
func NewBasicChecker(name, description string, checkFunc func(context.Context) error) *BasicChecker {
	return &BasicChecker{
		name:        name,
		description: description,
		checkFunc:   checkFunc,
	}
}

// Check performs a health check and returns the current status
func (c *BasicChecker) Check(ctx context.Context) (*CheckResult, error) {
	start := time.Now()

	result := &CheckResult{
		Name:      c.name,
		Timestamp: start,
		Status:    StatusHealthy,
	}

	if c.checkFunc != nil {
		if err := c.checkFunc(ctx); err != nil {
			result.Status = StatusCritical
			result.Error = err.Error()
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Name returns the unique name of this health check
func (c *BasicChecker) Name() string {
	return c.name
}

// Description returns a human-readable description of what this check validates
func (c *BasicChecker) Description() string {
	return c.description
}
