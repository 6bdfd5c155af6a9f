package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAllHealthyWhenAllCheckersPass(t *testing.T) {
	agg := NewAggregator(nil)
	require.NoError(t, agg.RegisterCheck(context.Background(), NewBasicChecker("a", "", nil)))
	require.NoError(t, agg.RegisterCheck(context.Background(), NewBasicChecker("b", "", nil)))

	status, err := agg.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusHealthy, status.OverallStatus)
	assert.Equal(t, 2, status.Summary.PassingChecks)
}

func TestCheckAllCriticalCheckerSinksOverallStatus(t *testing.T) {
	agg := NewAggregator(nil)
	require.NoError(t, agg.RegisterCheck(context.Background(), NewBasicChecker("ok", "", nil)))
	require.NoError(t, agg.RegisterCheck(context.Background(), NewBasicChecker("broken", "", func(ctx context.Context) error {
		return errors.New("boom")
	})))

	status, err := agg.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusCritical, status.OverallStatus)
	assert.Equal(t, 1, status.Summary.CriticalChecks)
}

type warningChecker struct{}

func (warningChecker) Name() string        { return "warn" }
func (warningChecker) Description() string { return "" }
func (warningChecker) Check(ctx context.Context) (*CheckResult, error) {
	return &CheckResult{Name: "warn", Status: StatusWarning}, nil
}

func TestReadinessToleratesWarningButNotCritical(t *testing.T) {
	agg := NewAggregator(nil)
	require.NoError(t, agg.RegisterCheck(context.Background(), warningChecker{}))

	ready, err := agg.IsReady(context.Background())
	require.NoError(t, err)
	assert.True(t, ready, "a warning-only status should still be considered ready")

	agg2 := NewAggregator(nil)
	require.NoError(t, agg2.RegisterCheck(context.Background(), NewBasicChecker("broken", "", func(ctx context.Context) error {
		return errors.New("boom")
	})))
	ready, err = agg2.IsReady(context.Background())
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestLivenessOnlyFailsOnCritical(t *testing.T) {
	agg := NewAggregator(nil)
	require.NoError(t, agg.RegisterCheck(context.Background(), warningChecker{}))

	live, err := agg.IsLive(context.Background())
	require.NoError(t, err)
	assert.True(t, live)

	agg2 := NewAggregator(nil)
	require.NoError(t, agg2.RegisterCheck(context.Background(), NewBasicChecker("broken", "", func(ctx context.Context) error {
		return errors.New("boom")
	})))
	live, err = agg2.IsLive(context.Background())
	require.NoError(t, err)
	assert.False(t, live)
}

func TestCheckOneUnregisteredReturnsErrHealthCheckNotFound(t *testing.T) {
	agg := NewAggregator(nil)
	_, err := agg.CheckOne(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrHealthCheckNotFound)
}

func TestSetCallbackFiresOnlyOnStatusTransition(t *testing.T) {
	agg := NewAggregator(nil)
	calls := 0
	require.NoError(t, agg.SetCallback(func(ctx context.Context, prev, cur *AggregatedStatus) error {
		calls++
		return nil
	}))
	require.NoError(t, agg.RegisterCheck(context.Background(), NewBasicChecker("a", "", nil)))

	_, err := agg.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "first CheckAll always transitions from nil")

	_, err = agg.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "no status change on the second identical run")
}

func TestGetStatusReturnsUnknownBeforeAnyCheck(t *testing.T) {
	agg := NewAggregator(nil)
	status, err := agg.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, status.OverallStatus)
}

func TestUnregisterCheckRemovesItFromCheckAll(t *testing.T) {
	agg := NewAggregator(nil)
	require.NoError(t, agg.RegisterCheck(context.Background(), NewBasicChecker("a", "", nil)))
	require.NoError(t, agg.UnregisterCheck(context.Background(), "a"))

	status, err := agg.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, status.Summary.TotalChecks)
}
