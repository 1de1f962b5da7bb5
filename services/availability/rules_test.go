package availability

import (
	"context"
	"errors"
	"testing"

	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRulesSource struct {
	rules *models.SchedulingRules
	err   error
	calls int
}

func (f *fakeRulesSource) FetchGlobalRules(ctx context.Context) (*models.SchedulingRules, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rules, nil
}

func intPtr(v int) *int { return &v }

func TestResolverCachesGlobalRules(t *testing.T) {
	src := &fakeRulesSource{rules: &models.SchedulingRules{
		StartHour: 8, EndHour: 16, WorkDays: []int{1, 3, 5}, AppointmentDuration: 45,
	}}
	resolver := NewRuleResolver(src, nil)

	first, err := resolver.GlobalRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, first.StartHour)

	_, err = resolver.GlobalRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "second read must come from cache")
}

func TestResolverInvalidateForcesRefetch(t *testing.T) {
	src := &fakeRulesSource{rules: &models.SchedulingRules{
		StartHour: 9, EndHour: 17, WorkDays: []int{1, 2, 3, 4, 5}, AppointmentDuration: 30,
	}}
	resolver := NewRuleResolver(src, nil)

	_, err := resolver.GlobalRules(context.Background())
	require.NoError(t, err)

	src.rules = &models.SchedulingRules{
		StartHour: 10, EndHour: 14, WorkDays: []int{2, 4}, AppointmentDuration: 20,
	}
	require.NoError(t, resolver.Invalidate(context.Background()))

	got, err := resolver.GlobalRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, got.StartHour)
	assert.Equal(t, 2, src.calls)
}

func TestResolverRejectsUnusableSourceRules(t *testing.T) {
	src := &fakeRulesSource{rules: &models.SchedulingRules{
		StartHour: 9, EndHour: 17, WorkDays: []int{1, 2, 3, 4, 5}, AppointmentDuration: 0,
	}}
	resolver := NewRuleResolver(src, nil)

	_, err := resolver.GlobalRules(context.Background())
	require.Error(t, err)
	assert.Equal(t, CodeRulesUnavailable, ErrorCode(err))

	// The bad value must not be cached either.
	_, err = resolver.GlobalRules(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestResolverSourceDownWithoutWarmCopy(t *testing.T) {
	src := &fakeRulesSource{err: errors.New("graph timeout")}
	resolver := NewRuleResolver(src, nil)

	_, err := resolver.GlobalRules(context.Background())
	require.Error(t, err)
	assert.Equal(t, CodeRulesUnavailable, ErrorCode(err))
}

func TestResolveMergesOverrides(t *testing.T) {
	src := &fakeRulesSource{rules: &models.SchedulingRules{
		StartHour: 9, EndHour: 17, WorkDays: []int{1, 2, 3, 4, 5}, AppointmentDuration: 30,
	}}
	resolver := NewRuleResolver(src, nil)

	provider := models.ProviderProfile{
		OverrideStartHour: intPtr(11),
		OverrideWorkDays:  []int{2, 4},
	}
	got, err := resolver.Resolve(context.Background(), provider)
	require.NoError(t, err)

	assert.Equal(t, 11, got.StartHour)
	assert.Equal(t, 17, got.EndHour, "unset override keeps the default")
	assert.Equal(t, []int{2, 4}, got.WorkDays)
	assert.Equal(t, 30, got.AppointmentDuration)
}

func TestResolveNoOverridesReturnsDefaults(t *testing.T) {
	defaults := models.SchedulingRules{
		StartHour: 9, EndHour: 17, WorkDays: []int{1, 2, 3, 4, 5}, AppointmentDuration: 30,
	}
	resolver := NewRuleResolver(&fakeRulesSource{rules: &defaults}, nil)

	got, err := resolver.Resolve(context.Background(), models.ProviderProfile{})
	require.NoError(t, err)
	assert.Equal(t, defaults, got)
}
