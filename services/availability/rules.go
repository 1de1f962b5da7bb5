package availability

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"carebook/models"
	"carebook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GlobalRulesSource loads the default scheduling rules from the
// administrative configuration. The directory service satisfies this.
type GlobalRulesSource interface {
	FetchGlobalRules(ctx context.Context) (*models.SchedulingRules, error)
}

// RuleResolver merges global defaults with per-provider overrides. Defaults
// change rarely, so they are cached in process memory with an explicit
// Invalidate; a Redis warm copy survives restarts and covers brief source
// outages.
type RuleResolver struct {
	Source GlobalRulesSource
	Cache  *redis.Client // optional warm copy

	mu     sync.RWMutex
	cached *models.SchedulingRules
}

// NewRuleResolver returns a resolver with a cold cache.
func NewRuleResolver(source GlobalRulesSource, cache *redis.Client) *RuleResolver {
	return &RuleResolver{Source: source, Cache: cache}
}

// GlobalRules returns the cached defaults, fetching them on first use.
func (r *RuleResolver) GlobalRules(ctx context.Context) (models.SchedulingRules, error) {
	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	logger := utils.GetLogger()
	rules, err := r.Source.FetchGlobalRules(ctx)
	if err == nil && (rules == nil || !rules.Valid()) {
		err = errors.New("source returned unusable scheduling rules")
	}
	if err != nil {
		// Source down; a warm Redis copy still lets slot listing proceed.
		if warm := r.warmCopy(ctx); warm != nil {
			logger.Warn("rules source unreachable, serving warm copy", zap.Error(err))
			r.store(*warm)
			return *warm, nil
		}
		return models.SchedulingRules{}, NewRulesUnavailableError(err)
	}

	r.store(*rules)
	if r.Cache != nil {
		if data, mErr := json.Marshal(rules); mErr == nil {
			if sErr := r.Cache.Set(ctx, utils.RulesCacheKey, data, utils.RulesCacheTTL).Err(); sErr != nil {
				logger.Warn("failed to store warm rules copy", zap.Error(sErr))
			}
		}
	}
	return *rules, nil
}

// Resolve merges per-provider overrides field-by-field over the defaults.
func (r *RuleResolver) Resolve(ctx context.Context, provider models.ProviderProfile) (models.SchedulingRules, error) {
	rules, err := r.GlobalRules(ctx)
	if err != nil {
		return models.SchedulingRules{}, err
	}

	if provider.OverrideStartHour != nil {
		rules.StartHour = *provider.OverrideStartHour
	}
	if provider.OverrideEndHour != nil {
		rules.EndHour = *provider.OverrideEndHour
	}
	if len(provider.OverrideWorkDays) > 0 {
		rules.WorkDays = provider.OverrideWorkDays
	}
	return rules, nil
}

// Invalidate clears the in-memory copy and the Redis warm copy so the next
// request re-reads the configuration source.
func (r *RuleResolver) Invalidate(ctx context.Context) error {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()

	if r.Cache != nil {
		return r.Cache.Del(ctx, utils.RulesCacheKey).Err()
	}
	return nil
}

func (r *RuleResolver) store(rules models.SchedulingRules) {
	r.mu.Lock()
	r.cached = &rules
	r.mu.Unlock()
}

func (r *RuleResolver) warmCopy(ctx context.Context) *models.SchedulingRules {
	if r.Cache == nil {
		return nil
	}
	data, err := r.Cache.Get(ctx, utils.RulesCacheKey).Result()
	if err != nil {
		return nil
	}
	var rules models.SchedulingRules
	if err := json.Unmarshal([]byte(data), &rules); err != nil || !rules.Valid() {
		return nil
	}
	return &rules
}
