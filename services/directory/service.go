package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"carebook/config"
	"carebook/models"
	"carebook/utils"

	"go.uber.org/zap"
)

const (
	providersListName    = "Providers"
	globalConfigListName = "GlobalConfig"
	officeHoursTitle     = "DefaultOfficeHours"
)

type listItem struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type listItemsResponse struct {
	Value []listItem `json:"value"`
}

func (s *DefaultDirectoryService) getSiteID(ctx context.Context) (string, error) {
	s.mu.Lock()
	cached := s.siteID
	s.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	var site struct {
		ID string `json:"id"`
	}
	query := url.Values{}
	query.Set("$select", "id")
	path := fmt.Sprintf("/sites/%s:", url.PathEscape(config.AppConfig.SiteHostname))
	if err := s.Client.GetJSON(ctx, path, query, &site); err != nil {
		return "", fmt.Errorf("failed to resolve site: %w", err)
	}

	s.mu.Lock()
	s.siteID = site.ID
	s.mu.Unlock()
	return site.ID, nil
}

func (s *DefaultDirectoryService) getListID(ctx context.Context, siteID, listName string) (string, error) {
	cacheKey := siteID + ":" + listName

	s.mu.Lock()
	cached, ok := s.listIDs[cacheKey]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	var lists struct {
		Value []struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
		} `json:"value"`
	}
	query := url.Values{}
	query.Set("$select", "id,displayName")
	if err := s.Client.GetJSON(ctx, fmt.Sprintf("/sites/%s/lists", siteID), query, &lists); err != nil {
		return "", fmt.Errorf("failed to fetch lists: %w", err)
	}

	for _, l := range lists.Value {
		if strings.EqualFold(l.DisplayName, listName) {
			s.mu.Lock()
			s.listIDs[cacheKey] = l.ID
			s.mu.Unlock()
			return l.ID, nil
		}
	}
	return "", fmt.Errorf("list %q not found on site %s", listName, siteID)
}

func (s *DefaultDirectoryService) fetchListItems(ctx context.Context, listName string) ([]listItem, error) {
	siteID, err := s.getSiteID(ctx)
	if err != nil {
		return nil, err
	}
	listID, err := s.getListID(ctx, siteID, listName)
	if err != nil {
		return nil, err
	}

	var resp listItemsResponse
	query := url.Values{}
	query.Set("$expand", "fields")
	path := fmt.Sprintf("/sites/%s/lists/%s/items", siteID, listID)
	if err := s.Client.GetJSON(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch %s items: %w", listName, err)
	}
	return resp.Value, nil
}

// ListProviders returns all active provider profiles, served from the Redis
// cache when warm.
func (s *DefaultDirectoryService) ListProviders(ctx context.Context) ([]models.ProviderProfile, error) {
	logger := utils.GetLogger()
	cacheKey := utils.DirectoryCachePrefix + "providers"

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var providers []models.ProviderProfile
			if err := json.Unmarshal([]byte(data), &providers); err == nil {
				return providers, nil
			}
			logger.Warn("discarding corrupt directory cache entry", zap.String("key", cacheKey))
		}
	}

	items, err := s.fetchListItems(ctx, providersListName)
	if err != nil {
		return nil, err
	}

	providers := make([]models.ProviderProfile, 0, len(items))
	for _, item := range items {
		p := parseProviderItem(item)
		if p.IsActive {
			providers = append(providers, p)
		}
	}

	if s.Cache != nil {
		if data, err := json.Marshal(providers); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, utils.DirectoryCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache provider directory", zap.Error(err))
			}
		}
	}
	return providers, nil
}

// GetProviderBySlug returns the active provider with the given slug, or nil.
func (s *DefaultDirectoryService) GetProviderBySlug(ctx context.Context, slug string) (*models.ProviderProfile, error) {
	providers, err := s.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if providers[i].Slug == slug {
			return &providers[i], nil
		}
	}
	return nil, nil
}

// GetProviderByID returns the active provider with the given ID, or nil.
func (s *DefaultDirectoryService) GetProviderByID(ctx context.Context, id string) (*models.ProviderProfile, error) {
	providers, err := s.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if providers[i].ID == id {
			return &providers[i], nil
		}
	}
	return nil, nil
}

// FetchGlobalRules loads the DefaultOfficeHours record from the GlobalConfig
// list. A missing record is a deliberate fallback to built-in defaults; only
// an unreachable source is an error.
func (s *DefaultDirectoryService) FetchGlobalRules(ctx context.Context) (*models.SchedulingRules, error) {
	items, err := s.fetchListItems(ctx, globalConfigListName)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	for _, item := range items {
		if title, _ := item.Fields["Title"].(string); title != officeHoursTitle {
			continue
		}
		rules := parseRulesItem(item)
		if !rules.Valid() {
			logger.Warn("office-hours record is unusable, using built-in defaults",
				zap.String("itemId", item.ID))
			break
		}
		return &rules, nil
	}

	logger.Info("no usable office-hours config record, using built-in defaults")
	rules := defaultRules()
	return &rules, nil
}

// InvalidateCaches resets the site/list ID caches and drops cached profiles.
func (s *DefaultDirectoryService) InvalidateCaches(ctx context.Context) error {
	s.mu.Lock()
	s.siteID = ""
	s.listIDs = make(map[string]string)
	s.mu.Unlock()

	if s.Cache != nil {
		if err := s.Cache.Del(ctx, utils.DirectoryCachePrefix+"providers").Err(); err != nil {
			return fmt.Errorf("failed to drop directory cache: %w", err)
		}
	}
	return nil
}
