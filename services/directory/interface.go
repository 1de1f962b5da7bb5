package directory

import (
	"context"
	"sync"

	"carebook/graph"
	"carebook/models"

	"github.com/go-redis/redis/v8"
)

// DirectoryService resolves provider profiles and the global scheduling
// configuration from the administrative site. The core treats everything it
// returns as read-only input.
type DirectoryService interface {
	ListProviders(ctx context.Context) ([]models.ProviderProfile, error)
	GetProviderBySlug(ctx context.Context, slug string) (*models.ProviderProfile, error)
	GetProviderByID(ctx context.Context, id string) (*models.ProviderProfile, error)
	// FetchGlobalRules loads the default office-hours record. A missing
	// record falls back to built-in defaults; only an unreachable source
	// returns an error.
	FetchGlobalRules(ctx context.Context) (*models.SchedulingRules, error)
	// InvalidateCaches drops the site/list ID caches and cached profiles so
	// the next request re-reads the source of truth.
	InvalidateCaches(ctx context.Context) error
}

// DefaultDirectoryService implements DirectoryService on top of SharePoint
// lists reached through Graph, with a Redis profile cache in front.
type DefaultDirectoryService struct {
	Client *graph.Client
	Cache  *redis.Client

	// Process-scoped identifier caches, explicit and resettable.
	mu      sync.Mutex
	siteID  string
	listIDs map[string]string
}

// NewDefaultDirectoryService returns a directory service with empty caches.
func NewDefaultDirectoryService(client *graph.Client, cache *redis.Client) *DefaultDirectoryService {
	return &DefaultDirectoryService{
		Client:  client,
		Cache:   cache,
		listIDs: make(map[string]string),
	}
}
