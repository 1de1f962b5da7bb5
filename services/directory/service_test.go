package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"carebook/config"
	"carebook/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphFixture serves the minimal site/list/item surface the directory needs.
type graphFixture struct {
	requests atomic.Int64
}

func (g *graphFixture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.requests.Add(1)
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/sites/clinic.sharepoint.test:":
		w.Write([]byte(`{"id": "site-1"}`))
	case "/sites/site-1/lists":
		w.Write([]byte(`{"value": [
			{"id": "list-prov", "displayName": "Providers"},
			{"id": "list-cfg", "displayName": "GlobalConfig"}
		]}`))
	case "/sites/site-1/lists/list-prov/items":
		w.Write([]byte(`{"value": [
			{"id": "1", "fields": {"Title": "Dr. Okafor", "Slug": "dr-okafor",
				"Email": "okafor@clinic.example", "SchedulingSource": "calendar"}},
			{"id": "2", "fields": {"Title": "Dr. Gone", "Slug": "dr-gone", "IsActive": false}}
		]}`))
	case "/sites/site-1/lists/list-cfg/items":
		w.Write([]byte(`{"value": [
			{"id": "9", "fields": {"Title": "DefaultOfficeHours",
				"StartHour": 8, "EndHour": 16, "AppointmentDuration": 20, "WorkDays": "2,3,4"}}
		]}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestDirectory(t *testing.T) (*DefaultDirectoryService, *graphFixture) {
	t.Helper()
	config.AppConfig.SiteHostname = "clinic.sharepoint.test"

	fixture := &graphFixture{}
	server := httptest.NewServer(fixture)
	t.Cleanup(server.Close)

	client := graph.NewClientWith(server.URL, server.Client(), 5*time.Second)
	return NewDefaultDirectoryService(client, nil), fixture
}

func TestListProvidersKeepsOnlyActive(t *testing.T) {
	svc, _ := newTestDirectory(t)

	providers, err := svc.ListProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "dr-okafor", providers[0].Slug)
	assert.Equal(t, "okafor@clinic.example", providers[0].Email)
}

func TestGetProviderBySlug(t *testing.T) {
	svc, _ := newTestDirectory(t)

	p, err := svc.GetProviderBySlug(context.Background(), "dr-okafor")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "1", p.ID)

	missing, err := svc.GetProviderBySlug(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFetchGlobalRulesReadsConfigRecord(t *testing.T) {
	svc, _ := newTestDirectory(t)

	rules, err := svc.FetchGlobalRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, rules.StartHour)
	assert.Equal(t, 16, rules.EndHour)
	assert.Equal(t, 20, rules.AppointmentDuration)
	assert.Equal(t, []int{2, 3, 4}, rules.WorkDays)
}

func TestSiteAndListIDsAreCached(t *testing.T) {
	svc, fixture := newTestDirectory(t)

	_, err := svc.ListProviders(context.Background())
	require.NoError(t, err)
	first := fixture.requests.Load() // site + lists + items

	_, err = svc.ListProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first+1, fixture.requests.Load(), "only the items fetch repeats")

	require.NoError(t, svc.InvalidateCaches(context.Background()))
	_, err = svc.ListProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first*2+1, fixture.requests.Load(), "identifiers are re-resolved after invalidation")
}

func TestFetchGlobalRulesFallsBackWhenRecordMissing(t *testing.T) {
	config.AppConfig.SiteHostname = "clinic.sharepoint.test"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/sites/clinic.sharepoint.test:":
			w.Write([]byte(`{"id": "site-1"}`))
		case "/sites/site-1/lists":
			w.Write([]byte(`{"value": [{"id": "list-cfg", "displayName": "GlobalConfig"}]}`))
		case "/sites/site-1/lists/list-cfg/items":
			w.Write([]byte(`{"value": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := graph.NewClientWith(server.URL, server.Client(), 5*time.Second)
	svc := NewDefaultDirectoryService(client, nil)

	rules, err := svc.FetchGlobalRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultRules(), *rules)
}

func TestFetchGlobalRulesUnusableRecordFallsBack(t *testing.T) {
	config.AppConfig.SiteHostname = "clinic.sharepoint.test"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/sites/clinic.sharepoint.test:":
			w.Write([]byte(`{"id": "site-1"}`))
		case "/sites/site-1/lists":
			w.Write([]byte(`{"value": [{"id": "list-cfg", "displayName": "GlobalConfig"}]}`))
		case "/sites/site-1/lists/list-cfg/items":
			// A misconfigured record must never flow into slot generation.
			w.Write([]byte(`{"value": [{"id": "9", "fields": {"Title": "DefaultOfficeHours",
				"StartHour": 9, "EndHour": 17, "AppointmentDuration": 0}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := graph.NewClientWith(server.URL, server.Client(), 5*time.Second)
	svc := NewDefaultDirectoryService(client, nil)

	rules, err := svc.FetchGlobalRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultRules(), *rules)
}

func TestFetchGlobalRulesSourceDownIsAnError(t *testing.T) {
	config.AppConfig.SiteHostname = "clinic.sharepoint.test"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "ServiceUnavailable"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := graph.NewClientWith(server.URL, server.Client(), 5*time.Second)
	svc := NewDefaultDirectoryService(client, nil)

	_, err := svc.FetchGlobalRules(context.Background())
	require.Error(t, err, "an unreachable config source must not silently become defaults")
}
