package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"
	"mycomparer/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providerFor(adapters ...interfaces.EngineAdapter) *mock.AdapterProviderMock {
	byEngine := make(map[domain.EngineKind]interfaces.EngineAdapter, len(adapters))
	for _, a := range adapters {
		byEngine[a.Engine()] = a
	}
	return &mock.AdapterProviderMock{
		AdapterFunc: func(engine domain.EngineKind) (interfaces.EngineAdapter, error) {
			a, ok := byEngine[engine]
			if !ok {
				return nil, errors.New("unknown engine " + string(engine))
			}
			return a, nil
		},
	}
}

func TestNewDiscoveryService_Panics(t *testing.T) {
	provider := &mock.AdapterProviderMock{}
	clock := NewTimeProvider(helpers.TestNow)
	logger := log.NewNopLogger()
	t.Run("adapters_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discovery.go: adapters is required", func() {
			NewDiscoveryService(domain.Registry{}, nil, clock, time.Second, logger)
		})
	})
	t.Run("clock_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discovery.go: clock is required", func() {
			NewDiscoveryService(domain.Registry{}, provider, nil, time.Second, logger)
		})
	})
	t.Run("logger_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discovery.go: logger is required", func() {
			NewDiscoveryService(domain.Registry{}, provider, clock, time.Second, nil)
		})
	})
	t.Run("timeout_zero", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discovery.go: timeout must be positive", func() {
			NewDiscoveryService(domain.Registry{}, provider, clock, 0, logger)
		})
	})
}

func TestDiscoveryService_Discover(t *testing.T) {
	registry := domain.Registry{Instances: []domain.BackendInstance{
		{ID: "ts-1", Engine: domain.EngineTypesense, Region: "us", Address: "https://ts1", Enabled: true},
		{ID: "ts-2", Engine: domain.EngineTypesense, Region: "us", Address: "https://ts2", Enabled: true},
		{ID: "ts-3", Engine: domain.EngineTypesense, Region: "eu", Address: "https://ts3", Enabled: true},
		{ID: "ts-off", Engine: domain.EngineTypesense, Region: "eu", Address: "https://off", Enabled: false},
	}}

	t.Run("timed_out_instance_is_left_out", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		adapter := &mock.EngineAdapterMock{
			EngineFunc: func() domain.EngineKind { return domain.EngineTypesense },
			ListCollectionsFunc: func(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
				switch inst.ID {
				case "ts-2":
					<-release // ignores ctx; only the discovery timeout can end the wait
					return nil, nil
				case "ts-off":
					t.Error("disabled instance was queried")
				}
				return []domain.CollectionInfo{{Name: "bestbuy", DocCount: 100, Fields: []string{"name"}}}, nil
			},
		}
		svc := NewDiscoveryService(registry, providerFor(adapter), NewTimeProvider(helpers.TestNow), 50*time.Millisecond, log.NewNopLogger())

		started := time.Now()
		idx := svc.Discover(context.Background())
		assert.Less(t, time.Since(started), 2*time.Second)

		require.Contains(t, idx, "bestbuy")
		rec := idx["bestbuy"]
		assert.Len(t, rec.Instances, 2)
		assert.Contains(t, rec.Instances, "ts-1")
		assert.Contains(t, rec.Instances, "ts-3")
		assert.NotContains(t, rec.Instances, "ts-2")
		assert.Equal(t, "eu", rec.Instances["ts-3"].Region)
		assert.Equal(t, domain.EngineTypesense, rec.Instances["ts-3"].Engine)
	})

	t.Run("failures_are_tolerated", func(t *testing.T) {
		adapter := &mock.EngineAdapterMock{
			EngineFunc: func() domain.EngineKind { return domain.EngineTypesense },
			ListCollectionsFunc: func(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
				if inst.ID == "ts-1" {
					return nil, errors.New("connection refused")
				}
				return []domain.CollectionInfo{{Name: inst.ID + "-only", DocCount: 1}}, nil
			},
		}
		svc := NewDiscoveryService(registry, providerFor(adapter), NewTimeProvider(helpers.TestNow), time.Second, log.NewNopLogger())
		idx := svc.Discover(context.Background())
		assert.Equal(t, []string{"ts-2-only", "ts-3-only"}, idx.Names())
		assert.Len(t, adapter.ListCollectionsCalls(), 3)
	})

	t.Run("unknown_engine_is_a_failed_instance", func(t *testing.T) {
		reg := domain.Registry{Instances: []domain.BackendInstance{
			{ID: "ms-1", Engine: domain.EngineMeilisearch, Region: "us", Address: "https://ms", Enabled: true},
			registry.Instances[0],
		}}
		adapter := &mock.EngineAdapterMock{
			EngineFunc: func() domain.EngineKind { return domain.EngineTypesense },
			ListCollectionsFunc: func(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
				return []domain.CollectionInfo{{Name: "bestbuy", DocCount: 1}}, nil
			},
		}
		svc := NewDiscoveryService(reg, providerFor(adapter), NewTimeProvider(helpers.TestNow), time.Second, log.NewNopLogger())
		idx := svc.Discover(context.Background())
		require.Contains(t, idx, "bestbuy")
		assert.Len(t, idx["bestbuy"].Instances, 1)
	})

	t.Run("each_pass_builds_a_new_index", func(t *testing.T) {
		pass := 0
		adapter := &mock.EngineAdapterMock{
			EngineFunc: func() domain.EngineKind { return domain.EngineTypesense },
			ListCollectionsFunc: func(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
				if pass == 0 {
					return []domain.CollectionInfo{{Name: "old", DocCount: 1}}, nil
				}
				return []domain.CollectionInfo{{Name: "new", DocCount: 1}}, nil
			},
		}
		svc := NewDiscoveryService(registry, providerFor(adapter), NewTimeProvider(helpers.TestNow), time.Second, log.NewNopLogger())
		first := svc.Discover(context.Background())
		pass = 1
		second := svc.Discover(context.Background())
		assert.Equal(t, []string{"old"}, first.Names())
		assert.Equal(t, []string{"new"}, second.Names())
	})

	t.Run("summary_logs_pass_duration", func(t *testing.T) {
		adapter := &mock.EngineAdapterMock{
			EngineFunc: func() domain.EngineKind { return domain.EngineTypesense },
			ListCollectionsFunc: func(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
				return []domain.CollectionInfo{{Name: "bestbuy", DocCount: 1}}, nil
			},
		}
		var buf bytes.Buffer
		logger := log.NewLogfmtLogger(log.NewSyncWriter(&buf))
		svc := NewDiscoveryService(registry, providerFor(adapter), NewTimeProvider(helpers.TestClock(250*time.Millisecond)), time.Second, logger)
		svc.Discover(context.Background())
		assert.Contains(t, buf.String(), `msg="discovery finished" elapsed=250ms collections=1 instances_ok=3 instances_total=3`)
	})

	t.Run("no_enabled_instances", func(t *testing.T) {
		svc := NewDiscoveryService(domain.Registry{}, providerFor(), NewTimeProvider(helpers.TestNow), time.Second, log.NewNopLogger())
		assert.Empty(t, svc.Discover(context.Background()))
	})
}
