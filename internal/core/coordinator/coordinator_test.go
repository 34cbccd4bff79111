package coordinator

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger_adapter "autofinder-client/internal/adapters/logger"
	"autofinder-client/internal/adapters/memory_cache"
	"autofinder-client/internal/core/domain"
	"autofinder-client/internal/core/port"
	"autofinder-client/internal/core/querylog"
)

// --- тестовые дублеры ---

// fakeGateway отдает страницы по номеру из ActiveFilters.Page.
// pagesFor подбирает набор страниц по модели, err ломает все вызовы.
type fakeGateway struct {
	mu          sync.Mutex
	pagesFor    map[string][]*domain.ResultPage
	err         error
	pageCalls   int
	lastFilters domain.FilterSet

	// если entered/release не nil, FetchPage сигналит о входе и ждет release
	entered chan struct{}
	release chan struct{}
}

func (g *fakeGateway) FetchPage(ctx context.Context, filters domain.FilterSet) (*domain.ResultPage, error) {
	g.mu.Lock()
	g.pageCalls++
	g.lastFilters = filters
	entered, release := g.entered, g.release
	err := g.err
	var page *domain.ResultPage
	if pages, ok := g.pagesFor[filters.Model]; ok && filters.Page < len(pages) {
		page = pages[filters.Page]
	}
	g.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}

	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, domain.NewCatalogError(domain.ErrorKindServerError, "no scripted page", 500, nil)
	}
	return page, nil
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pageCalls
}

func (g *fakeGateway) last() domain.FilterSet {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastFilters
}

func (g *fakeGateway) FetchDetail(ctx context.Context, carID int64) (*domain.CarDetail, error) {
	return nil, fmt.Errorf("not scripted")
}

func (g *fakeGateway) FetchSimilar(ctx context.Context, carID int64, limit int) ([]domain.CarSummary, error) {
	return nil, fmt.Errorf("not scripted")
}

func (g *fakeGateway) FetchPopular(ctx context.Context, limit int) ([]domain.CarSummary, error) {
	return nil, fmt.Errorf("not scripted")
}

func (g *fakeGateway) FetchPriceAnalysis(ctx context.Context, model string) ([]domain.PriceAnalysis, error) {
	return nil, fmt.Errorf("not scripted")
}

type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) Record(eventKind, subjectID, note string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventKind+":"+subjectID)
}

func (r *eventRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type memKVStore struct{ data []byte }

func (s *memKVStore) Load() ([]byte, bool, error) { return s.data, s.data != nil, nil }
func (s *memKVStore) Save(data []byte) error      { s.data = append([]byte(nil), data...); return nil }

func testLogger() port.LoggerPort {
	return logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
}

// makeCars генерирует count карточек с ID начиная с first.
func makeCars(first int64, count int) []domain.CarSummary {
	cars := make([]domain.CarSummary, count)
	for i := range cars {
		cars[i] = domain.CarSummary{
			ID:       first + int64(i),
			Brand:    "Hyundai",
			Model:    "Sonata",
			Year:     2020,
			Price:    1500,
			FuelType: "gasoline",
			Region:   "Seoul",
		}
	}
	return cars
}

type fixture struct {
	coordinator *Coordinator
	gateway     *fakeGateway
	cache       *memory_cache.MemoryCacheAdapter
	queryLog    *querylog.RecentQueryLog
	events      *eventRecorder
}

func newFixture(gateway *fakeGateway) *fixture {
	cache := memory_cache.NewMemoryCacheAdapter()
	events := &eventRecorder{}
	queryLog := querylog.NewRecentQueryLog(&memKVStore{}, testLogger())

	return &fixture{
		coordinator: NewCoordinator(gateway, cache, queryLog, events, testLogger(), 20),
		gateway:     gateway,
		cache:       cache,
		queryLog:    queryLog,
		events:      events,
	}
}

// sonataGateway — три страницы по сценарию: 20 + 20 + 3, всего 43 из 143.
func sonataGateway() *fakeGateway {
	return &fakeGateway{
		pagesFor: map[string][]*domain.ResultPage{
			"Sonata": {
				{Cars: makeCars(1, 20), IsLastPage: false, TotalCount: 143},
				{Cars: makeCars(21, 20), IsLastPage: false, TotalCount: 143},
				{Cars: makeCars(41, 3), IsLastPage: true, TotalCount: 143},
			},
			"Avante": {
				{Cars: makeCars(1001, 5), IsLastPage: true, TotalCount: 5},
			},
		},
	}
}

// --- тесты ---

func TestLoadFirstPage(t *testing.T) {
	f := newFixture(sonataGateway())

	f.coordinator.Load(context.Background(), domain.FilterSet{Model: "Sonata", Size: 20})

	state := f.coordinator.Snapshot()
	assert.Len(t, state.Results, 20)
	assert.Equal(t, 0, state.CurrentPage)
	assert.True(t, state.HasMorePages)
	assert.Equal(t, 143, state.TotalElements)
	assert.False(t, state.IsLoading)
	assert.Equal(t, domain.ErrorKindNone, state.LastError)
}

func TestFilterChangeResetsPagination(t *testing.T) {
	f := newFixture(sonataGateway())
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})
	f.coordinator.LoadMore(ctx)
	require.Equal(t, 1, f.coordinator.Snapshot().CurrentPage)

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Avante", Size: 20})

	state := f.coordinator.Snapshot()
	assert.Equal(t, 0, state.CurrentPage)
	require.Len(t, state.Results, 5)
	// Только первая страница нового поиска, без остатков старого
	assert.Equal(t, int64(1001), state.Results[0].ID)
	assert.False(t, state.HasMorePages)
	assert.Equal(t, 5, state.TotalElements)
}

func TestLoadMoreAppendsPages(t *testing.T) {
	f := newFixture(sonataGateway())
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})
	f.coordinator.LoadMore(ctx)

	state := f.coordinator.Snapshot()
	assert.Len(t, state.Results, 40)
	assert.Equal(t, 1, state.CurrentPage)
	assert.True(t, state.HasMorePages)

	f.coordinator.LoadMore(ctx)

	state = f.coordinator.Snapshot()
	assert.Len(t, state.Results, 43)
	assert.Equal(t, 2, state.CurrentPage)
	assert.False(t, state.HasMorePages)
	// Порядок страниц сохранен
	assert.Equal(t, int64(1), state.Results[0].ID)
	assert.Equal(t, int64(43), state.Results[42].ID)
}

func TestLoadMoreIsNoopAfterLastPage(t *testing.T) {
	f := newFixture(sonataGateway())
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Avante", Size: 20})
	require.False(t, f.coordinator.Snapshot().HasMorePages)
	callsBefore := f.gateway.calls()

	f.coordinator.LoadMore(ctx)
	f.coordinator.LoadMore(ctx)

	state := f.coordinator.Snapshot()
	assert.Equal(t, callsBefore, f.gateway.calls())
	assert.Equal(t, 0, state.CurrentPage)
	assert.Len(t, state.Results, 5)
}

func TestLoadMoreIsNoopWhileLoading(t *testing.T) {
	gateway := sonataGateway()
	f := newFixture(gateway)
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})

	// Блокируем следующий сетевой вызов
	gateway.mu.Lock()
	gateway.entered = make(chan struct{}, 1)
	gateway.release = make(chan struct{})
	gateway.mu.Unlock()

	done := make(chan struct{})
	go func() {
		f.coordinator.LoadMore(ctx) // повиснет внутри шлюза
		close(done)
	}()
	<-gateway.entered

	require.True(t, f.coordinator.Snapshot().IsLoading)
	callsInFlight := f.gateway.calls()

	f.coordinator.LoadMore(ctx) // должен отвалиться на guard-е

	assert.Equal(t, callsInFlight, f.gateway.calls(), "второй запрос страницы не должен уйти в сеть")
	assert.Equal(t, 1, f.coordinator.Snapshot().CurrentPage)

	close(gateway.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("первый LoadMore не завершился")
	}

	assert.Len(t, f.coordinator.Snapshot().Results, 40)
}

func TestRepeatedLoadServedFromCache(t *testing.T) {
	f := newFixture(sonataGateway())
	ctx := context.Background()

	filters := domain.FilterSet{Model: "Sonata", Size: 20}
	f.coordinator.Load(ctx, filters)
	f.coordinator.Load(ctx, filters)

	assert.Equal(t, 1, f.gateway.calls(), "повторный идентичный запрос обслуживается кэшем")
	assert.Len(t, f.coordinator.Snapshot().Results, 20)
}

func TestCaseVariantSearchDoesNotHitForeignCache(t *testing.T) {
	gateway := sonataGateway()
	gateway.pagesFor["sonata"] = []*domain.ResultPage{
		{Cars: makeCars(5001, 7), IsLastPage: true, TotalCount: 7},
	}
	f := newFixture(gateway)
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})
	require.Equal(t, 1, f.gateway.calls())

	// Другой регистр — другой поиск: кэш первого не должен отвечать за второй
	f.coordinator.Load(ctx, domain.FilterSet{Model: "sonata", Size: 20})

	assert.Equal(t, 2, f.gateway.calls(), "смена регистра обязана уйти в сеть")
	state := f.coordinator.Snapshot()
	require.Len(t, state.Results, 7)
	assert.Equal(t, int64(5001), state.Results[0].ID)
	assert.Equal(t, 7, state.TotalElements)
}

func TestRefreshInvalidatesCacheAndRefetches(t *testing.T) {
	f := newFixture(sonataGateway())
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})
	require.Equal(t, 1, f.gateway.calls())

	// Наполняем и другие семейства, чтобы проверить массовую инвалидацию
	f.cache.Set(ctx, "detail:1", &domain.CarDetail{}, time.Minute)
	f.cache.Set(ctx, "popular:10", []domain.CarSummary{}, time.Minute)

	f.coordinator.Refresh(ctx)

	assert.Equal(t, 2, f.gateway.calls(), "refresh обязан сходить в сеть")
	state := f.coordinator.Snapshot()
	assert.Equal(t, 0, state.CurrentPage)
	assert.Len(t, state.Results, 20)

	_, ok := f.cache.Get(ctx, "detail:1")
	assert.False(t, ok)
	_, ok = f.cache.Get(ctx, "popular:10")
	assert.False(t, ok)
}

func TestFailureLeavesResultsIntact(t *testing.T) {
	gateway := sonataGateway()
	f := newFixture(gateway)
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})
	before := f.coordinator.Snapshot()
	require.Len(t, before.Results, 20)

	gateway.mu.Lock()
	gateway.err = domain.NewCatalogError(domain.ErrorKindNetworkFailure, "no connectivity", 0, nil)
	gateway.mu.Unlock()

	// Refresh чистит кэш, так что запрос гарантированно идет в сеть
	f.coordinator.Refresh(ctx)

	state := f.coordinator.Snapshot()
	assert.Equal(t, before.Results, state.Results, "неуспех не трогает результаты")
	assert.Equal(t, before.TotalElements, state.TotalElements)
	assert.Equal(t, before.HasMorePages, state.HasMorePages)
	assert.Equal(t, domain.ErrorKindNetworkFailure, state.LastError)
	assert.False(t, state.IsLoading)
}

func TestNextSuccessClearsLastError(t *testing.T) {
	gateway := sonataGateway()
	f := newFixture(gateway)
	ctx := context.Background()

	gateway.mu.Lock()
	gateway.err = domain.NewCatalogError(domain.ErrorKindServerError, "boom", 502, nil)
	gateway.mu.Unlock()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})
	require.Equal(t, domain.ErrorKindServerError, f.coordinator.Snapshot().LastError)

	gateway.mu.Lock()
	gateway.err = nil
	gateway.mu.Unlock()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Size: 20})
	assert.Equal(t, domain.ErrorKindNone, f.coordinator.Snapshot().LastError)
}

func TestSearchTrimsRecordsAndResetsFilters(t *testing.T) {
	f := newFixture(sonataGateway())
	ctx := context.Background()

	// Сначала другой поиск с фильтрами, чтобы проверить их сброс
	f.coordinator.Load(ctx, domain.FilterSet{Model: "Avante", Region: "Busan", PriceMax: 3000, Size: 20})

	f.coordinator.Search(ctx, "  Sonata  ")

	sent := f.gateway.last()
	assert.Equal(t, "Sonata", sent.Model)
	assert.Empty(t, sent.Region, "остальные фильтры сбрасываются в значения по умолчанию")
	assert.Zero(t, sent.PriceMax)
	assert.Equal(t, 20, sent.Size)
	assert.Equal(t, 0, sent.Page)

	entries := f.queryLog.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Sonata", entries[0].Query)

	assert.Contains(t, f.events.recorded(), "search_performed:Sonata")
}

func TestSearchWithBlankQueryIsNoop(t *testing.T) {
	f := newFixture(sonataGateway())

	f.coordinator.Search(context.Background(), "   ")

	assert.Zero(t, f.gateway.calls())
	assert.Empty(t, f.queryLog.Entries())
	assert.Empty(t, f.events.recorded())
}

func TestSubscribeSeesLoadingTransitions(t *testing.T) {
	f := newFixture(sonataGateway())

	var mu sync.Mutex
	var loadingSeq []bool
	unsubscribe := f.coordinator.Subscribe(func(state domain.SearchState) {
		mu.Lock()
		loadingSeq = append(loadingSeq, state.IsLoading)
		mu.Unlock()
	})

	f.coordinator.Load(context.Background(), domain.FilterSet{Model: "Sonata", Size: 20})

	mu.Lock()
	require.GreaterOrEqual(t, len(loadingSeq), 2)
	assert.True(t, loadingSeq[0], "первое уведомление — начало загрузки")
	assert.False(t, loadingSeq[len(loadingSeq)-1], "последнее — загрузка завершена")
	seen := len(loadingSeq)
	mu.Unlock()

	unsubscribe()
	f.coordinator.LoadMore(context.Background())

	mu.Lock()
	assert.Equal(t, seen, len(loadingSeq), "после отписки уведомления не приходят")
	mu.Unlock()
}

func TestEndToEndSonataScenario(t *testing.T) {
	f := newFixture(sonataGateway())
	ctx := context.Background()

	f.coordinator.Load(ctx, domain.FilterSet{Model: "Sonata", Page: 0, Size: 20})

	state := f.coordinator.Snapshot()
	require.Len(t, state.Results, 20)
	require.Equal(t, 0, state.CurrentPage)
	require.True(t, state.HasMorePages)
	require.Equal(t, 143, state.TotalElements)

	f.coordinator.LoadMore(ctx)

	state = f.coordinator.Snapshot()
	assert.Len(t, state.Results, 40)
	assert.Equal(t, 1, state.CurrentPage)
	assert.True(t, state.HasMorePages)
}
