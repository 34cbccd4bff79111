package coordinator

import (
	"context"
	"strings"
	"sync"

	"autofinder-client/internal/constants"
	"autofinder-client/internal/contextkeys"
	"autofinder-client/internal/core/domain"
	"autofinder-client/internal/core/port"
	"autofinder-client/internal/core/querylog"
)

const defaultPageSize = 20

// Coordinator — ядро поискового слоя: владеет текущими фильтрами, курсором
// пагинации, накопленным списком результатов и флагом загрузки. Оркестрирует
// кэш и шлюз каталога так, чтобы наблюдаемое состояние оставалось согласованным.
//
// Все публичные операции рассчитаны на вызов из одного управляющего контекста
// (event loop UI, обработчик HTTP-запроса). Завершение одного сетевого вызова
// применяется к состоянию атомарно, под общим мьютексом. Перекрывающиеся
// Load/Search намеренно НЕ защищены от гонки — побеждает последний записавший;
// единственная защита от дублей — проверка IsLoading внутри LoadMore.
type Coordinator struct {
	mu    sync.Mutex
	state domain.SearchState

	gateway  port.CatalogGatewayPort
	cache    port.CacheStorePort
	queryLog *querylog.RecentQueryLog
	events   port.EventSinkPort
	logger   port.LoggerPort

	pageSize int

	subMu       sync.Mutex
	subscribers map[int]func(domain.SearchState)
	nextSubID   int
}

func NewCoordinator(
	gateway port.CatalogGatewayPort,
	cache port.CacheStorePort,
	queryLog *querylog.RecentQueryLog,
	events port.EventSinkPort,
	logger port.LoggerPort,
	pageSize int,
) *Coordinator {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Coordinator{
		gateway:     gateway,
		cache:       cache,
		queryLog:    queryLog,
		events:      events,
		logger:      logger.WithFields(port.Fields{"component": "Coordinator"}),
		pageSize:    pageSize,
		subscribers: make(map[int]func(domain.SearchState)),
	}
}

// Load запускает поиск с переданными фильтрами.
// Смена фильтров (без учета страницы) сбрасывает пагинацию и список результатов;
// тот же набор фильтров продолжает текущий поиск с текущей страницы.
func (c *Coordinator) Load(ctx context.Context, filters domain.FilterSet) {
	c.mu.Lock()
	if !filters.SameSearch(c.state.ActiveFilters) {
		c.state.ActiveFilters = filters
		c.state.CurrentPage = 0
		c.state.Results = nil
	}
	// Страница всегда штампуется из курсора перед отправкой
	c.state.ActiveFilters.Page = c.state.CurrentPage
	stamped := c.state.ActiveFilters
	c.mu.Unlock()

	c.fetch(ctx, stamped, false)
}

// LoadMore догружает следующую страницу текущего поиска.
// Ничего не делает, если страниц больше нет или загрузка уже идет —
// это и есть защита от дублирующихся запросов следующей страницы.
func (c *Coordinator) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if !c.state.HasMorePages || c.state.IsLoading {
		c.mu.Unlock()
		return
	}
	c.state.CurrentPage++
	c.state.ActiveFilters.Page = c.state.CurrentPage
	stamped := c.state.ActiveFilters
	c.mu.Unlock()

	c.fetch(ctx, stamped, true)
}

// Search выполняет свободнотекстовый поиск по модели.
// Запрос пишется в журнал последних запросов и в телеметрию; все остальные
// фильтры сбрасываются в значения по умолчанию.
func (c *Coordinator) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	c.mu.Lock()
	total := c.state.TotalElements
	c.mu.Unlock()

	c.queryLog.Add(query, total)
	c.events.Record(constants.EventKindSearchPerformed, query, "")

	c.Load(ctx, domain.FilterSet{Model: query, Size: c.pageSize})
}

// Refresh инвалидирует все семейства кэша, сбрасывает курсор на первую
// страницу и заново выполняет текущий поиск (уже мимо кэша).
func (c *Coordinator) Refresh(ctx context.Context) {
	for _, prefix := range []string{
		constants.CacheKeySearchPrefix,
		constants.CacheKeyDetailPrefix,
		constants.CacheKeySimilarPrefix,
		constants.CacheKeyPopularPrefix,
		constants.CacheKeyPriceAnalysisPrefix,
	} {
		c.cache.RemoveAllMatchingPrefix(ctx, prefix)
	}

	c.mu.Lock()
	c.state.CurrentPage = 0
	c.state.ActiveFilters.Page = 0
	stamped := c.state.ActiveFilters
	c.mu.Unlock()

	c.fetch(ctx, stamped, false)
}

// fetch — общий путь загрузки страницы.
// Для не-append запросов сначала проверяется кэш: непросроченная запись
// отдается сразу, не трогая флаг загрузки и сеть. Кэшируются тоже только
// не-append страницы (append-страницы зависят от накопленного состояния).
func (c *Coordinator) fetch(ctx context.Context, filters domain.FilterSet, appendPage bool) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Coordinator",
		"operation": "fetch",
		"page":      filters.Page,
		"append":    appendPage,
	})

	key := constants.CacheKeySearchPrefix + filters.CacheKey()

	if !appendPage {
		if cached, ok := c.cache.Get(ctx, key); ok {
			if page, ok := cached.(*domain.ResultPage); ok {
				logger.Debug("Search page served from cache", nil)
				c.applyPage(page, false)
				return
			}
		}
	}

	c.mu.Lock()
	c.state.IsLoading = true
	c.state.LastError = domain.ErrorKindNone
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	page, err := c.gateway.FetchPage(ctx, filters)
	if err != nil {
		kind := domain.ErrorKindOf(err)
		logger.Error("Catalog fetch failed", err, port.Fields{"error_kind": string(kind)})

		// Неуспех не трогает результаты и пагинацию — только флаг и ошибку
		c.mu.Lock()
		c.state.IsLoading = false
		c.state.LastError = kind
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return
	}

	logger.Info("Catalog page received", port.Fields{
		"items_on_page": len(page.Cars),
		"total":         page.TotalCount,
		"is_last":       page.IsLastPage,
	})

	c.mu.Lock()
	c.mergePageLocked(page, appendPage)
	c.state.IsLoading = false
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	if !appendPage {
		c.cache.Set(ctx, key, page, constants.CacheTTLSearch)
	}
}

// applyPage применяет страницу из кэша, не меняя флаг загрузки.
func (c *Coordinator) applyPage(page *domain.ResultPage, appendPage bool) {
	c.mu.Lock()
	c.mergePageLocked(page, appendPage)
	c.state.LastError = domain.ErrorKindNone
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// mergePageLocked вливает страницу в состояние: append дописывает в хвост
// (дубликаты по ID не фильтруются — серверу верим), replace заменяет список.
func (c *Coordinator) mergePageLocked(page *domain.ResultPage, appendPage bool) {
	if appendPage {
		c.state.Results = append(c.state.Results, page.Cars...)
	} else {
		c.state.Results = append([]domain.CarSummary(nil), page.Cars...)
	}
	c.state.HasMorePages = !page.IsLastPage
	c.state.TotalElements = page.TotalCount
}
