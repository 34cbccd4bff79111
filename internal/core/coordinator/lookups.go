package coordinator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"autofinder-client/internal/constants"
	"autofinder-client/internal/core/domain"
)

// Производные выборки каталога. Каждая — самостоятельный read-through кэш
// со своим семейством ключей и временем жизни; с пагинацией поиска они
// никак не связаны.

// GetDetail возвращает полную карточку автомобиля.
// Успешный просмотр уходит в телеметрию.
func (c *Coordinator) GetDetail(ctx context.Context, carID int64) (*domain.CarDetail, error) {
	key := fmt.Sprintf("%s%d", constants.CacheKeyDetailPrefix, carID)

	if cached, ok := c.cache.Get(ctx, key); ok {
		if detail, ok := cached.(*domain.CarDetail); ok {
			// Просмотр из кэша — все равно просмотр
			c.events.Record(constants.EventKindDetailViewed, strconv.FormatInt(carID, 10), detail.Brand+" "+detail.Model)
			return detail, nil
		}
	}

	detail, err := c.gateway.FetchDetail(ctx, carID)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, detail, constants.CacheTTLDetail)
	c.events.Record(constants.EventKindDetailViewed, strconv.FormatInt(carID, 10), detail.Brand+" "+detail.Model)

	return detail, nil
}

// GetSimilar возвращает похожие объявления.
func (c *Coordinator) GetSimilar(ctx context.Context, carID int64, limit int) ([]domain.CarSummary, error) {
	key := fmt.Sprintf("%s%d:%d", constants.CacheKeySimilarPrefix, carID, limit)

	if cached, ok := c.cache.Get(ctx, key); ok {
		if cars, ok := cached.([]domain.CarSummary); ok {
			return cars, nil
		}
	}

	cars, err := c.gateway.FetchSimilar(ctx, carID, limit)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, cars, constants.CacheTTLSimilar)
	return cars, nil
}

// GetPopular возвращает популярные объявления.
func (c *Coordinator) GetPopular(ctx context.Context, limit int) ([]domain.CarSummary, error) {
	key := fmt.Sprintf("%s%d", constants.CacheKeyPopularPrefix, limit)

	if cached, ok := c.cache.Get(ctx, key); ok {
		if cars, ok := cached.([]domain.CarSummary); ok {
			return cars, nil
		}
	}

	cars, err := c.gateway.FetchPopular(ctx, limit)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, cars, constants.CacheTTLPopular)
	return cars, nil
}

// GetPriceAnalysis возвращает аналитику цен по модели (по годам выпуска).
func (c *Coordinator) GetPriceAnalysis(ctx context.Context, model string) ([]domain.PriceAnalysis, error) {
	key := constants.CacheKeyPriceAnalysisPrefix + strings.ToLower(strings.TrimSpace(model))

	if cached, ok := c.cache.Get(ctx, key); ok {
		if analysis, ok := cached.([]domain.PriceAnalysis); ok {
			return analysis, nil
		}
	}

	analysis, err := c.gateway.FetchPriceAnalysis(ctx, model)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, analysis, constants.CacheTTLPriceAnalysis)
	return analysis, nil
}
