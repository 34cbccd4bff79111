package port

import (
	"autofinder-client/internal/core/domain"
	"context"
)

// CatalogGatewayPort — контракт удаленного API каталога автомобилей.
// Все вызовы однократные: один результат или одна ошибка (*domain.CatalogError).
type CatalogGatewayPort interface {
	FetchPage(ctx context.Context, filters domain.FilterSet) (*domain.ResultPage, error)
	FetchDetail(ctx context.Context, carID int64) (*domain.CarDetail, error)
	FetchSimilar(ctx context.Context, carID int64, limit int) ([]domain.CarSummary, error)
	FetchPopular(ctx context.Context, limit int) ([]domain.CarSummary, error)
	FetchPriceAnalysis(ctx context.Context, model string) ([]domain.PriceAnalysis, error)
}
