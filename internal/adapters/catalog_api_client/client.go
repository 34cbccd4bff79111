package catalog_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"autofinder-client/internal/contextkeys"
	"autofinder-client/internal/core/domain"
	"autofinder-client/internal/core/port"
)

// Client — HTTP-реализация шлюза каталога.
// Возвращает либо результат, либо *domain.CatalogError с видом ошибки.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ port.CatalogGatewayPort = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, requestURL string) (*http.Response, error) {
	// 1. Извлекаем trace_id из контекста
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// 2. Устанавливаем заголовок для трассировки
	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// fetchBody выполняет запрос и возвращает тело успешного ответа.
// Не-2xx статус и транспортные сбои уже замаплены в CatalogError.
func (c *Client) fetchBody(ctx context.Context, requestURL string) ([]byte, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CatalogApiClient",
		"url":       requestURL,
	})
	logger.Debug("Sending request to catalog API", nil)

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL)
	if err != nil {
		logger.Error("Failed to perform request to catalog API", err, nil)
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		catErr := newServerError(resp.StatusCode, bodyBytes)
		logger.Error("Received error response from catalog API", catErr, port.Fields{"status_code": resp.StatusCode})
		return nil, catErr
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read response from catalog API", err, nil)
		return nil, newNetworkError(err)
	}

	return bodyBytes, nil
}

func (c *Client) FetchPage(ctx context.Context, filters domain.FilterSet) (*domain.ResultPage, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CatalogApiClient",
		"method":    "FetchPage",
	})

	query := url.Values{}
	if filters.Model != "" {
		query.Set("model", filters.Model)
	}
	if filters.PriceMin > 0 {
		query.Set("priceMin", strconv.FormatInt(filters.PriceMin, 10))
	}
	if filters.PriceMax > 0 {
		query.Set("priceMax", strconv.FormatInt(filters.PriceMax, 10))
	}
	if filters.FuelType != "" {
		query.Set("fuel", filters.FuelType)
	}
	if filters.Region != "" {
		query.Set("region", filters.Region)
	}
	query.Set("page", strconv.Itoa(filters.Page))
	query.Set("size", strconv.Itoa(filters.Size))

	requestURL := fmt.Sprintf("%s/api/v1/cars?%s", c.baseURL, query.Encode())

	body, err := c.fetchBody(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	// Сначала валидируем контракт, потом маппим
	if err := validateAgainst(compiledPageSchema, body); err != nil {
		logger.Error("Catalog page failed contract validation", err, nil)
		return nil, newDecodingError(err)
	}

	var dto carPageResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		logger.Error("Failed to decode catalog page", err, nil)
		return nil, newDecodingError(err)
	}

	logger.Info("Successfully received catalog page", port.Fields{
		"items_on_page": len(dto.Content),
		"total":         dto.TotalElements,
	})

	return &domain.ResultPage{
		Cars:       summariesToDomain(dto.Content),
		IsLastPage: dto.Last,
		TotalCount: dto.TotalElements,
	}, nil
}

func (c *Client) FetchDetail(ctx context.Context, carID int64) (*domain.CarDetail, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CatalogApiClient",
		"method":    "FetchDetail",
		"car_id":    carID,
	})

	requestURL := fmt.Sprintf("%s/api/v1/cars/%d", c.baseURL, carID)

	body, err := c.fetchBody(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	if err := validateAgainst(compiledDetailSchema, body); err != nil {
		logger.Error("Catalog detail failed contract validation", err, nil)
		return nil, newDecodingError(err)
	}

	var dto carDetailResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		logger.Error("Failed to decode catalog detail", err, nil)
		return nil, newDecodingError(err)
	}

	logger.Info("Successfully received car detail", nil)
	return dto.toDomain(), nil
}

func (c *Client) FetchSimilar(ctx context.Context, carID int64, limit int) ([]domain.CarSummary, error) {
	requestURL := fmt.Sprintf("%s/api/v1/cars/%d/similar?limit=%d", c.baseURL, carID, limit)
	return c.fetchSummaryList(ctx, requestURL)
}

func (c *Client) FetchPopular(ctx context.Context, limit int) ([]domain.CarSummary, error) {
	requestURL := fmt.Sprintf("%s/api/v1/cars/popular?limit=%d", c.baseURL, limit)
	return c.fetchSummaryList(ctx, requestURL)
}

func (c *Client) fetchSummaryList(ctx context.Context, requestURL string) ([]domain.CarSummary, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CatalogApiClient",
		"method":    "fetchSummaryList",
	})

	body, err := c.fetchBody(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	if err := validateAgainst(compiledSummaryListSchema, body); err != nil {
		logger.Error("Catalog list failed contract validation", err, nil)
		return nil, newDecodingError(err)
	}

	var dtos []carSummaryResponse
	if err := json.Unmarshal(body, &dtos); err != nil {
		logger.Error("Failed to decode catalog list", err, nil)
		return nil, newDecodingError(err)
	}

	logger.Info("Successfully received catalog list", port.Fields{"items": len(dtos)})
	return summariesToDomain(dtos), nil
}

func (c *Client) FetchPriceAnalysis(ctx context.Context, model string) ([]domain.PriceAnalysis, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CatalogApiClient",
		"method":    "FetchPriceAnalysis",
		"model":     model,
	})

	query := url.Values{}
	query.Set("model", model)
	requestURL := fmt.Sprintf("%s/api/v1/cars/price-analysis?%s", c.baseURL, query.Encode())

	body, err := c.fetchBody(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	if err := validateAgainst(compiledPriceListSchema, body); err != nil {
		logger.Error("Price analysis failed contract validation", err, nil)
		return nil, newDecodingError(err)
	}

	var dtos []priceAnalysisResponse
	if err := json.Unmarshal(body, &dtos); err != nil {
		logger.Error("Failed to decode price analysis", err, nil)
		return nil, newDecodingError(err)
	}

	result := make([]domain.PriceAnalysis, len(dtos))
	for i, dto := range dtos {
		result[i] = domain.PriceAnalysis{
			Year:         dto.Year,
			AveragePrice: dto.AveragePrice,
			ListingCount: dto.ListingCount,
		}
	}

	logger.Info("Successfully received price analysis", port.Fields{"points": len(result)})
	return result, nil
}
