package catalog_api_client

import (
	"fmt"

	"autofinder-client/internal/core/domain"
)

// Маппинг сбоев HTTP-уровня в таксономию ошибок ядра:
// сеть / сервер / декодирование. Других видов здесь не возникает.

func newNetworkError(cause error) *domain.CatalogError {
	return domain.NewCatalogError(
		domain.ErrorKindNetworkFailure,
		"catalog request failed",
		0,
		cause,
	)
}

func newServerError(statusCode int, body []byte) *domain.CatalogError {
	return domain.NewCatalogError(
		domain.ErrorKindServerError,
		fmt.Sprintf("catalog returned non-success status: %s", truncateBody(body)),
		statusCode,
		nil,
	)
}

func newDecodingError(cause error) *domain.CatalogError {
	return domain.NewCatalogError(
		domain.ErrorKindDecodingError,
		"catalog response has unexpected shape",
		0,
		cause,
	)
}

// truncateBody обрезает тело ошибки, чтобы не раздувать логи.
func truncateBody(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
