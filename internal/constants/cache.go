package constants

import "time"

// Семейства ключей кэша. Refresh инвалидирует все пять семейств разом.
const (
	CacheKeySearchPrefix        = "search:"
	CacheKeyDetailPrefix        = "detail:"
	CacheKeySimilarPrefix       = "similar:"
	CacheKeyPopularPrefix       = "popular:"
	CacheKeyPriceAnalysisPrefix = "price:"
)

// Время жизни записей кэша по видам данных.
// Детали и аналитика цен меняются редко, подборки — часто.
const (
	CacheTTLSearch        = 5 * time.Minute
	CacheTTLDetail        = 30 * time.Minute
	CacheTTLPriceAnalysis = 30 * time.Minute
	CacheTTLSimilar       = 2 * time.Minute
	CacheTTLPopular       = 2 * time.Minute
)
