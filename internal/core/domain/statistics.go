package domain

// CarStatistics — сводка по текущему списку результатов.
// Средняя цена считается без объявлений «цена по запросу» (Price == 0).
type CarStatistics struct {
	Total        int
	AveragePrice int64
	ByBrand      map[string]int
	ByFuelType   map[string]int
	ByRegion     map[string]int
}
