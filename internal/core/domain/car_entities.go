package domain

import "time"

// CarSummary — карточка автомобиля в списке результатов поиска.
// Идентичность определяется полем ID.
type CarSummary struct {
	ID       int64
	Brand    string
	Model    string
	Year     int
	Price    int64 // цена в десятках тысяч вон; 0 = «цена по запросу»
	Mileage  int
	FuelType string
	Region   string
	ImageURL string
}

// CarDetail — полная информация об автомобиле для экрана деталей.
type CarDetail struct {
	CarSummary
	Description string
	SellerName  string
	ListedAt    time.Time
}

// ResultPage — одна страница результатов от каталога.
// После получения страница не изменяется.
type ResultPage struct {
	Cars       []CarSummary
	IsLastPage bool
	TotalCount int
}

// PriceAnalysis — средняя цена модели за один год выпуска.
type PriceAnalysis struct {
	Year         int
	AveragePrice int64
	ListingCount int
}
