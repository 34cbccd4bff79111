package rest

import (
	"autofinder-client/internal/core/domain"
)

// --- Запросы ---

type SearchRequest struct {
	Query string `json:"query"`
}

type LoadRequest struct {
	Model    string `json:"model"`
	PriceMin int64  `json:"priceMin"`
	PriceMax int64  `json:"priceMax"`
	Fuel     string `json:"fuel"`
	Region   string `json:"region"`
	Size     int    `json:"size"`
}

func (req LoadRequest) toFilterSet() domain.FilterSet {
	return domain.FilterSet{
		Model:    req.Model,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		FuelType: req.Fuel,
		Region:   req.Region,
		Size:     req.Size,
	}
}

// --- Ответы ---

type CarCardResponse struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Price    int64  `json:"price"`
	Mileage  int    `json:"mileage"`
	Fuel     string `json:"fuel"`
	Region   string `json:"region"`
	ImageURL string `json:"imageUrl"`
}

func toCarCard(car domain.CarSummary) CarCardResponse {
	return CarCardResponse{
		ID:       car.ID,
		Brand:    car.Brand,
		Model:    car.Model,
		Year:     car.Year,
		Price:    car.Price,
		Mileage:  car.Mileage,
		Fuel:     car.FuelType,
		Region:   car.Region,
		ImageURL: car.ImageURL,
	}
}

func toCarCards(cars []domain.CarSummary) []CarCardResponse {
	cards := make([]CarCardResponse, len(cars))
	for i, car := range cars {
		cards[i] = toCarCard(car)
	}
	return cards
}

type SearchStateResponse struct {
	Results       []CarCardResponse `json:"results"`
	CurrentPage   int               `json:"currentPage"`
	HasMorePages  bool              `json:"hasMorePages"`
	TotalElements int               `json:"totalElements"`
	IsLoading     bool              `json:"isLoading"`
	LastError     string            `json:"lastError,omitempty"`
}

func toSearchStateResponse(state domain.SearchState) SearchStateResponse {
	return SearchStateResponse{
		Results:       toCarCards(state.Results),
		CurrentPage:   state.CurrentPage,
		HasMorePages:  state.HasMorePages,
		TotalElements: state.TotalElements,
		IsLoading:     state.IsLoading,
		LastError:     string(state.LastError),
	}
}

type CarDetailResponse struct {
	CarCardResponse
	Description string `json:"description"`
	SellerName  string `json:"sellerName"`
	ListedAt    string `json:"listedAt,omitempty"`
}

type PriceAnalysisResponse struct {
	Year         int   `json:"year"`
	AveragePrice int64 `json:"averagePrice"`
	ListingCount int   `json:"listingCount"`
}

type StatisticsResponse struct {
	Total        int            `json:"total"`
	AveragePrice int64          `json:"averagePrice"`
	ByBrand      map[string]int `json:"byBrand"`
	ByFuel       map[string]int `json:"byFuel"`
	ByRegion     map[string]int `json:"byRegion"`
}

type RecentQueryResponse struct {
	Query       string `json:"query"`
	SearchedAt  string `json:"searchedAt"`
	ResultCount int    `json:"resultCount"`
}
