package catalog_api_client

import (
	"time"

	"autofinder-client/internal/core/domain"
)

// DTO ответов каталога. Формат страницы — как у Spring Data
// (content / last / totalElements). Маппинг в домен изолирует ядро
// от деталей API каталога.

type carSummaryResponse struct {
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

type carPageResponse struct {
	Content       []carSummaryResponse `json:"content"`
	Last          bool                 `json:"last"`
	TotalElements int                  `json:"totalElements"`
}

type carDetailResponse struct {
	carSummaryResponse
	Description string `json:"description"`
	SellerName  string `json:"sellerName"`
	ListedAt    string `json:"listedAt"`
}

type priceAnalysisResponse struct {
	Year         int   `json:"year"`
	AveragePrice int64 `json:"averagePrice"`
	ListingCount int   `json:"listingCount"`
}

func (dto carSummaryResponse) toDomain() domain.CarSummary {
	return domain.CarSummary{
		ID:       dto.ID,
		Brand:    dto.Brand,
		Model:    dto.Model,
		Year:     dto.Year,
		Price:    dto.Price,
		Mileage:  dto.Mileage,
		FuelType: dto.Fuel,
		Region:   dto.Region,
		ImageURL: dto.ImageURL,
	}
}

func (dto carDetailResponse) toDomain() *domain.CarDetail {
	listedAt, _ := time.Parse(time.RFC3339, dto.ListedAt)
	return &domain.CarDetail{
		CarSummary:  dto.carSummaryResponse.toDomain(),
		Description: dto.Description,
		SellerName:  dto.SellerName,
		ListedAt:    listedAt,
	}
}

func summariesToDomain(dtos []carSummaryResponse) []domain.CarSummary {
	result := make([]domain.CarSummary, len(dtos))
	for i, dto := range dtos {
		result[i] = dto.toDomain()
	}
	return result
}
