package coordinator

import (
	"autofinder-client/internal/core/domain"
)

// Локальные мутации списка результатов. Работают только с памятью —
// ни кэш, ни сеть не трогаются. Нужны, чтобы отразить правки «со стороны»
// (например, обновление с экрана деталей) без перезапроса.

// Find возвращает автомобиль из текущего списка по ID.
func (c *Coordinator) Find(carID int64) (domain.CarSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, car := range c.state.Results {
		if car.ID == carID {
			return car, true
		}
	}
	return domain.CarSummary{}, false
}

// Remove удаляет из списка все вхождения автомобиля с данным ID.
func (c *Coordinator) Remove(carID int64) {
	c.mu.Lock()
	filtered := c.state.Results[:0]
	for _, car := range c.state.Results {
		if car.ID != carID {
			filtered = append(filtered, car)
		}
	}
	c.state.Results = filtered
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Replace заменяет в списке все вхождения автомобиля с тем же ID.
func (c *Coordinator) Replace(updated domain.CarSummary) {
	c.mu.Lock()
	for i, car := range c.state.Results {
		if car.ID == updated.ID {
			c.state.Results[i] = updated
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Statistics — чистая проекция по текущему списку результатов.
// Считается по запросу, не кэшируется. Объявления «цена по запросу»
// (Price == 0) в среднюю цену не входят.
func (c *Coordinator) Statistics() domain.CarStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := domain.CarStatistics{
		Total:      len(c.state.Results),
		ByBrand:    make(map[string]int),
		ByFuelType: make(map[string]int),
		ByRegion:   make(map[string]int),
	}

	var sum int64
	var priced int64
	for _, car := range c.state.Results {
		stats.ByBrand[car.Brand]++
		stats.ByFuelType[car.FuelType]++
		stats.ByRegion[car.Region]++

		if car.Price > 0 {
			sum += car.Price
			priced++
		}
	}
	if priced > 0 {
		stats.AveragePrice = sum / priced
	}

	return stats
}
