package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSearchIgnoresPage(t *testing.T) {
	base := FilterSet{Model: "Sonata", PriceMin: 500, PriceMax: 3000, FuelType: "gasoline", Region: "Seoul", Page: 0, Size: 20}

	other := base
	other.Page = 7
	assert.True(t, base.SameSearch(other), "страница не входит в идентичность поиска")
}

func TestSameSearchDetectsFilterChanges(t *testing.T) {
	base := FilterSet{Model: "Sonata", Size: 20}

	tests := []struct {
		name   string
		mutate func(*FilterSet)
	}{
		{"model", func(f *FilterSet) { f.Model = "Avante" }},
		{"price_min", func(f *FilterSet) { f.PriceMin = 1000 }},
		{"price_max", func(f *FilterSet) { f.PriceMax = 5000 }},
		{"fuel", func(f *FilterSet) { f.FuelType = "diesel" }},
		{"region", func(f *FilterSet) { f.Region = "Busan" }},
		{"size", func(f *FilterSet) { f.Size = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			assert.False(t, base.SameSearch(other))
		})
	}
}

func TestCacheKeyIsDeterministic(t *testing.T) {
	a := FilterSet{Model: "Sonata", Page: 2, Size: 20}
	b := FilterSet{Model: "Sonata", Page: 2, Size: 20}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
}

func TestCacheKeyIncludesPage(t *testing.T) {
	// Соседние страницы одного поиска — независимые записи кэша
	page0 := FilterSet{Model: "Sonata", Size: 20, Page: 0}
	page1 := FilterSet{Model: "Sonata", Size: 20, Page: 1}

	assert.True(t, page0.SameSearch(page1))
	assert.NotEqual(t, page0.CacheKey(), page1.CacheKey())
}

func TestCacheKeyDistinguishesTextVariants(t *testing.T) {
	// Регистр и пробелы различают поиски — значит, обязаны различать и ключи
	a := FilterSet{Model: "  Sonata "}
	b := FilterSet{Model: "sonata"}

	assert.False(t, a.SameSearch(b))
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
}

func TestCacheKeyFollowsSearchIdentity(t *testing.T) {
	// Для любой пары с разной идентичностью поиска ключи не должны совпадать
	base := FilterSet{Model: "Sonata", FuelType: "gasoline", Region: "Seoul", Size: 20}

	variants := []FilterSet{
		{Model: "sonata", FuelType: "gasoline", Region: "Seoul", Size: 20},
		{Model: "SONATA", FuelType: "gasoline", Region: "Seoul", Size: 20},
		{Model: "Sonata ", FuelType: "gasoline", Region: "Seoul", Size: 20},
		{Model: "Sonata", FuelType: "Gasoline", Region: "Seoul", Size: 20},
		{Model: "Sonata", FuelType: "gasoline", Region: "seoul ", Size: 20},
	}

	for _, other := range variants {
		assert.False(t, base.SameSearch(other), "%+v", other)
		assert.NotEqual(t, base.CacheKey(), other.CacheKey(), "%+v", other)
	}
}
