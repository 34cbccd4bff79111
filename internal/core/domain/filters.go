package domain

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
)

// FilterSet — параметры поискового запроса к каталогу.
// Нулевые значения означают «фильтр не задан» (PriceMax = 0 — без верхней границы).
type FilterSet struct {
	Model    string
	PriceMin int64
	PriceMax int64
	FuelType string
	Region   string
	Page     int
	Size     int
}

// SameSearch сравнивает фильтры БЕЗ учета страницы.
// Именно этот предикат решает, начинается ли новый поиск (сброс пагинации).
func (f FilterSet) SameSearch(other FilterSet) bool {
	f.Page = 0
	other.Page = 0
	return f == other
}

// CacheKey строит детерминированный ключ кэша по ВСЕМ полям, включая Page.
// Две соседние страницы одного поиска дают независимые записи кэша.
// Поля хэшируются как есть, без нормализации: ключ обязан различать все,
// что различает SameSearch, иначе чужая страница ответит на чужой запрос.
func (f FilterSet) CacheKey() string {
	payload := strings.Join([]string{
		f.Model,
		strconv.FormatInt(f.PriceMin, 10),
		strconv.FormatInt(f.PriceMax, 10),
		f.FuelType,
		f.Region,
		strconv.Itoa(f.Page),
		strconv.Itoa(f.Size),
	}, "|")

	return fmt.Sprintf("%x", sha256.Sum256([]byte(payload)))
}
