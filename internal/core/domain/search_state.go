package domain

// ErrorKind — классификация ошибок при работе с каталогом.
type ErrorKind string

const (
	// ErrorKindNone — ошибки нет (нулевое значение).
	ErrorKindNone ErrorKind = ""
	// ErrorKindNetworkFailure — транспортная ошибка (нет сети, таймаут).
	ErrorKindNetworkFailure ErrorKind = "network_failure"
	// ErrorKindServerError — каталог вернул не-2xx ответ.
	ErrorKindServerError ErrorKind = "server_error"
	// ErrorKindDecodingError — ответ каталога не удалось разобрать.
	ErrorKindDecodingError ErrorKind = "decoding_error"
)

// SearchState — единственный источник правды о текущем поиске.
// Ровно один экземпляр живет внутри координатора; наблюдатели читают копии.
type SearchState struct {
	Results       []CarSummary
	CurrentPage   int
	HasMorePages  bool
	TotalElements int
	IsLoading     bool
	LastError     ErrorKind
	ActiveFilters FilterSet
}
