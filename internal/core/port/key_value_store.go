package port

// KeyValueStorePort — простое персистентное хранилище для журнала запросов.
// Формат содержимого определяет вызывающая сторона.
type KeyValueStorePort interface {
	// Load читает сохраненные данные. ok=false, если данных еще нет.
	Load() (data []byte, ok bool, err error)

	// Save записывает данные, полностью заменяя предыдущие.
	Save(data []byte) error
}
