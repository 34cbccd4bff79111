package port

// EventSinkPort — приемник событий телеметрии (fire-and-forget).
// Ошибки доставки игнорируются: телеметрия не влияет на корректность.
type EventSinkPort interface {
	Record(eventKind string, subjectID string, note string)
}
