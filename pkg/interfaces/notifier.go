package interfaces

// Notifier receives transient user-facing messages emitted while remote
// operations settle. Implementations must not block; the sync engine calls
// them inline on the event path.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}
