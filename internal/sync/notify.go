package sync

// Notifier is the notification sink for user-facing outcomes. The engine
// decides what message and severity; rendering is the implementation's
// concern. Implementations must be safe for use from command goroutines.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warning(msg string)
}
