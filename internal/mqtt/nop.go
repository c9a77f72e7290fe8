package mqtt

// NopPublisher discards everything. Used when no broker is configured so
// the run loop never has to care whether telemetry is enabled.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that does nothing.
func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

// Publish discards the event.
func (NopPublisher) Publish(Event) error { return nil }

// PublishSystem discards the event.
func (NopPublisher) PublishSystem(SystemEvent) error { return nil }

// IsConnected always reports false.
func (NopPublisher) IsConnected() bool { return false }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
