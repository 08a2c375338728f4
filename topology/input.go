package topology

type Input interface {
	// ReadOneEvent blocks until an event is available. nil means the input is exhausted or shut down.
	ReadOneEvent() map[string]any
	Shutdown()
}
