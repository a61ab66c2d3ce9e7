package bgengine

// Client is a connection to a presentation client. Commands are read from the
// client and events are written to it.
type Client interface {
	HandleReadWrite()
	Write(message []byte)
	Terminate(reason string)
	Terminated() bool
}
