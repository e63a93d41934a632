package transport

import "sync"

// Session scopes ownership of a Transport. The session exclusively owns the
// transport between New and Close and guarantees release exactly once; the
// intended shape is:
//
//	session := transport.NewSession(transport.NewHTTPTransport())
//	defer session.Close()
//
// so release runs on every exit path, including early return on error.
// Callers must join all outstanding requests before Close.
type Session struct {
	transport Transport
	closeOnce sync.Once
}

// NewSession acquires the transport for a scoped block.
func NewSession(t Transport) *Session {
	return &Session{transport: t}
}

// Transport returns the owned transport.
func (s *Session) Transport() Transport {
	return s.transport
}

// Close releases the transport. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.transport.Close()
	})
}
