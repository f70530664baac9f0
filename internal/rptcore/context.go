package rptcore

// ServiceContext hands out two independent monotonic counters: event IDs
// assigned to services when they emit an event, and timer tokens assigned
// to Timer on construction. Both start at 0 and never decrease within one
// context. Scoped to the ServiceContext instance, not process-global, so
// that multiple isolated SER subsystems can coexist (and tests stay
// trivial to set up).
type ServiceContext struct {
	nextEventID uint64
	nextTimer   uint64
}

// NewServiceContext builds a fresh context with both counters at 0.
func NewServiceContext() *ServiceContext {
	return &ServiceContext{}
}

// NewEventID hands out the next monotonic event ID.
func (c *ServiceContext) NewEventID() uint64 {
	id := c.nextEventID
	c.nextEventID++
	return id
}

// NewTimerToken hands out the next monotonic timer token.
func (c *ServiceContext) NewTimerToken() uint64 {
	t := c.nextTimer
	c.nextTimer++
	return t
}
