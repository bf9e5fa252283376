package glitch

// EventType identifies a host event the engine listens for.
type EventType uint8

const (
	EventPointerMove     EventType = iota // pointer moved over the surface
	EventPointerLeave                     // pointer left the surface
	EventViewportResize                   // the viewport (window) changed size
	EventContainerResize                  // the element containing the surface changed size
	eventTypeCount
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "pointermove"
	case EventPointerLeave:
		return "pointerleave"
	case EventViewportResize:
		return "viewport-resize"
	case EventContainerResize:
		return "container-resize"
	default:
		return "unknown"
	}
}

// Event carries host event data. X and Y are logical pixels relative to the
// surface for pointer events; Width, Height and Scale describe the new size
// for resize events.
type Event struct {
	Type          EventType
	X, Y          float64
	Width, Height int
	Scale         float64
}

type listener struct {
	id uint32
	fn func(Event)
}

// EventTarget is a host-side listener registry, standing in for the window
// and the surface element. Dispatch is synchronous and single-threaded.
type EventTarget struct {
	listeners [eventTypeCount][]listener
	nextID    uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id     uint32
	target *EventTarget
	event  EventType
}

// On registers fn for events of type t.
func (et *EventTarget) On(t EventType, fn func(Event)) ListenerHandle {
	if t >= eventTypeCount || fn == nil {
		return ListenerHandle{}
	}
	et.nextID++
	et.listeners[t] = append(et.listeners[t], listener{id: et.nextID, fn: fn})
	return ListenerHandle{id: et.nextID, target: et, event: t}
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h ListenerHandle) Remove() {
	if h.target == nil {
		return
	}
	s := h.target.listeners[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.target.listeners[h.event] = s[:len(s)-1]
			return
		}
	}
}

// Dispatch delivers e to every listener registered for its type, in
// registration order. Listeners removed during dispatch still see this event.
func (et *EventTarget) Dispatch(e Event) {
	if e.Type >= eventTypeCount {
		return
	}
	ls := et.listeners[e.Type]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(e)
	}
}

// ListenerCount returns the number of listeners registered for t.
func (et *EventTarget) ListenerCount(t EventType) int {
	if t >= eventTypeCount {
		return 0
	}
	return len(et.listeners[t])
}

// TotalListeners returns the number of listeners across all event types.
func (et *EventTarget) TotalListeners() int {
	n := 0
	for i := range et.listeners {
		n += len(et.listeners[i])
	}
	return n
}
