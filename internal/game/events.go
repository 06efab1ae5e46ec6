package game

type EventType int

const (
	EventCrash EventType = iota
	EventPass
	EventGameOver
	EventRestart
	EventLaneChange
)

func (t EventType) String() string {
	switch t {
	case EventCrash:
		return "crash"
	case EventPass:
		return "pass"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	case EventLaneChange:
		return "lane_change"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	X, Y  float64
	Lane  int
	Score int
	Lives int
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for _, t := range []EventType{EventCrash, EventPass, EventGameOver, EventRestart, EventLaneChange} {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
