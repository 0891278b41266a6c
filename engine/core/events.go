package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-ssao/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * key := ctx.Data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * key := ctx.Data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed.
	/* Context usage:
	 * button := ctx.Data.(*MouseEvent).Button
	 */
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released.
	/* Context usage:
	 * button := ctx.Data.(*MouseEvent).Button
	 */
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved.
	/* Context usage:
	 * e := ctx.Data.(*MouseEvent)
	 * e.PosX, e.PosY, e.DeltaX, e.DeltaY
	 */
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel scrolled.
	/* Context usage:
	 * z_delta := ctx.Data.(*MouseEvent).Scroll
	 */
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * e := ctx.Data.(*SystemEvent)
	 * e.Width, e.Height
	 */
	EVENT_CODE_RESIZED EventCode = 0x08

	// Per-frame logic update.
	/* Context usage:
	 * time_step := ctx.Data.(*UpdateEvent).TimeStep
	 */
	EVENT_CODE_UPDATE EventCode = 0x09

	// Fired after every EVENT_CODE_UPDATE listener ran.
	EVENT_CODE_POST_UPDATE EventCode = 0x0A

	// Mouse mode or cursor visibility changed.
	/* Context usage:
	 * e := ctx.Data.(*MouseModeEvent)
	 */
	EVENT_CODE_MOUSE_MODE_CHANGED EventCode = 0x0B

	// A UI slider changed value. Sender is the slider.
	/* Context usage:
	 * value := ctx.Data.(*ui.SliderChangedEvent).Value
	 */
	EVENT_CODE_SLIDER_CHANGED EventCode = 0x0C

	// A cached resource was reloaded from disk.
	/* Context usage:
	 * name := ctx.Data.(*ResourceEvent).Name
	 */
	EVENT_CODE_RESOURCE_RELOADED EventCode = 0x0D

	MAX_EVENT_CODE EventCode = 0xFF
)

// Events posted between two Dispatch calls beyond this are dropped.
const MAX_QUEUED_EVENTS = 4096

type EventContext struct {
	Type   EventCode
	Sender interface{}
	Data   interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   int32
	PosY   int32
	DeltaX int32
	DeltaY int32
	Scroll int8
}

type SystemEvent struct {
	Width  uint32
	Height uint32
}

type UpdateEvent struct {
	TimeStep float32
}

type MouseModeEvent struct {
	Mode    MouseMode
	Visible bool
}

type ResourceEvent struct {
	Name string
	// Handle of the data now in the cache
	Handle uuid.UUID
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext) bool

type registeredEvent struct {
	listener interface{}
	sender   interface{}
	callback FnOnEvent
}

// EventSystem routes events to listeners registered per code. Fire runs the
// listeners synchronously; Post queues an event from any goroutine until the
// next Dispatch.
type EventSystem struct {
	registered map[EventCode][]*registeredEvent

	mu    sync.Mutex
	queue *containers.RingQueue[EventContext]
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		registered: make(map[EventCode][]*registeredEvent),
		queue:      containers.NewRingQueue[EventContext](MAX_QUEUED_EVENTS),
	}
}

func (es *EventSystem) Shutdown() {
	// Free the events arrays. And objects pointed to should be destroyed on their own.
	es.registered = make(map[EventCode][]*registeredEvent)
	es.mu.Lock()
	es.queue.Drain()
	es.mu.Unlock()
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener combos will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback function to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func (es *EventSystem) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	return es.RegisterFrom(code, nil, listener, onEvent)
}

// RegisterFrom is Register restricted to events fired by sender. A nil sender
// accepts events from anyone.
func (es *EventSystem) RegisterFrom(code EventCode, sender interface{}, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	for _, e := range es.registered[code] {
		if e.listener == listener && e.sender == sender {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	// If at this point, no duplicate was found. Proceed with registration.
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		sender:   sender,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 * @param code The event code to stop listening for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @returns TRUE if the event is successfully unregistered; otherwise false.
 */
func (es *EventSystem) Unregister(code EventCode, listener interface{}) bool {
	events := es.registered[code]
	kept := events[:0:0]
	for _, e := range events {
		if e.listener != listener {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return false
	}
	es.registered[code] = kept
	return true
}

// UnregisterAll removes every registration owned by listener.
func (es *EventSystem) UnregisterAll(listener interface{}) {
	for code := range es.registered {
		es.Unregister(code, listener)
	}
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @param context The event: code, sender and data.
 * @returns TRUE if handled, otherwise FALSE.
 */
func (es *EventSystem) Fire(context EventContext) bool {
	events := es.registered[context.Type]
	if len(events) == 0 {
		return false
	}
	// Listeners may (un)register while running.
	snapshot := make([]*registeredEvent, len(events))
	copy(snapshot, events)
	for _, e := range snapshot {
		if e.sender != nil && e.sender != context.Sender {
			continue
		}
		if e.callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Post queues an event for the next Dispatch. Safe for concurrent use.
func (es *EventSystem) Post(context EventContext) {
	es.mu.Lock()
	err := es.queue.Enqueue(context)
	es.mu.Unlock()
	if err != nil {
		LogWarn("event queue full, dropping event code %d", context.Type)
	}
}

// Dispatch fires all queued events in order and returns how many were fired.
func (es *EventSystem) Dispatch() int {
	es.mu.Lock()
	pending := es.queue.Drain()
	es.mu.Unlock()

	for _, ctx := range pending {
		es.Fire(ctx)
	}
	return len(pending)
}
