// Package events provides synchronous pub-sub with per-event listener sets.
package events

import (
	"sync"
)

// EventData is a generic event data payload. Concrete event types are defined
// by the firing package.
type EventData interface{}

// EventCallback is invoked synchronously for every fired event the listener
// subscribed to.
type EventCallback func(data EventData)

// Fireable is the interface that wraps the FireEvent method.
//
// FireEvent fires an event with the given name and data.
type Fireable interface {
	FireEvent(eventName string, data EventData)
}

// EventSwitch is the interface for synchronous pubsub, where listeners
// subscribe to certain events and, when an event is fired (see Fireable),
// are notified via a callback function.
type EventSwitch interface {
	Fireable

	AddListenerForEvent(listenerID, eventName string, cb EventCallback)
	RemoveListenerForEvent(listenerID, eventName string)
}

type eventSwitch struct {
	mtx        sync.RWMutex
	eventCells map[string]*eventCell
}

func NewEventSwitch() EventSwitch {
	return &eventSwitch{
		eventCells: make(map[string]*eventCell),
	}
}

func (evsw *eventSwitch) AddListenerForEvent(listenerID, eventName string, cb EventCallback) {
	evsw.mtx.Lock()
	cell := evsw.eventCells[eventName]
	if cell == nil {
		cell = newEventCell()
		evsw.eventCells[eventName] = cell
	}
	evsw.mtx.Unlock()

	cell.addListener(listenerID, cb)
}

func (evsw *eventSwitch) RemoveListenerForEvent(listenerID, eventName string) {
	evsw.mtx.Lock()
	cell := evsw.eventCells[eventName]
	evsw.mtx.Unlock()

	if cell == nil {
		return
	}

	cell.removeListener(listenerID)
}

func (evsw *eventSwitch) FireEvent(eventName string, data EventData) {
	evsw.mtx.RLock()
	cell := evsw.eventCells[eventName]
	evsw.mtx.RUnlock()

	if cell == nil {
		return
	}

	cell.fireEvent(data)
}

//-----------------------------------------------------------------------------

// eventCell handles keeping track of listener callbacks for a given event.
type eventCell struct {
	mtx       sync.RWMutex
	listeners map[string]EventCallback
}

func newEventCell() *eventCell {
	return &eventCell{
		listeners: make(map[string]EventCallback),
	}
}

func (cell *eventCell) addListener(listenerID string, cb EventCallback) {
	cell.mtx.Lock()
	cell.listeners[listenerID] = cb
	cell.mtx.Unlock()
}

func (cell *eventCell) removeListener(listenerID string) {
	cell.mtx.Lock()
	delete(cell.listeners, listenerID)
	cell.mtx.Unlock()
}

func (cell *eventCell) fireEvent(data EventData) {
	cell.mtx.RLock()
	eventCallbacks := make([]EventCallback, 0, len(cell.listeners))
	for _, cb := range cell.listeners {
		eventCallbacks = append(eventCallbacks, cb)
	}
	cell.mtx.RUnlock()

	for _, cb := range eventCallbacks {
		cb(data)
	}
}
