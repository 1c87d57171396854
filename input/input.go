package input

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ErrUnknownSubscription = errors.New("input: unknown subscription")

// Source is polled once per frame for raw device state.
type Source interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	// Wheel returns the scroll delta for this frame. Positive y scrolls
	// down the page, toward the next scene.
	Wheel() (x, y float64)
	CursorPosition() (int, int)
	DragButtonPressed() bool
}

// EbitenSource reads the ebiten input state.
type EbitenSource struct{}

func (EbitenSource) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (EbitenSource) Wheel() (float64, float64) {
	x, y := ebiten.Wheel()
	// ebiten reports wheel-up as positive
	return x, -y
}

func (EbitenSource) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (EbitenSource) DragButtonPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

type Event interface {
	isEvent()
}

// KeyEvent fires on the frame a key goes down.
type KeyEvent struct {
	Key ebiten.Key
}

// WheelEvent carries one frame of scroll delta.
type WheelEvent struct {
	DX float64
	DY float64
}

// DragEvent carries cursor movement while the drag button is held.
type DragEvent struct {
	DX float64
	DY float64
}

func (KeyEvent) isEvent()   {}
func (WheelEvent) isEvent() {}
func (DragEvent) isEvent()  {}

type Listener func(ev Event)

// Subscription identifies a registered listener.
type Subscription int

// Hub polls a Source and fans events out to listeners in subscription order.
type Hub struct {
	src       Source
	listeners map[Subscription]Listener
	order     []Subscription
	nextID    Subscription

	dragging bool
	lastX    int
	lastY    int
	keys     []ebiten.Key
}

func NewHub(src Source) *Hub {
	if src == nil {
		src = EbitenSource{}
	}
	return &Hub{src: src, listeners: map[Subscription]Listener{}}
}

func (h *Hub) Subscribe(l Listener) Subscription {
	h.nextID++
	h.listeners[h.nextID] = l
	h.order = append(h.order, h.nextID)
	return h.nextID
}

func (h *Hub) Unsubscribe(id Subscription) error {
	if _, ok := h.listeners[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSubscription, id)
	}
	delete(h.listeners, id)
	for i, s := range h.order {
		if s == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return nil
}

// Listeners reports how many listeners are subscribed.
func (h *Hub) Listeners() int {
	return len(h.listeners)
}

// Poll reads the source once and dispatches this frame's events.
func (h *Hub) Poll() {
	if h == nil {
		return
	}

	h.keys = h.src.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.emit(KeyEvent{Key: k})
	}

	if wx, wy := h.src.Wheel(); wx != 0 || wy != 0 {
		h.emit(WheelEvent{DX: wx, DY: wy})
	}

	x, y := h.src.CursorPosition()
	if h.src.DragButtonPressed() {
		if h.dragging && (x != h.lastX || y != h.lastY) {
			h.emit(DragEvent{DX: float64(x - h.lastX), DY: float64(y - h.lastY)})
		}
		h.dragging = true
	} else {
		h.dragging = false
	}
	h.lastX, h.lastY = x, y
}

func (h *Hub) emit(ev Event) {
	// copy so listeners may unsubscribe while being dispatched
	ids := append([]Subscription(nil), h.order...)
	for _, id := range ids {
		if l, ok := h.listeners[id]; ok && l != nil {
			l(ev)
		}
	}
}
