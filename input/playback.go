package input

import "github.com/hajimehoshi/ebiten/v2"

// Frame is the raw input state for one poll.
type Frame struct {
	Keys   []ebiten.Key
	WheelX float64
	WheelY float64
	X, Y   int
	Drag   bool
}

// Playback is a Source that replays queued frames, one per poll. Once the
// queue is empty it reports an idle device with the cursor where it was.
type Playback struct {
	frames []Frame
	cur    Frame
}

func (p *Playback) Push(frames ...Frame) {
	p.frames = append(p.frames, frames...)
}

// next advances to the next queued frame. It is driven by
// AppendJustPressedKeys, which Hub.Poll always calls first.
func (p *Playback) next() {
	if len(p.frames) == 0 {
		p.cur = Frame{X: p.cur.X, Y: p.cur.Y}
		return
	}
	p.cur = p.frames[0]
	p.frames = p.frames[1:]
}

func (p *Playback) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	p.next()
	return append(keys, p.cur.Keys...)
}

func (p *Playback) Wheel() (float64, float64) {
	return p.cur.WheelX, p.cur.WheelY
}

func (p *Playback) CursorPosition() (int, int) {
	return p.cur.X, p.cur.Y
}

func (p *Playback) DragButtonPressed() bool {
	return p.cur.Drag
}
