package feed

// LikeState is the pressed state of a card's like button.
type LikeState int

const (
	Unpressed LikeState = iota
	Pressed
)

func (s LikeState) String() string {
	if s == Pressed {
		return "pressed"
	}

	return "unpressed"
}

// Like is the client-local like toggle of one card. It is never sent to the
// server, so counts start over on every load.
type Like struct {
	State LikeState
	Count int64
}

// Toggle flips the state. Pressing adds one, releasing removes one without
// going below zero.
func (l Like) Toggle() Like {
	switch l.State {
	case Unpressed:
		l.State = Pressed
		l.Count++
	case Pressed:
		l.State = Unpressed
		if l.Count > 0 {
			l.Count--
		}
	}

	return l
}
