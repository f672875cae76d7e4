package yuletree

// ToggleEvent describes a single state flip.
type ToggleEvent struct {
	From  TreeState
	To    TreeState
	Count int // number of toggles so far, including this one
}

// ToggleListener receives toggle notifications. Listeners run synchronously
// on the caller of Toggle, in registration order.
type ToggleListener interface {
	OnToggle(event ToggleEvent)
}

// ToggleListenerFunc adapts a plain function to ToggleListener.
type ToggleListenerFunc func(event ToggleEvent)

// OnToggle calls f(event).
func (f ToggleListenerFunc) OnToggle(event ToggleEvent) { f(event) }

// Controller owns the tree state. It is the only writer; particle classes
// read the state it hands them each frame.
//
// There is no way to set the state directly. Toggle is the single mutation.
type Controller struct {
	state     TreeState
	count     int
	listeners []ToggleListener
}

// NewController creates a controller starting in the given state.
func NewController(initial TreeState) *Controller {
	return &Controller{state: initial}
}

// State returns the current state.
func (c *Controller) State() TreeState {
	return c.state
}

// Target returns the progress target implied by the current state.
func (c *Controller) Target() float64 {
	return c.state.Target()
}

// Toggles returns how many times Toggle has been called.
func (c *Controller) Toggles() int {
	return c.count
}

// Toggle flips the state, notifies listeners, and returns the new state.
func (c *Controller) Toggle() TreeState {
	from := c.state
	c.state = from.Toggled()
	c.count++
	ev := ToggleEvent{From: from, To: c.state, Count: c.count}
	for _, l := range c.listeners {
		l.OnToggle(ev)
	}
	return c.state
}

// AddListener registers l for toggle notifications. Nil listeners are ignored.
func (c *Controller) AddListener(l ToggleListener) {
	if l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}
