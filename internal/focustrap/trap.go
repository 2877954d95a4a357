// Package focustrap keeps keyboard focus cycling inside a modal container.
//
// The trap works on abstract Element handles so it can be driven by any
// platform binding. Collect computes the focusable set from HTML for
// bindings that mirror the container's markup.
package focustrap

// Element is a focusable handle. Implementations must be comparable; the
// trap identifies the active element with ==.
type Element interface {
	Focus()
}

// Container exposes the ordered focusable elements currently inside it.
type Container interface {
	Focusables() []Element
}

// Trap wraps tab focus between the first and last focusable element.
type Trap struct {
	elems  []Element
	active bool
}

// Activate snapshots the focusables of c and focuses the first one.
// With no focusable elements the returned trap is a no-op.
func Activate(c Container) *Trap {
	elems := c.Focusables()
	t := &Trap{elems: elems, active: len(elems) > 0}
	if t.active {
		elems[0].Focus()
	}
	return t
}

// HandleTab applies the wrap rule for a tab press while current has focus.
// It returns true when focus was moved and the default action must be
// suppressed; every other press passes through.
func (t *Trap) HandleTab(current Element, shift bool) bool {
	if t == nil || !t.active || current == nil {
		return false
	}
	first, last := t.elems[0], t.elems[len(t.elems)-1]
	switch {
	case shift && current == first:
		last.Focus()
		return true
	case !shift && current == last:
		first.Focus()
		return true
	}
	return false
}

// Deactivate makes the trap inert and drops its element references.
func (t *Trap) Deactivate() {
	if t == nil {
		return
	}
	t.active = false
	t.elems = nil
}

// Active reports whether the trap is installed and has elements.
func (t *Trap) Active() bool { return t != nil && t.active }

// Len returns the size of the focus set captured at activation.
func (t *Trap) Len() int {
	if t == nil {
		return 0
	}
	return len(t.elems)
}
