package focustrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type focusLog struct{ focused []int }

type fakeElement struct {
	id  int
	log *focusLog
}

func (e fakeElement) Focus() { e.log.focused = append(e.log.focused, e.id) }

type fakeContainer []Element

func (c fakeContainer) Focusables() []Element { return c }

func newContainer(n int) (fakeContainer, *focusLog) {
	log := &focusLog{}
	c := make(fakeContainer, n)
	for i := range c {
		c[i] = fakeElement{id: i, log: log}
	}
	return c, log
}

func TestActivateFocusesFirst(t *testing.T) {
	c, log := newContainer(3)
	trap := Activate(c)

	assert.True(t, trap.Active())
	assert.Equal(t, 3, trap.Len())
	assert.Equal(t, []int{0}, log.focused)
}

func TestEmptyContainerIsNoop(t *testing.T) {
	trap := Activate(fakeContainer{})
	assert.False(t, trap.Active())
	assert.False(t, trap.HandleTab(nil, false))
}

func TestTabWraps(t *testing.T) {
	c, log := newContainer(3)
	trap := Activate(c)
	log.focused = nil

	assert.True(t, trap.HandleTab(c[2], false), "forward from last wraps")
	assert.True(t, trap.HandleTab(c[0], true), "backward from first wraps")
	assert.Equal(t, []int{0, 2}, log.focused)

	assert.False(t, trap.HandleTab(c[1], false))
	assert.False(t, trap.HandleTab(c[1], true))
	assert.False(t, trap.HandleTab(c[0], false))
	assert.False(t, trap.HandleTab(c[2], true))
	assert.Equal(t, []int{0, 2}, log.focused, "pass-through presses move nothing")
}

func TestSingleElementWrapsToItself(t *testing.T) {
	c, log := newContainer(1)
	trap := Activate(c)
	assert.True(t, trap.HandleTab(c[0], false))
	assert.True(t, trap.HandleTab(c[0], true))
	assert.Equal(t, []int{0, 0, 0}, log.focused)
}

func TestDeactivate(t *testing.T) {
	c, _ := newContainer(2)
	trap := Activate(c)
	trap.Deactivate()

	assert.False(t, trap.Active())
	assert.False(t, trap.HandleTab(c[1], false))

	var nilTrap *Trap
	nilTrap.Deactivate()
	assert.Equal(t, 0, nilTrap.Len())
}

func TestCollect(t *testing.T) {
	doc := `<div>
		<a>no href</a>
		<a href="/cat/1">link</a>
		<button>ok</button>
		<button disabled>off</button>
		<input type="text">
		<input disabled>
		<select></select>
		<textarea></textarea>
		<div tabindex="0">custom</div>
		<span tabindex="-1">skipped</span>
		<a href="/x" tabindex="-1">still a link</a>
		<button tabindex="-1">still a button</button>
		<button disabled tabindex="-1">off</button>
		<span tabindex="-2">custom</span>
		<span tabindex=" -1">custom</span>
		<p>plain</p>
	</div>`
	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	var got []string
	for _, n := range Collect(root) {
		got = append(got, n.Data)
	}
	assert.Equal(t, []string{"a", "button", "input", "select", "textarea", "div", "a", "button", "span", "span"}, got)
}

func TestCountFragment(t *testing.T) {
	assert.Equal(t, 2, CountFragment(`<a href="/a">a</a><p><button>b</button></p>`))
	assert.Equal(t, 0, CountFragment(`<p>nothing</p>`))
	assert.Equal(t, 0, CountFragment(""))
	// Matches the browser selector, so a negative tabindex does not hide
	// links or enabled controls.
	assert.Equal(t, 4, CountFragment(`<button tabindex="-1">x</button><a href="/a" tabindex="-1">a</a><span tabindex="-2">s</span><button>ok</button>`))
}
