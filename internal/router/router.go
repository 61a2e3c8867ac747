// Package router keeps the screen stack. Screens navigate by returning the
// command helpers below; the app feeds every message through Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tubequiz/internal/screen"
)

// PushScreenMsg puts Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg drops the top screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen, e.g. a loading screen
// for the summary it produced.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg drops every screen above home.
type PopToRootMsg struct{}

// Router is a stack of screens. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

// New returns a router showing root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push shows s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.truncate(len(r.stack) - 1)
	}
	return nil
}

// Replace swaps the top screen for s and runs its Init. Replacing the root
// changes what home is.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	top := len(r.stack) - 1
	release(r.stack[top])
	r.stack[top] = s
	return s.Init()
}

// PopToRoot drops everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	r.truncate(1)
	return nil
}

// truncate closes and removes the screens at index n and above.
func (r *Router) truncate(n int) {
	for i := len(r.stack) - 1; i >= n; i-- {
		release(r.stack[i])
		r.stack[i] = nil
	}
	r.stack = r.stack[:n]
}

func release(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

// PushCmd returns a command that pushes s.
func PushCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// PopCmd is a command that pops the top screen.
func PopCmd() tea.Msg { return PopScreenMsg{} }

// ReplaceCmd returns a command that replaces the top screen with s.
func ReplaceCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// HomeCmd is a command that returns to the root screen.
func HomeCmd() tea.Msg { return PopToRootMsg{} }
