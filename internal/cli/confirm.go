package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmState is a modal yes/no prompt shown before destructive actions.
// Confirming runs the action exactly once; cancelling is a no-op.
type confirmState struct {
	prompt string
	action func() tea.Cmd
}

// newConfirm creates a prompt for the given action.
func newConfirm(prompt string, action func() tea.Cmd) *confirmState {
	return &confirmState{prompt: prompt, action: action}
}

// handleKey resolves the prompt. It returns the command to run (nil unless
// confirmed) and whether the prompt is finished.
func (c *confirmState) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y", "enter":
		return c.action(), true
	case "n", "N", "esc", "q":
		return nil, true
	}

	return nil, false
}

func (c *confirmState) view() string {
	return confirmStyle.Render(fmt.Sprintf("%s\n\n[y] yes   [n] no", c.prompt))
}
