package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}

	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmRunsActionExactlyOnce(t *testing.T) {
	for _, key := range []string{"y", "Y", "enter"} {
		t.Run(key, func(t *testing.T) {
			calls := 0
			c := newConfirm("Delete model bert?", func() tea.Cmd {
				calls++
				return nil
			})

			cmd, done := c.handleKey(keyMsg(key))
			assert.True(t, done)
			assert.Nil(t, cmd)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestConfirmCancelRunsNothing(t *testing.T) {
	for _, key := range []string{"n", "N", "esc", "q"} {
		t.Run(key, func(t *testing.T) {
			calls := 0
			c := newConfirm("Delete model bert?", func() tea.Cmd {
				calls++
				return nil
			})

			cmd, done := c.handleKey(keyMsg(key))
			assert.True(t, done)
			assert.Nil(t, cmd)
			assert.Zero(t, calls)
		})
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	calls := 0
	c := newConfirm("Delete version 3?", func() tea.Cmd {
		calls++
		return nil
	})

	for _, key := range []string{"x", "j", " "} {
		cmd, done := c.handleKey(keyMsg(key))
		assert.False(t, done, "key %q should leave the prompt open", key)
		assert.Nil(t, cmd)
	}

	assert.Zero(t, calls)

	cmd, done := c.handleKey(keyMsg("y"))
	require.True(t, done)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, calls)
}

func TestConfirmViewShowsPrompt(t *testing.T) {
	c := newConfirm("Delete model bert and all 4 versions?", func() tea.Cmd { return nil })

	assert.Contains(t, c.view(), "Delete model bert and all 4 versions?")
	assert.Contains(t, c.view(), "[y] yes")
}
