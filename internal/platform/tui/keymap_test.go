package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dots/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim down", runeKey("j"), core.ActionDown, false},
		{"wasd left", runeKey("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space selects", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionSelect, false},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"pop", runeKey("x"), core.ActionPop, false},
		{"hint", runeKey("?"), core.ActionHint, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want core.PointerEvent
		ok   bool
	}{
		{
			name: "left press",
			msg:  tea.MouseMsg{X: 4, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
			want: core.PointerEvent{Kind: core.PointerPress, Button: core.ButtonPrimary, X: 4, Y: 7},
			ok:   true,
		},
		{
			name: "drag motion",
			msg:  tea.MouseMsg{X: 8, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion},
			want: core.PointerEvent{Kind: core.PointerMove, Button: core.ButtonPrimary, X: 8, Y: 7},
			ok:   true,
		},
		{
			name: "release reports no button",
			msg:  tea.MouseMsg{X: 8, Y: 9, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease},
			want: core.PointerEvent{Kind: core.PointerRelease, Button: core.ButtonPrimary, X: 8, Y: 9},
			ok:   true,
		},
		{
			name: "right press",
			msg:  tea.MouseMsg{X: 1, Y: 2, Button: tea.MouseButtonRight, Action: tea.MouseActionPress},
			want: core.PointerEvent{Kind: core.PointerPress, Button: core.ButtonSecondary, X: 1, Y: 2},
			ok:   true,
		},
		{
			name: "wheel ignored",
			msg:  tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress},
			ok:   false,
		},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.MapMouse(tt.msg)
			if ok != tt.ok {
				t.Fatalf("MapMouse() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("MapMouse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		"up":    {tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		"down":  {runeKey("j"), MenuActionDown},
		"enter": {tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		"esc":   {tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		"tab":   {tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		"quit":  {runeKey("q"), MenuActionQuit},
		"other": {runeKey("z"), MenuActionNone},
	}
	for name, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("%s: MapKeyToMenuAction() = %v, want %v", name, got, tt.want)
		}
	}
}
