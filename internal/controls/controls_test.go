package controls

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tetris-pwa/internal/core"
)

func TestKeyboardAndTouchAgree(t *testing.T) {
	pairs := []struct {
		key     string
		control string
		want    core.Action
	}{
		{"ArrowLeft", ButtonLeft, core.ActionMoveLeft},
		{"ArrowRight", ButtonRight, core.ActionMoveRight},
		{"ArrowDown", ButtonDown, core.ActionSoftDrop},
		{"ArrowUp", ButtonRotate, core.ActionRotate},
		{" ", ButtonDrop, core.ActionHardDrop},
		{"p", ButtonPause, core.ActionTogglePause},
		{"Enter", ButtonStart, core.ActionStart},
	}

	for _, p := range pairs {
		if got := FromKey(p.key); got != p.want {
			t.Errorf("FromKey(%q) = %v, expected %v", p.key, got, p.want)
		}
		if got := FromControl(p.control); got != p.want {
			t.Errorf("FromControl(%q) = %v, expected %v", p.control, got, p.want)
		}
	}
}

func TestPauseAcceptsBothCases(t *testing.T) {
	if FromKey("P") != core.ActionTogglePause {
		t.Error("uppercase P should pause")
	}
}

func TestGestures(t *testing.T) {
	if FromControl(GestureTap) != core.ActionRotate {
		t.Error("tap should rotate")
	}
	if FromControl(GestureSwipeDown) != core.ActionHardDrop {
		t.Error("swipe down should hard drop")
	}
}

func TestUnknownInputsMapToNone(t *testing.T) {
	if FromKey("F5") != core.ActionNone {
		t.Error("unmapped key should be ActionNone")
	}
	if FromControl("btn-self-destruct") != core.ActionNone {
		t.Error("unmapped control should be ActionNone")
	}
	if FromTerminal("f1") != core.ActionNone {
		t.Error("unmapped terminal key should be ActionNone")
	}
}

func TestTerminalKeys(t *testing.T) {
	tests := []struct {
		key  string
		want core.Action
	}{
		{"left", core.ActionMoveLeft},
		{"down", core.ActionSoftDrop},
		{" ", core.ActionHardDrop},
		{"p", core.ActionTogglePause},
		{"enter", core.ActionStart},
		{"ctrl+c", core.ActionQuit},
	}
	for _, tt := range tests {
		if got := FromTerminal(tt.key); got != tt.want {
			t.Errorf("FromTerminal(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}

	if MenuFromTerminal("enter") != core.ActionConfirm || MenuFromTerminal("j") != core.ActionDown {
		t.Error("menu keys mismapped")
	}
}

func TestTouchControlsLayout(t *testing.T) {
	want := []string{ButtonLeft, ButtonDown, ButtonRotate, ButtonRight, ButtonDrop, ButtonPause}
	if len(TouchControls) != len(want) {
		t.Fatalf("expected %d touch controls, got %d", len(want), len(TouchControls))
	}
	for i, id := range want {
		if TouchControls[i].ID != id {
			t.Errorf("control %d = %q, expected %q", i, TouchControls[i].ID, id)
		}
	}
}

func TestMarkdownListsEveryChannel(t *testing.T) {
	md := Markdown()
	for _, s := range []string{"Browser keyboard", "Touch controls", "Terminal", "HardDrop", "Space", "`btn-drop`"} {
		if !strings.Contains(md, s) {
			t.Errorf("Markdown() missing %q", s)
		}
	}
}

func TestGestureThresholds(t *testing.T) {
	if TapMaxPx != 15 || SwipeMinPx != 30 {
		t.Errorf("thresholds = tap %d, swipe %d; want 15 and 30", TapMaxPx, SwipeMinPx)
	}
	if TapMaxPx >= SwipeMinPx {
		t.Error("a tap must be shorter than the shortest swipe")
	}
}
