package controls

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tetris-pwa/internal/core"
)

var keyNames = map[string]string{
	" ":      "Space",
	"esc":    "Esc",
	"enter":  "Enter",
	"ctrl+c": "Ctrl+C",
}

func displayKey(in string) string {
	if n, ok := keyNames[in]; ok {
		return n
	}
	return "`" + in + "`"
}

// Markdown renders the bindings of every channel as a reference document.
func Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Tetris controls\n\n")
	sb.WriteString("Every input channel drives the same actions.\n")

	sections := []struct {
		title string
		ch    Channel
	}{
		{"Browser keyboard", ChannelKeyboard},
		{"Touch controls and gestures", ChannelTouch},
		{"Terminal and SSH", ChannelTerminal},
	}
	for _, sec := range sections {
		fmt.Fprintf(&sb, "\n## %s\n\n| Action | Inputs |\n|---|---|\n", sec.title)

		grouped := map[core.Action][]string{}
		var order []core.Action
		for _, b := range Bindings(sec.ch) {
			if _, seen := grouped[b.Action]; !seen {
				order = append(order, b.Action)
			}
			grouped[b.Action] = append(grouped[b.Action], displayKey(b.Input))
		}
		for _, a := range order {
			fmt.Fprintf(&sb, "| %s | %s |\n", a, strings.Join(grouped[a], ", "))
		}
	}

	sb.WriteString("\nTouch buttons marked as repeating fire every 120 ms while held.\n")
	return sb.String()
}
