package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/boat-builder/chatpod"
)

var (
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	systemStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func prefix(role chatpod.Role) string {
	if role == chatpod.RoleUser {
		return userStyle.Render("you>")
	}
	return systemStyle.Render("bot>")
}

// renderer prints session events as a running transcript. Reply updates carry
// the whole text so far; only the part not yet printed is written.
type renderer struct {
	mu      sync.Mutex
	out     io.Writer
	printed int
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out}
}

func (r *renderer) printTranscript(messages []chatpod.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range messages {
		fmt.Fprintf(r.out, "%s %s\n", prefix(m.Role), m.Text)
	}
}

func (r *renderer) observe(ev chatpod.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Type {
	case chatpod.EventTypeMessageAppended:
		// the user message was echoed by the terminal already
		if ev.Message.Role == chatpod.RoleSystem {
			fmt.Fprintf(r.out, "%s ", prefix(chatpod.RoleSystem))
			r.printed = 0
		}
	case chatpod.EventTypeMessageUpdated:
		if len(ev.Message.Text) > r.printed {
			io.WriteString(r.out, ev.Message.Text[r.printed:])
			r.printed = len(ev.Message.Text)
		}
	case chatpod.EventTypeStreamEnd:
		io.WriteString(r.out, "\n")
	case chatpod.EventTypeStreamError:
		if r.printed > 0 {
			io.WriteString(r.out, "\n    ")
		}
		fmt.Fprintln(r.out, errorStyle.Render(ev.Message.Text))
	}
}
