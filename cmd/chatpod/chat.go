package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/boat-builder/chatpod"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [session-id]",
		Short: "Start or continue a conversation",
		Long: `Start an interactive conversation. With a session id the saved history is
loaded first; without one a new conversation is started.

Type a message and press Enter to send it. /quit or Ctrl-D ends the session.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pod, err := chatpod.NewPodFromConfig(ctx, cfg.Config)
	if err != nil {
		return errors.Wrap(err, "failed to set up chat backends")
	}
	defer pod.Close()

	sessionID := ""
	if len(args) > 0 {
		sessionID = args[0]
	}

	out := cmd.OutOrStdout()
	r := newRenderer(out)
	sess, err := pod.NewSession(ctx, sessionID, chatpod.WithObserver(r.observe))
	if err != nil {
		return errors.Wrap(err, "could not load this chat")
	}
	defer sess.Close()

	fmt.Fprintf(out, "session %s\n", sess.ID())
	r.printTranscript(sess.Transcript())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	// done is closed when the reply in flight has settled; nil while idle
	var done <-chan struct{}
	for {
		if done == nil {
			fmt.Fprintf(out, "%s ", prefix(chatpod.RoleUser))
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case <-done:
			done = nil
		case line, ok := <-lines:
			if !ok {
				if done != nil {
					<-done
				}
				return nil
			}
			if strings.TrimSpace(line) == "/quit" {
				return nil
			}
			if done != nil {
				// typed while a reply is streaming
				continue
			}
			err := sess.Submit(line)
			if errors.Is(err, chatpod.ErrEmptyMessage) || errors.Is(err, chatpod.ErrStreaming) {
				continue
			}
			if err != nil {
				return err
			}
			done = exchangeDone(sess)
		}
	}
}

func exchangeDone(sess *chatpod.Session) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		sess.Wait()
		close(done)
	}()
	return done
}
