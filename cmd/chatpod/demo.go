package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/boat-builder/chatpod/demo"
)

var speakerAvatars = map[string]string{
	"human1": "🙂",
	"human2": "😀",
	"bot":    "🤖",
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Play the landing page conversation until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			player := demo.NewPlayer(demo.DefaultScript)
			err := player.Run(cmd.Context(), func(step demo.Step) {
				fmt.Fprintf(out, "%s %s\n", speakerAvatars[step.Speaker], step.Text)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
