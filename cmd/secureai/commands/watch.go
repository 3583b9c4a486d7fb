package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"secureai/internal/domain"
)

// watch <peer>: stream change notifications for the conversation until
// interrupted.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <peer>",
		Short: "Stream new-message notifications for a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			conv := domain.ConversationFor(domain.UserID(username), domain.UserID(args[0]))
			events, cancel, err := appCtx.Feed.Subscribe(ctx, conv)
			if err != nil {
				return err
			}
			defer cancel()

			fmt.Printf("watching %s (ctrl-c to stop)\n", conv)
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					fmt.Printf("%s: new message %s from %s\n",
						ev.CreatedAt.Local().Format("15:04:05"), ev.MessageID, ev.SenderID)
				}
			}
		},
	}
}
