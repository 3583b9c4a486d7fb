package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"secureai/internal/domain"
)

// history <peer>: decrypt and print the conversation with <peer>.
func historyCmd() *cobra.Command {
	var sinceFlag time.Duration
	cmd := &cobra.Command{
		Use:   "history <peer>",
		Short: "Decrypt and print the conversation with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			var since time.Time
			if sinceFlag > 0 {
				since = time.Now().UTC().Add(-sinceFlag)
			}

			tr, err := appCtx.Chat.History(
				cmd.Context(), domain.UserID(username), domain.UserID(args[0]), since,
			)
			if err != nil {
				return err
			}
			for _, m := range tr.Messages {
				edited := ""
				if m.Edited {
					edited = " (edited)"
				}
				fmt.Printf("%s [%s]%s %s\n",
					m.CreatedAt.Local().Format(time.RFC3339), m.From, edited, m.Plaintext)
			}
			for _, f := range tr.Failed {
				fmt.Printf("!! message %s from %s could not be read: %v\n", f.ID, f.From, f.Reason)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&sinceFlag, "since", 0, "only messages newer than this (e.g. 24h)")
	return cmd
}
