package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"secureai/internal/domain"
)

func presenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presence",
		Short: "Show or update presence",
	}
	cmd.AddCommand(presenceShowCmd(), presenceSetCmd())
	return cmd
}

// presence show <peer>: print a peer's last-known presence.
func presenceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <peer>",
		Short: "Print a peer's last-known presence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, ok, err := appCtx.Presence.Get(cmd.Context(), domain.UserID(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("%s: never seen\n", args[0])
				return nil
			}
			state := "offline"
			if rec.Online {
				state = "online"
			}
			if rec.Typing {
				state += ", typing"
			}
			fmt.Printf("%s: %s (last seen %s)\n",
				rec.UserID, state, rec.LastSeen.Local().Format(time.RFC3339))
			return nil
		},
	}
}

// presence set: update your own presence flags.
func presenceSetCmd() *cobra.Command {
	var online, typing bool
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update your own presence",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			rec := domain.PresenceRecord{
				UserID:   domain.UserID(username),
				Online:   online,
				Typing:   typing,
				LastSeen: time.Now().UTC(),
			}
			if err := appCtx.Presence.Set(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Println("presence updated")
			return nil
		},
	}
	cmd.Flags().BoolVar(&online, "online", true, "online flag")
	cmd.Flags().BoolVar(&typing, "typing", false, "typing flag")
	return cmd
}
