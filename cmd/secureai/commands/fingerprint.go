package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"secureai/internal/domain"
)

// fingerprint [peer]: print your own fingerprint, or a peer's for
// out-of-band comparison.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [peer]",
		Short: "Print an identity fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := username
			if len(args) == 1 {
				target = args[0]
			}
			if target == "" {
				return errNoUser
			}
			fp, err := appCtx.Identity.Fingerprint(cmd.Context(), domain.UserID(target))
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", target, fp)
			return nil
		},
	}
}
