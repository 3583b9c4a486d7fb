package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"secureai/internal/crypto"
	"secureai/internal/domain"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the identity key pair for --user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			user := domain.UserID(username)
			pair, err := appCtx.Identity.GetOrCreateKeyPair(cmd.Context(), user)
			if err != nil {
				return err
			}
			fp, err := appCtx.Identity.Fingerprint(cmd.Context(), user)
			if err != nil {
				return err
			}
			fmt.Printf("Identity ready.\nFingerprint: %s\nPublic key:  %s\n",
				fp, crypto.B64(appCtx.Identity.ExportPublicKey(pair)))
			return nil
		},
	}
}
