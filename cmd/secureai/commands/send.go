package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"secureai/internal/domain"
)

// send <peer> <message>: encrypt and store a message for <peer>.
func sendCmd() *cobra.Command {
	var (
		replyTo  string
		fileURL  string
		fileName string
		fileSize int64
		reactTo  string
		emoji    string
	)
	cmd := &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt and send a message to a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			peer := domain.UserID(args[0])

			kind := domain.KindText
			var opts domain.SendOptions
			if fileURL != "" {
				kind = domain.KindFile
				opts.File = &domain.FileMeta{URL: fileURL, Name: fileName, Size: fileSize}
			}
			if reactTo != "" {
				kind = domain.KindReaction
				opts.Reaction = &domain.ReactionMeta{
					TargetID: domain.MessageID(reactTo),
					Emoji:    emoji,
				}
			}
			if replyTo != "" {
				id := domain.MessageID(replyTo)
				opts.ReplyTo = &id
			}

			msg, err := appCtx.Chat.Send(
				cmd.Context(), domain.UserID(username), peer, kind, args[1], opts,
			)
			if err != nil {
				return err
			}
			fmt.Printf("sent %s\n", msg.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "message ID this message replies to")
	cmd.Flags().StringVar(&fileURL, "file-url", "", "attachment URL (marks the message as a file)")
	cmd.Flags().StringVar(&fileName, "file-name", "", "attachment display name")
	cmd.Flags().Int64Var(&fileSize, "file-size", 0, "attachment size in bytes")
	cmd.Flags().StringVar(&reactTo, "react-to", "", "message ID to react to (marks the message as a reaction)")
	cmd.Flags().StringVar(&emoji, "emoji", "", "reaction emoji")
	return cmd
}
