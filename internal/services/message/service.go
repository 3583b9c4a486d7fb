package message

import (
	"context"
	"time"

	"github.com/google/uuid"

	"secureai/internal/crypto"
	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

// Service encrypts, stores, lists and decrypts messages.
type Service struct {
	sessions domain.SessionService
	store    domain.MessageStore
	feed     domain.Feed
	log      *logger.Logger
}

// New constructs a message service. feed may be nil when no change
// notification is wired (tests, one-shot CLI runs).
func New(
	sessions domain.SessionService,
	store domain.MessageStore,
	feed domain.Feed,
	log *logger.Logger,
) *Service {
	return &Service{sessions: sessions, store: store, feed: feed, log: log}
}

// Send encrypts plaintext for the (from, to) pair and appends it to the
// message store. The shared key is manufactured (cached) as a side effect;
// a peer without a published key surfaces as CodeNotFound.
func (s *Service) Send(
	ctx context.Context,
	from, to domain.UserID,
	kind domain.MessageKind,
	plaintext string,
	opts domain.SendOptions,
) (domain.EncryptedMessage, error) {
	key, err := s.sessions.GetOrDeriveSharedKey(ctx, from, to)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}

	body := []byte(plaintext)
	ciphertext, iv, err := crypto.Encrypt(key, body)
	if err != nil {
		return domain.EncryptedMessage{}, apperrors.Internal("encrypt message", err)
	}
	mac, err := crypto.MessageMAC(key, body)
	if err != nil {
		return domain.EncryptedMessage{}, apperrors.Internal("compute message mac", err)
	}

	if kind == "" {
		kind = domain.KindText
	}
	msg := domain.EncryptedMessage{
		ID:          domain.MessageID(uuid.NewString()),
		SenderID:    from,
		RecipientID: to,
		Kind:        kind,
		Ciphertext:  ciphertext,
		IV:          iv,
		MAC:         mac,
		File:        opts.File,
		Voice:       opts.Voice,
		Reaction:    opts.Reaction,
		ReplyTo:     opts.ReplyTo,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Append(ctx, msg); err != nil {
		return domain.EncryptedMessage{}, err
	}

	s.publish(ctx, msg)
	return msg, nil
}

// History loads the transcript between a and b, strictly after since when
// since is non-zero, in created-at order.
//
// Each record is decrypted under the pair's shared key and its plaintext MAC
// is verified when present. Failures are per message: a corrupted record
// lands in Transcript.Failed with its reason while the rest of the
// conversation still loads. Cryptographic failures are terminal for that
// record; retrying with the same inputs is meaningless.
func (s *Service) History(
	ctx context.Context,
	a, b domain.UserID,
	since time.Time,
) (domain.Transcript, error) {
	key, err := s.sessions.GetOrDeriveSharedKey(ctx, a, b)
	if err != nil {
		return domain.Transcript{}, err
	}

	msgs, err := s.store.ListBetween(ctx, a, b, since)
	if err != nil {
		return domain.Transcript{}, err
	}

	var tr domain.Transcript
	for _, m := range msgs {
		plain, err := crypto.Decrypt(key, m.IV, m.Ciphertext)
		if err != nil {
			s.log.Warnw("undecryptable message skipped", "id", m.ID, "from", m.SenderID)
			tr.Failed = append(tr.Failed, domain.FailedMessage{
				ID:     m.ID,
				From:   m.SenderID,
				Reason: apperrors.Decryption("decrypt message", err),
			})
			continue
		}
		if len(m.MAC) > 0 {
			ok, err := crypto.VerifyMessageMAC(key, plain, m.MAC)
			if err != nil {
				return tr, apperrors.Internal("verify message mac", err)
			}
			if !ok {
				s.log.Warnw("message mac mismatch", "id", m.ID, "from", m.SenderID)
				tr.Failed = append(tr.Failed, domain.FailedMessage{
					ID:     m.ID,
					From:   m.SenderID,
					Reason: apperrors.MACMismatch("message mac mismatch"),
				})
				continue
			}
		}
		tr.Messages = append(tr.Messages, domain.DecryptedMessage{
			ID:        m.ID,
			From:      m.SenderID,
			To:        m.RecipientID,
			Kind:      m.Kind,
			Plaintext: string(plain),
			Edited:    m.Edited,
			CreatedAt: m.CreatedAt,
		})
	}
	return tr, nil
}

// Delete soft-deletes a message. Ciphertext is never rewritten.
func (s *Service) Delete(
	ctx context.Context,
	id domain.MessageID,
	requester domain.UserID,
) error {
	return s.store.SoftDelete(ctx, id, requester)
}

// MarkEdited flags a message as edited. This is metadata only; the stored
// ciphertext is immutable.
func (s *Service) MarkEdited(
	ctx context.Context,
	id domain.MessageID,
	requester domain.UserID,
) error {
	return s.store.MarkEdited(ctx, id, requester)
}

// publish emits a change-notification event. The message is already durably
// stored, so a feed failure is logged rather than surfaced.
func (s *Service) publish(ctx context.Context, msg domain.EncryptedMessage) {
	if s.feed == nil {
		return
	}
	ev := domain.Event{
		Conversation: msg.Conversation(),
		MessageID:    msg.ID,
		SenderID:     msg.SenderID,
		RecipientID:  msg.RecipientID,
		CreatedAt:    msg.CreatedAt,
	}
	if err := s.feed.Publish(ctx, ev); err != nil {
		s.log.Warnw("feed publish failed", "id", msg.ID, "err", err)
	}
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
