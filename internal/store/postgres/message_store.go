package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

// messageMeta carries the kind-specific payload as one jsonb column.
type messageMeta struct {
	File     *domain.FileMeta     `json:"file,omitempty"`
	Voice    *domain.VoiceMeta    `json:"voice,omitempty"`
	Reaction *domain.ReactionMeta `json:"reaction,omitempty"`
	ReplyTo  *domain.MessageID    `json:"reply_to,omitempty"`
}

func (m *messageMeta) empty() bool {
	return m.File == nil && m.Voice == nil && m.Reaction == nil && m.ReplyTo == nil
}

type messageRow struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID          string       `bun:",pk"`
	SenderID    string       `bun:",notnull"`
	RecipientID string       `bun:",notnull"`
	Kind        string       `bun:",notnull,default:'text'"`
	Ciphertext  []byte       `bun:",notnull"`
	IV          []byte       `bun:"iv,notnull"`
	MAC         []byte       `bun:"mac"`
	Meta        *messageMeta `bun:"meta,type:jsonb,nullzero"`
	Edited      bool         `bun:",notnull,default:false"`
	CreatedAt   time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
	DeletedAt   time.Time    `bun:",soft_delete,nullzero"`
}

// MessageStore persists encrypted messages in the messages table.
type MessageStore struct {
	db  *bun.DB
	log *logger.Logger
}

// NewMessageStore returns a Postgres-backed message store.
func NewMessageStore(db *bun.DB, log *logger.Logger) *MessageStore {
	return &MessageStore{db: db, log: log}
}

// Append inserts one immutable message record.
func (s *MessageStore) Append(ctx context.Context, msg domain.EncryptedMessage) error {
	meta := &messageMeta{
		File:     msg.File,
		Voice:    msg.Voice,
		Reaction: msg.Reaction,
		ReplyTo:  msg.ReplyTo,
	}
	if meta.empty() {
		meta = nil
	}
	row := &messageRow{
		ID:          string(msg.ID),
		SenderID:    string(msg.SenderID),
		RecipientID: string(msg.RecipientID),
		Kind:        string(msg.Kind),
		Ciphertext:  msg.Ciphertext,
		IV:          msg.IV,
		MAC:         msg.MAC,
		Meta:        meta,
		Edited:      msg.Edited,
		CreatedAt:   msg.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return apperrors.Unavailable("message append", errors.Wrap(err, "messageStore.Append.Exec"))
	}
	return nil
}

// ListBetween returns the pair's messages ordered by created_at ascending.
// Soft-deleted rows are excluded by bun's soft-delete handling.
func (s *MessageStore) ListBetween(
	ctx context.Context,
	a, b domain.UserID,
	since time.Time,
) ([]domain.EncryptedMessage, error) {
	var rows []messageRow
	q := s.db.NewSelect().
		Model(&rows).
		Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			string(a), string(b), string(b), string(a),
		).
		Order("created_at ASC")
	if !since.IsZero() {
		q = q.Where("created_at > ?", since)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, apperrors.Unavailable(
			"message list", errors.Wrap(err, "messageStore.ListBetween.Scan"),
		)
	}

	out := make([]domain.EncryptedMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// SoftDelete hides a message. Only a participant may delete it.
func (s *MessageStore) SoftDelete(
	ctx context.Context,
	id domain.MessageID,
	requester domain.UserID,
) error {
	res, err := s.db.NewDelete().
		Model((*messageRow)(nil)).
		Where("id = ?", string(id)).
		Where("sender_id = ? OR recipient_id = ?", string(requester), string(requester)).
		Exec(ctx)
	if err != nil {
		return apperrors.Unavailable(
			"message delete", errors.Wrap(err, "messageStore.SoftDelete.Exec"),
		)
	}
	return requireAffected(res, id)
}

// MarkEdited sets the edited flag. Only the sender may set it.
func (s *MessageStore) MarkEdited(
	ctx context.Context,
	id domain.MessageID,
	requester domain.UserID,
) error {
	res, err := s.db.NewUpdate().
		Model((*messageRow)(nil)).
		Set("edited = TRUE").
		Where("id = ?", string(id)).
		Where("sender_id = ?", string(requester)).
		Exec(ctx)
	if err != nil {
		return apperrors.Unavailable(
			"message edit flag", errors.Wrap(err, "messageStore.MarkEdited.Exec"),
		)
	}
	return requireAffected(res, id)
}

func (r messageRow) toDomain() domain.EncryptedMessage {
	msg := domain.EncryptedMessage{
		ID:          domain.MessageID(r.ID),
		SenderID:    domain.UserID(r.SenderID),
		RecipientID: domain.UserID(r.RecipientID),
		Kind:        domain.MessageKind(r.Kind),
		Ciphertext:  r.Ciphertext,
		IV:          r.IV,
		MAC:         r.MAC,
		Edited:      r.Edited,
		CreatedAt:   r.CreatedAt,
	}
	if r.Meta != nil {
		msg.File = r.Meta.File
		msg.Voice = r.Meta.Voice
		msg.Reaction = r.Meta.Reaction
		msg.ReplyTo = r.Meta.ReplyTo
	}
	if !r.DeletedAt.IsZero() {
		deleted := r.DeletedAt
		msg.DeletedAt = &deleted
	}
	return msg
}

func requireAffected(res interface{ RowsAffected() (int64, error) }, id domain.MessageID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Unavailable("rows affected", errors.Wrap(err, "messageStore.rowsAffected"))
	}
	if n == 0 {
		return apperrors.NotFound(fmt.Sprintf("message %q not found for requester", id))
	}
	return nil
}

// Compile-time assertion that MessageStore implements domain.MessageStore.
var _ domain.MessageStore = (*MessageStore)(nil)
