package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

type presenceRow struct {
	bun.BaseModel `bun:"table:presence,alias:p"`

	UserID   string    `bun:",pk"`
	Online   bool      `bun:",notnull,default:false"`
	Typing   bool      `bun:",notnull,default:false"`
	LastSeen time.Time `bun:",nullzero"`
}

// PresenceStore persists last-known presence in the presence table.
type PresenceStore struct {
	db  *bun.DB
	log *logger.Logger
}

// NewPresenceStore returns a Postgres-backed presence store.
func NewPresenceStore(db *bun.DB, log *logger.Logger) *PresenceStore {
	return &PresenceStore{db: db, log: log}
}

// Set upserts the user's presence record.
func (s *PresenceStore) Set(ctx context.Context, rec domain.PresenceRecord) error {
	row := &presenceRow{
		UserID:   string(rec.UserID),
		Online:   rec.Online,
		Typing:   rec.Typing,
		LastSeen: rec.LastSeen,
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("online = EXCLUDED.online").
		Set("typing = EXCLUDED.typing").
		Set("last_seen = EXCLUDED.last_seen").
		Exec(ctx)
	if err != nil {
		return apperrors.Unavailable("presence set", errors.Wrap(err, "presenceStore.Set.Exec"))
	}
	return nil
}

// Get returns the user's presence record, if any.
func (s *PresenceStore) Get(
	ctx context.Context,
	userID domain.UserID,
) (domain.PresenceRecord, bool, error) {
	row := new(presenceRow)
	err := s.db.NewSelect().Model(row).Where("user_id = ?", string(userID)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PresenceRecord{}, false, nil
	}
	if err != nil {
		return domain.PresenceRecord{}, false, apperrors.Unavailable(
			"presence get", errors.Wrap(err, "presenceStore.Get.Scan"),
		)
	}
	return domain.PresenceRecord{
		UserID:   domain.UserID(row.UserID),
		Online:   row.Online,
		Typing:   row.Typing,
		LastSeen: row.LastSeen,
	}, true, nil
}

// Compile-time assertion that PresenceStore implements domain.PresenceStore.
var _ domain.PresenceStore = (*PresenceStore)(nil)
