package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

type keyRow struct {
	bun.BaseModel `bun:"table:identity_keys,alias:k"`

	UserID     string    `bun:",pk"`
	PublicKey  []byte    `bun:",notnull"` // uncompressed EC point
	PrivateKey []byte    `bun:",notnull"` // PKCS#8 DER
	CreatedAt  time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// KeyStore persists key pairs in the identity_keys table.
type KeyStore struct {
	db  *bun.DB
	log *logger.Logger
}

// NewKeyStore returns a Postgres-backed key store.
func NewKeyStore(db *bun.DB, log *logger.Logger) *KeyStore {
	return &KeyStore{db: db, log: log}
}

// Get returns the record for userID, if present.
func (s *KeyStore) Get(
	ctx context.Context,
	userID domain.UserID,
) (domain.KeyRecord, bool, error) {
	row := new(keyRow)
	err := s.db.NewSelect().Model(row).Where("user_id = ?", string(userID)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.KeyRecord{}, false, nil
	}
	if err != nil {
		return domain.KeyRecord{}, false, apperrors.Unavailable(
			"key store get", errors.Wrap(err, "keyStore.Get.Scan"),
		)
	}
	return domain.KeyRecord{
		UserID:     domain.UserID(row.UserID),
		PublicKey:  row.PublicKey,
		PrivateKey: row.PrivateKey,
		CreatedAt:  row.CreatedAt,
	}, true, nil
}

// Put inserts the record unless one already exists for the user. The insert
// is conditional on the user-id primary key, so concurrent first writes
// serialize in the database; the loser sees CodeConflict.
func (s *KeyStore) Put(ctx context.Context, rec domain.KeyRecord) error {
	row := &keyRow{
		UserID:     string(rec.UserID),
		PublicKey:  rec.PublicKey,
		PrivateKey: rec.PrivateKey,
		CreatedAt:  rec.CreatedAt,
	}
	res, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return apperrors.Unavailable("key store put", errors.Wrap(err, "keyStore.Put.Exec"))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Unavailable("key store put", errors.Wrap(err, "keyStore.Put.RowsAffected"))
	}
	if n == 0 {
		return apperrors.Conflict(fmt.Sprintf("key pair already registered for %q", rec.UserID))
	}
	return nil
}

// Compile-time assertion that KeyStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyStore)(nil)
