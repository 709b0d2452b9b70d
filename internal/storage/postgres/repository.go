// Package postgres stores users, challenges and shares in Postgres.
// Challenge segments are kept as a JSONB document in the client wire format.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitChallengeAPI/internal/apperror"
	"fitChallengeAPI/internal/types/challenge"
	"fitChallengeAPI/internal/types/share"
	"fitChallengeAPI/internal/types/user"
)

type Repository struct {
	db   *DB
	pool *pgxpool.Pool
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db, pool: db.Pool}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// foreignKeyViolation is the SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

func unavailable(op string, err error) error {
	return apperror.StoreUnavailable("postgres "+op, err)
}

func (r *Repository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, created) VALUES ($1, $2)`, u.ID, u.Created)
	if err != nil {
		return unavailable("insert user", err)
	}
	return nil
}

func (r *Repository) InsertChallenge(ctx context.Context, c challenge.Challenge) error {
	segments, err := json.Marshal(c.Segments)
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}

	const query = `INSERT INTO challenges (id, schema_version, author, name, summary, segments, share_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`

	_, err = r.pool.Exec(ctx, query,
		c.ID,
		c.SchemaVersion,
		c.Author,
		c.Name,
		c.Summary,
		segments,
		c.ShareID,
		c.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("author %s: %w", c.Author, apperror.ErrUserNotFound)
		}
		return unavailable("insert challenge", err)
	}
	return nil
}

const selectChallenge = `SELECT id, schema_version, author, name, summary, segments, COALESCE(share_id, ''), created_at FROM challenges`

func scanChallenge(row pgx.Row) (challenge.Challenge, error) {
	var (
		c        challenge.Challenge
		segments []byte
	)
	if err := row.Scan(&c.ID, &c.SchemaVersion, &c.Author, &c.Name, &c.Summary, &segments, &c.ShareID, &c.CreatedAt); err != nil {
		return c, err
	}
	if err := json.Unmarshal(segments, &c.Segments); err != nil {
		return c, fmt.Errorf("decode segments of %s: %w", c.ID, err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (r *Repository) GetChallenge(ctx context.Context, id string) (*challenge.Challenge, error) {
	c, err := scanChallenge(r.pool.QueryRow(ctx, selectChallenge+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable("get challenge", err)
	}
	return &c, nil
}

func (r *Repository) ListChallengesByAuthor(ctx context.Context, authorID string) ([]challenge.Challenge, error) {
	rows, err := r.pool.Query(ctx, selectChallenge+` WHERE author = $1 ORDER BY created_at, id`, authorID)
	if err != nil {
		return nil, unavailable("list challenges", err)
	}
	defer rows.Close()

	out := make([]challenge.Challenge, 0)
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, unavailable("scan challenge", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list challenges", err)
	}
	return out, nil
}

// DeleteChallenge reports whether a row was removed.
func (r *Repository) DeleteChallenge(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return false, unavailable("delete challenge", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) SetShare(ctx context.Context, id, shareID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE challenges SET share_id = $2 WHERE id = $1`, id, shareID)
	if err != nil {
		return false, unavailable("set share", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) InsertShare(ctx context.Context, s share.Share) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO shares (id, challenge_id, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.ChallengeID, s.CreatedAt)
	if err != nil {
		return unavailable("insert share", err)
	}
	return nil
}

func (r *Repository) GetShare(ctx context.Context, id string) (*share.Share, error) {
	var s share.Share
	err := r.pool.QueryRow(ctx, `SELECT id, challenge_id, created_at FROM shares WHERE id = $1`, id).
		Scan(&s.ID, &s.ChallengeID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable("get share", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}
