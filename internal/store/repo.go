package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabz/internal/spacedrep"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // answered_at >= From
	To     time.Time // answered_at <= To
}

// RecordKey identifies one performance record.
type RecordKey struct {
	DeckID string
	ItemID string
	Mode   string
}

// RecordRepo persists per-(deck, item, mode) performance records.
type RecordRepo interface {
	// Get returns the stored record, or ErrNotFound.
	Get(ctx context.Context, key RecordKey) (spacedrep.PerformanceRecord, error)

	// ListByDeck returns every record of a deck keyed by item and mode.
	ListByDeck(ctx context.Context, deckID string) (spacedrep.History, error)

	// Upsert writes rec, replacing any existing row.
	Upsert(ctx context.Context, key RecordKey, rec spacedrep.PerformanceRecord) error

	// Update applies fn to the current record (or a fresh one) and stores
	// the result in a single transaction.
	Update(ctx context.Context, key RecordKey, fn func(spacedrep.PerformanceRecord) spacedrep.PerformanceRecord) (spacedrep.PerformanceRecord, error)

	// EnsureMany creates fresh records for every missing (item, mode) pair
	// and returns how many were created.
	EnsureMany(ctx context.Context, deckID string, itemIDs, modes []string) (int, error)

	// PruneExcept deletes the deck's records whose item is not in keep.
	PruneExcept(ctx context.Context, deckID string, keep []string) (int, error)

	// DeleteDeck removes every record of a deck.
	DeleteDeck(ctx context.Context, deckID string) (int, error)
}

// Flags are the per-item user toggles.
type Flags struct {
	Starred bool
	Ignored bool
}

// FlagKind selects a toggle for FlagRepo.Toggle.
type FlagKind int

const (
	FlagStarred FlagKind = iota
	FlagIgnored
)

// FlagRepo persists starred and ignored toggles per (deck, item).
type FlagRepo interface {
	List(ctx context.Context, deckID string) (map[string]Flags, error)
	Set(ctx context.Context, deckID, itemID string, f Flags) error
	Toggle(ctx context.Context, deckID, itemID string, kind FlagKind) (Flags, error)
	PruneExcept(ctx context.Context, deckID string, keep []string) (int, error)
}

// AnswerEvent is one graded answer.
type AnswerEvent struct {
	Sequence     int64
	SessionID    string
	DeckID       string
	ItemID       string
	Mode         string
	Correct      bool
	ResponseTime time.Duration
	AnsweredAt   time.Time
}

// EventRepo provides append and query access to answer events.
type EventRepo interface {
	// AppendAnswer stores ev and returns its sequence number.
	AppendAnswer(ctx context.Context, ev AnswerEvent) (int64, error)

	// RecentAnswers returns a deck's answers, newest first.
	RecentAnswers(ctx context.Context, deckID string, opts QueryOpts) ([]AnswerEvent, error)

	// CountAnswersSince counts a deck's answers at or after since.
	CountAnswersSince(ctx context.Context, deckID string, since time.Time) (total, correct int, err error)

	// DeleteDeck removes every event of a deck.
	DeleteDeck(ctx context.Context, deckID string) (int, error)
}

// SettingsRepo stores JSON-encoded values by key.
type SettingsRepo interface {
	// Get decodes the value at key into v and reports whether it existed.
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func exec(ctx context.Context, ex dialect.ExecQuerier, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	var res sql.Result
	if err := ex.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func scanAll(ctx context.Context, ex dialect.ExecQuerier, q entsql.Querier, dest any) error {
	query, args := q.Query()
	var rows entsql.Rows
	if err := ex.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, dest)
}

func scanInt(ctx context.Context, ex dialect.ExecQuerier, q entsql.Querier) (int, error) {
	query, args := q.Query()
	var rows entsql.Rows
	if err := ex.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	n, err := entsql.ScanInt64(rows)
	return int(n), err
}

func affected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}

func rollback(tx dialect.Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		return fmt.Errorf("%w: rollback: %v", err, rerr)
	}
	return err
}

// toMillis maps the zero time to NULL.
func toMillis(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
