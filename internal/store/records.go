package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabz/internal/spacedrep"
)

// ensureBatch bounds the number of rows per multi-row insert.
const ensureBatch = 200

var recordColumns = []string{
	colItemID,
	colMode,
	colTotalCorrect,
	colTotalIncorrect,
	colLastCorrectAt,
	colLastIncorrectAt,
	colCorrectStreak,
	colIncorrectStreak,
	colCorrectStreakStart,
	colIncorrectStreakStart,
}

// recordRow is the scan target for performance_records. NULL timestamps
// scan as 0.
type recordRow struct {
	ItemID                 string `sql:"item_id"`
	Mode                   string `sql:"mode"`
	TotalCorrect           int64  `sql:"total_correct"`
	TotalIncorrect         int64  `sql:"total_incorrect"`
	LastCorrectAt          int64  `sql:"last_correct_at"`
	LastIncorrectAt        int64  `sql:"last_incorrect_at"`
	CorrectStreakLen       int64  `sql:"correct_streak_len"`
	IncorrectStreakLen     int64  `sql:"incorrect_streak_len"`
	CorrectStreakStartedAt int64  `sql:"correct_streak_started_at"`
	IncorrectStreakStarted int64  `sql:"incorrect_streak_started_at"`
}

func (r recordRow) record() spacedrep.PerformanceRecord {
	return spacedrep.PerformanceRecord{
		TotalCorrect:             int(r.TotalCorrect),
		TotalIncorrect:           int(r.TotalIncorrect),
		LastCorrectAt:            fromMillis(r.LastCorrectAt),
		LastIncorrectAt:          fromMillis(r.LastIncorrectAt),
		CorrectStreakLen:         int(r.CorrectStreakLen),
		IncorrectStreakLen:       int(r.IncorrectStreakLen),
		CorrectStreakStartedAt:   fromMillis(r.CorrectStreakStartedAt),
		IncorrectStreakStartedAt: fromMillis(r.IncorrectStreakStarted),
	}
}

// recordRepo implements RecordRepo with ent SQL builders.
type recordRepo struct {
	drv dialect.Driver
}

func keyPredicate(key RecordKey) *entsql.Predicate {
	return entsql.And(
		entsql.EQ(colDeckID, key.DeckID),
		entsql.EQ(colItemID, key.ItemID),
		entsql.EQ(colMode, key.Mode),
	)
}

func (r *recordRepo) Get(ctx context.Context, key RecordKey) (spacedrep.PerformanceRecord, error) {
	return getRecord(ctx, r.drv, key)
}

func getRecord(ctx context.Context, ex dialect.ExecQuerier, key RecordKey) (spacedrep.PerformanceRecord, error) {
	q := builder().Select(recordColumns...).
		From(builder().Table(tableRecords)).
		Where(keyPredicate(key)).
		Limit(1)

	var rows []recordRow
	if err := scanAll(ctx, ex, q, &rows); err != nil {
		return spacedrep.PerformanceRecord{}, fmt.Errorf("query record: %w", err)
	}
	if len(rows) == 0 {
		return spacedrep.PerformanceRecord{}, ErrNotFound
	}
	return rows[0].record(), nil
}

func (r *recordRepo) ListByDeck(ctx context.Context, deckID string) (spacedrep.History, error) {
	q := builder().Select(recordColumns...).
		From(builder().Table(tableRecords)).
		Where(entsql.EQ(colDeckID, deckID))

	var rows []recordRow
	if err := scanAll(ctx, r.drv, q, &rows); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	h := make(spacedrep.History, len(rows))
	for _, row := range rows {
		h[spacedrep.Key{ItemID: row.ItemID, Mode: row.Mode}] = row.record()
	}
	return h, nil
}

func (r *recordRepo) Upsert(ctx context.Context, key RecordKey, rec spacedrep.PerformanceRecord) error {
	if err := upsertRecord(ctx, r.drv, key, rec); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func upsertRecord(ctx context.Context, ex dialect.ExecQuerier, key RecordKey, rec spacedrep.PerformanceRecord) error {
	q := builder().Insert(tableRecords).
		Columns(
			colDeckID, colItemID, colMode,
			colTotalCorrect, colTotalIncorrect,
			colLastCorrectAt, colLastIncorrectAt,
			colCorrectStreak, colIncorrectStreak,
			colCorrectStreakStart, colIncorrectStreakStart,
			colUpdatedAt,
		).
		Values(
			key.DeckID, key.ItemID, key.Mode,
			rec.TotalCorrect, rec.TotalIncorrect,
			toMillis(rec.LastCorrectAt), toMillis(rec.LastIncorrectAt),
			rec.CorrectStreakLen, rec.IncorrectStreakLen,
			toMillis(rec.CorrectStreakStartedAt), toMillis(rec.IncorrectStreakStartedAt),
			time.Now().UnixMilli(),
		).
		OnConflict(
			entsql.ConflictColumns(colDeckID, colItemID, colMode),
			entsql.ResolveWithNewValues(),
		)
	_, err := exec(ctx, ex, q)
	return err
}

func (r *recordRepo) Update(ctx context.Context, key RecordKey, fn func(spacedrep.PerformanceRecord) spacedrep.PerformanceRecord) (spacedrep.PerformanceRecord, error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return spacedrep.PerformanceRecord{}, fmt.Errorf("begin tx: %w", err)
	}

	cur, err := getRecord(ctx, tx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		cur = spacedrep.NewRecord()
	case err != nil:
		return spacedrep.PerformanceRecord{}, rollback(tx, err)
	}

	next := fn(cur)
	if err := upsertRecord(ctx, tx, key, next); err != nil {
		return spacedrep.PerformanceRecord{}, rollback(tx, fmt.Errorf("upsert record: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return spacedrep.PerformanceRecord{}, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (r *recordRepo) EnsureMany(ctx context.Context, deckID string, itemIDs, modes []string) (int, error) {
	if len(itemIDs) == 0 || len(modes) == 0 {
		return 0, nil
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	now := time.Now().UnixMilli()
	created := 0
	var ins *entsql.InsertBuilder
	pending := 0
	flush := func() error {
		if pending == 0 {
			return nil
		}
		ins.OnConflict(
			entsql.ConflictColumns(colDeckID, colItemID, colMode),
			entsql.DoNothing(),
		)
		res, err := exec(ctx, tx, ins)
		if err != nil {
			return err
		}
		created += affected(res)
		ins, pending = nil, 0
		return nil
	}

	for _, id := range itemIDs {
		for _, mode := range modes {
			if ins == nil {
				ins = builder().Insert(tableRecords).Columns(colDeckID, colItemID, colMode, colUpdatedAt)
			}
			ins.Values(deckID, id, mode, now)
			pending++
			if pending == ensureBatch {
				if err := flush(); err != nil {
					return 0, rollback(tx, fmt.Errorf("ensure records: %w", err))
				}
			}
		}
	}
	if err := flush(); err != nil {
		return 0, rollback(tx, fmt.Errorf("ensure records: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

func (r *recordRepo) PruneExcept(ctx context.Context, deckID string, keep []string) (int, error) {
	return pruneExcept(ctx, r.drv, tableRecords, deckID, keep)
}

func (r *recordRepo) DeleteDeck(ctx context.Context, deckID string) (int, error) {
	return deleteDeck(ctx, r.drv, tableRecords, deckID)
}

func pruneExcept(ctx context.Context, ex dialect.ExecQuerier, table, deckID string, keep []string) (int, error) {
	if len(keep) == 0 {
		return deleteDeck(ctx, ex, table, deckID)
	}
	q := builder().Delete(table).Where(entsql.And(
		entsql.EQ(colDeckID, deckID),
		entsql.NotIn(colItemID, anySlice(keep)...),
	))
	res, err := exec(ctx, ex, q)
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", table, err)
	}
	return affected(res), nil
}

func deleteDeck(ctx context.Context, ex dialect.ExecQuerier, table, deckID string) (int, error) {
	res, err := exec(ctx, ex, builder().Delete(table).Where(entsql.EQ(colDeckID, deckID)))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}
	return affected(res), nil
}
