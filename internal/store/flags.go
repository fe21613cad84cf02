package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type flagRow struct {
	ItemID  string `sql:"item_id"`
	Starred bool   `sql:"starred"`
	Ignored bool   `sql:"ignored"`
}

// flagRepo implements FlagRepo with ent SQL builders.
type flagRepo struct {
	drv dialect.Driver
}

func (r *flagRepo) List(ctx context.Context, deckID string) (map[string]Flags, error) {
	q := builder().Select(colItemID, colStarred, colIgnored).
		From(builder().Table(tableFlags)).
		Where(entsql.EQ(colDeckID, deckID))

	var rows []flagRow
	if err := scanAll(ctx, r.drv, q, &rows); err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	out := make(map[string]Flags, len(rows))
	for _, row := range rows {
		out[row.ItemID] = Flags{Starred: row.Starred, Ignored: row.Ignored}
	}
	return out, nil
}

func (r *flagRepo) Set(ctx context.Context, deckID, itemID string, f Flags) error {
	if err := setFlags(ctx, r.drv, deckID, itemID, f); err != nil {
		return fmt.Errorf("set flags: %w", err)
	}
	return nil
}

func setFlags(ctx context.Context, ex dialect.ExecQuerier, deckID, itemID string, f Flags) error {
	q := builder().Insert(tableFlags).
		Columns(colDeckID, colItemID, colStarred, colIgnored, colUpdatedAt).
		Values(deckID, itemID, f.Starred, f.Ignored, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(colDeckID, colItemID),
			entsql.ResolveWithNewValues(),
		)
	_, err := exec(ctx, ex, q)
	return err
}

func getFlags(ctx context.Context, ex dialect.ExecQuerier, deckID, itemID string) (Flags, error) {
	q := builder().Select(colItemID, colStarred, colIgnored).
		From(builder().Table(tableFlags)).
		Where(entsql.And(entsql.EQ(colDeckID, deckID), entsql.EQ(colItemID, itemID))).
		Limit(1)

	var rows []flagRow
	if err := scanAll(ctx, ex, q, &rows); err != nil {
		return Flags{}, err
	}
	if len(rows) == 0 {
		return Flags{}, ErrNotFound
	}
	return Flags{Starred: rows[0].Starred, Ignored: rows[0].Ignored}, nil
}

func (r *flagRepo) Toggle(ctx context.Context, deckID, itemID string, kind FlagKind) (Flags, error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return Flags{}, fmt.Errorf("begin tx: %w", err)
	}

	f, err := getFlags(ctx, tx, deckID, itemID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Flags{}, rollback(tx, fmt.Errorf("get flags: %w", err))
	}
	switch kind {
	case FlagStarred:
		f.Starred = !f.Starred
	case FlagIgnored:
		f.Ignored = !f.Ignored
	default:
		return Flags{}, rollback(tx, fmt.Errorf("unknown flag kind %d", kind))
	}

	if err := setFlags(ctx, tx, deckID, itemID, f); err != nil {
		return Flags{}, rollback(tx, fmt.Errorf("set flags: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return Flags{}, fmt.Errorf("commit: %w", err)
	}
	return f, nil
}

func (r *flagRepo) PruneExcept(ctx context.Context, deckID string, keep []string) (int, error) {
	return pruneExcept(ctx, r.drv, tableFlags, deckID, keep)
}
