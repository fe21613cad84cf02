package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var eventColumns = []string{
	colSequence, colSessionID, colDeckID, colItemID, colMode,
	colCorrect, colResponseMs, colAnsweredAt,
}

type eventRow struct {
	Sequence   int64  `sql:"sequence"`
	SessionID  string `sql:"session_id"`
	DeckID     string `sql:"deck_id"`
	ItemID     string `sql:"item_id"`
	Mode       string `sql:"mode"`
	Correct    bool   `sql:"correct"`
	ResponseMs int64  `sql:"response_ms"`
	AnsweredAt int64  `sql:"answered_at"`
}

// eventRepo implements EventRepo. Sequence numbers come from the shared
// counter, so AppendAnswer must not run inside another open transaction.
type eventRepo struct {
	drv dialect.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswer(ctx context.Context, ev AnswerEvent) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	at := ev.AnsweredAt
	if at.IsZero() {
		at = time.Now()
	}
	q := builder().Insert(tableEvents).
		Columns(eventColumns...).
		Values(
			seqNum, ev.SessionID, ev.DeckID, ev.ItemID, ev.Mode,
			ev.Correct, ev.ResponseTime.Milliseconds(), at.UnixMilli(),
		)
	if _, err := exec(ctx, r.drv, q); err != nil {
		return 0, fmt.Errorf("save answer event: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, deckID string, opts QueryOpts) ([]AnswerEvent, error) {
	preds := []*entsql.Predicate{entsql.EQ(colDeckID, deckID)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(colAnsweredAt, opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(colAnsweredAt, opts.To.UnixMilli()))
	}

	q := builder().Select(eventColumns...).
		From(builder().Table(tableEvents)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc(colSequence))
	if opts.Limit > 0 {
		q.Limit(opts.Limit)
	}

	var rows []eventRow
	if err := scanAll(ctx, r.drv, q, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	out := make([]AnswerEvent, len(rows))
	for i, row := range rows {
		out[i] = AnswerEvent{
			Sequence:     row.Sequence,
			SessionID:    row.SessionID,
			DeckID:       row.DeckID,
			ItemID:       row.ItemID,
			Mode:         row.Mode,
			Correct:      row.Correct,
			ResponseTime: time.Duration(row.ResponseMs) * time.Millisecond,
			AnsweredAt:   fromMillis(row.AnsweredAt),
		}
	}
	return out, nil
}

func (r *eventRepo) CountAnswersSince(ctx context.Context, deckID string, since time.Time) (int, int, error) {
	base := entsql.And(
		entsql.EQ(colDeckID, deckID),
		entsql.GTE(colAnsweredAt, since.UnixMilli()),
	)
	total, err := scanInt(ctx, r.drv, builder().Select().Count().
		From(builder().Table(tableEvents)).Where(base))
	if err != nil {
		return 0, 0, fmt.Errorf("count answers: %w", err)
	}

	correct, err := scanInt(ctx, r.drv, builder().Select().Count().
		From(builder().Table(tableEvents)).
		Where(entsql.And(
			entsql.EQ(colDeckID, deckID),
			entsql.GTE(colAnsweredAt, since.UnixMilli()),
			entsql.EQ(colCorrect, true),
		)))
	if err != nil {
		return 0, 0, fmt.Errorf("count correct answers: %w", err)
	}
	return total, correct, nil
}

func (r *eventRepo) DeleteDeck(ctx context.Context, deckID string) (int, error) {
	return deleteDeck(ctx, r.drv, tableEvents, deckID)
}
