package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	tableRecords  = "performance_records"
	tableFlags    = "item_flags"
	tableEvents   = "answer_events"
	tableSettings = "settings"

	colID        = "id"
	colDeckID    = "deck_id"
	colItemID    = "item_id"
	colMode      = "mode"
	colUpdatedAt = "updated_at"

	colTotalCorrect         = "total_correct"
	colTotalIncorrect       = "total_incorrect"
	colLastCorrectAt        = "last_correct_at"
	colLastIncorrectAt      = "last_incorrect_at"
	colCorrectStreak        = "correct_streak_len"
	colIncorrectStreak      = "incorrect_streak_len"
	colCorrectStreakStart   = "correct_streak_started_at"
	colIncorrectStreakStart = "incorrect_streak_started_at"

	colStarred = "starred"
	colIgnored = "ignored"

	colSequence   = "sequence"
	colSessionID  = "session_id"
	colCorrect    = "correct"
	colResponseMs = "response_ms"
	colAnsweredAt = "answered_at"

	colKey   = "key"
	colValue = "value"
)

func idColumn() *schema.Column {
	return &schema.Column{Name: colID, Type: field.TypeInt, Increment: true}
}

func int64Column(name string, nullable bool) *schema.Column {
	c := &schema.Column{Name: name, Type: field.TypeInt64, Nullable: nullable}
	if !nullable {
		c.Default = 0
	}
	return c
}

func stringColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString}
}

func boolColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeBool, Default: false}
}

// Tables returns the schema migrated on open. Timestamps are stored as
// Unix milliseconds; NULL means the event never happened.
func Tables() []*schema.Table {
	records := schema.NewTable(tableRecords).
		AddPrimary(idColumn()).
		AddColumn(stringColumn(colDeckID)).
		AddColumn(stringColumn(colItemID)).
		AddColumn(stringColumn(colMode)).
		AddColumn(int64Column(colTotalCorrect, false)).
		AddColumn(int64Column(colTotalIncorrect, false)).
		AddColumn(int64Column(colLastCorrectAt, true)).
		AddColumn(int64Column(colLastIncorrectAt, true)).
		AddColumn(int64Column(colCorrectStreak, false)).
		AddColumn(int64Column(colIncorrectStreak, false)).
		AddColumn(int64Column(colCorrectStreakStart, true)).
		AddColumn(int64Column(colIncorrectStreakStart, true)).
		AddColumn(int64Column(colUpdatedAt, false))
	records.AddIndex("performancerecord_deck_id_item_id_mode", true, []string{colDeckID, colItemID, colMode})

	flags := schema.NewTable(tableFlags).
		AddPrimary(idColumn()).
		AddColumn(stringColumn(colDeckID)).
		AddColumn(stringColumn(colItemID)).
		AddColumn(boolColumn(colStarred)).
		AddColumn(boolColumn(colIgnored)).
		AddColumn(int64Column(colUpdatedAt, false))
	flags.AddIndex("itemflag_deck_id_item_id", true, []string{colDeckID, colItemID})

	events := schema.NewTable(tableEvents).
		AddPrimary(idColumn()).
		AddColumn(int64Column(colSequence, false)).
		AddColumn(stringColumn(colSessionID)).
		AddColumn(stringColumn(colDeckID)).
		AddColumn(stringColumn(colItemID)).
		AddColumn(stringColumn(colMode)).
		AddColumn(boolColumn(colCorrect)).
		AddColumn(int64Column(colResponseMs, false)).
		AddColumn(int64Column(colAnsweredAt, false))
	events.AddIndex("answerevent_sequence", true, []string{colSequence})
	events.AddIndex("answerevent_deck_id_answered_at", false, []string{colDeckID, colAnsweredAt})

	settings := schema.NewTable(tableSettings).
		AddPrimary(idColumn()).
		AddColumn(stringColumn(colKey)).
		AddColumn(&schema.Column{Name: colValue, Type: field.TypeString, Size: 1 << 16}).
		AddColumn(int64Column(colUpdatedAt, false))
	settings.AddIndex("setting_key", true, []string{colKey})

	return []*schema.Table{records, flags, events, settings}
}
