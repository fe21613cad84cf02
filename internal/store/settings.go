package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Well-known settings keys.
const (
	SettingSelectedDeck = "selected_deck"
	SettingMode         = "mode"
)

// FilterSettingKey is the settings key holding a deck's saved filter.
func FilterSettingKey(deckID string) string {
	return "filters." + deckID
}

type settingRow struct {
	Value string `sql:"value"`
}

// settingsRepo implements SettingsRepo with JSON-encoded values.
type settingsRepo struct {
	drv dialect.Driver
}

func (r *settingsRepo) Get(ctx context.Context, key string, v any) (bool, error) {
	q := builder().Select(colValue).
		From(builder().Table(tableSettings)).
		Where(entsql.EQ(colKey, key)).
		Limit(1)

	var rows []settingRow
	if err := scanAll(ctx, r.drv, q, &rows); err != nil {
		return false, fmt.Errorf("get setting %s: %w", key, err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	if err := json.Unmarshal([]byte(rows[0].Value), v); err != nil {
		return false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	q := builder().Insert(tableSettings).
		Columns(colKey, colValue, colUpdatedAt).
		Values(key, string(b), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(colKey),
			entsql.ResolveWithNewValues(),
		)
	if _, err := exec(ctx, r.drv, q); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	if _, err := exec(ctx, r.drv, builder().Delete(tableSettings).Where(entsql.EQ(colKey, key))); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}
