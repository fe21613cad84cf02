package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabz/internal/spacedrep"
)

type item string

func (i item) ItemID() string { return string(i) }

const mode = "LM-recognition"

func run(answers ...bool) spacedrep.PerformanceRecord {
	rec := spacedrep.NewRecord()
	for i, c := range answers {
		rec = ApplyAnswer(rec, c, t0.Add(time.Duration(i)*time.Minute))
	}
	return rec
}

func TestCompute_Empty(t *testing.T) {
	m := Compute[item](nil, nil, mode, t0)
	assert.Zero(t, m.Total)
	assert.Zero(t, m.OverallAccuracy)
	assert.Empty(t, m.Strongest)
	assert.Empty(t, m.Weakest)
}

func TestCompute_Counts(t *testing.T) {
	h := spacedrep.History{
		{ItemID: "a", Mode: mode}:           run(true, true, true, true, true, true), // streak 6
		{ItemID: "b", Mode: mode}:           run(false, false),                       // streak 0
		{ItemID: "c", Mode: mode}:           run(true, false, true, true),            // streak 2
		{ItemID: "d", Mode: mode}:           spacedrep.NewRecord(),
		{ItemID: "a", Mode: "LM-listening"}: run(false),
	}
	items := []item{"a", "b", "c", "d", "e"}

	m := Compute(items, h.Lookup, mode, t0.Add(1000*time.Hour))
	assert.Equal(t, 5, m.Total)
	assert.Equal(t, 3, m.Reviewed)
	assert.Equal(t, 2, m.New)
	assert.Equal(t, 9, m.TotalCorrect)
	assert.Equal(t, 3, m.TotalIncorrect)
	assert.InDelta(t, 0.75, m.OverallAccuracy, 1e-9)
	assert.Equal(t, [5]int{1, 0, 1, 0, 1}, m.StreakHistogram)
	assert.Equal(t, 6, m.MaxCorrectStreak)
	assert.Equal(t, 2, m.MaxIncorrectStreak)
	assert.InDelta(t, 8.0/3.0, m.AvgCorrectStreak, 1e-9)

	require.Len(t, m.Strongest, 3)
	assert.Equal(t, "a", m.Strongest[0].ItemID)
	assert.Equal(t, "b", m.Weakest[0].ItemID)
	assert.Equal(t, "c", m.Weakest[1].ItemID)
}

func TestCompute_TopListsTieBreakOnVolume(t *testing.T) {
	h := spacedrep.History{
		{ItemID: "few", Mode: mode}:  run(true),
		{ItemID: "many", Mode: mode}: run(true, true, true),
	}
	m := Compute([]item{"few", "many"}, h.Lookup, mode, t0)
	assert.Equal(t, "many", m.Strongest[0].ItemID)
	assert.Equal(t, "many", m.Weakest[0].ItemID)
}

func TestCompute_TopListsCapped(t *testing.T) {
	h := spacedrep.History{}
	var items []item
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("i%02d", i)
		h[spacedrep.Key{ItemID: id, Mode: mode}] = run(true)
		items = append(items, item(id))
	}
	m := Compute(items, h.Lookup, mode, t0)
	assert.Len(t, m.Strongest, TopN)
	assert.Len(t, m.Weakest, TopN)
}

func TestCompute_DueRate(t *testing.T) {
	now := t0.Add(100 * time.Hour)
	h := spacedrep.History{
		// one correct answer: due 4h after the answer
		{ItemID: "overdue", Mode: mode}: run(true),
		{ItemID: "in10m", Mode: mode}:   answeredAt(now.Add(-4*time.Hour + 10*time.Minute)),
		{ItemID: "in20m", Mode: mode}:   answeredAt(now.Add(-4*time.Hour + 20*time.Minute)),
		{ItemID: "in3h", Mode: mode}:    answeredAt(now.Add(-time.Hour)),
		{ItemID: "far", Mode: mode}:     ApplyAnswer(answeredAt(now.Add(-time.Minute)), true, now),
	}
	items := []item{"overdue", "in10m", "in20m", "in3h", "far", "new"}

	m := Compute(items, h.Lookup, mode, now)
	assert.Equal(t, 3, m.DueRate[0], "overdue, in10m, new")
	assert.Equal(t, 1, m.DueRate[1])
	assert.Equal(t, 1, m.DueRate[12])
	sum := 0
	for _, n := range m.DueRate {
		sum += n
	}
	assert.Equal(t, 5, sum, "items due a day out are off the chart")
}

func answeredAt(at time.Time) spacedrep.PerformanceRecord {
	return ApplyAnswer(spacedrep.NewRecord(), true, at)
}
