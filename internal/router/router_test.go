package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/vocabz/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	resumed int
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type resumingScreen struct{ stubScreen }

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

type backScreen struct {
	stubScreen
	backs int
}

type backMsg struct{}

func (s *backScreen) Back() tea.Cmd {
	s.backs++
	return func() tea.Msg { return backMsg{} }
}

func titles(r *Router) []string {
	out := make([]string, 0, r.Depth())
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name  string
		msgs  []tea.Msg
		stack []string
	}{
		{
			name:  "push",
			msgs:  []tea.Msg{PushScreenMsg{&stubScreen{title: "review"}}},
			stack: []string{"home", "review"},
		},
		{
			name:  "push then pop",
			msgs:  []tea.Msg{PushScreenMsg{&stubScreen{title: "review"}}, PopScreenMsg{}},
			stack: []string{"home"},
		},
		{
			name:  "pop at root is a no-op",
			msgs:  []tea.Msg{PopScreenMsg{}, PopScreenMsg{}},
			stack: []string{"home"},
		},
		{
			name: "replace keeps depth",
			msgs: []tea.Msg{
				PushScreenMsg{&stubScreen{title: "review"}},
				ReplaceScreenMsg{&stubScreen{title: "summary"}},
			},
			stack: []string{"home", "summary"},
		},
		{
			name:  "replace root",
			msgs:  []tea.Msg{ReplaceScreenMsg{&stubScreen{title: "stats"}}},
			stack: []string{"stats"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "home"})
			for _, msg := range tt.msgs {
				r.Update(msg)
			}
			assert.Equal(t, tt.stack, titles(r))
			assert.Equal(t, tt.stack[len(tt.stack)-1], r.Active().Title())
		})
	}
}

func TestPushAndReplaceRunInit(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	pushed := &stubScreen{title: "review"}
	replaced := &stubScreen{title: "summary"}

	r.Push(pushed)
	r.Replace(replaced)

	assert.Equal(t, 1, pushed.inits)
	assert.Equal(t, 1, replaced.inits)
}

func TestPopResumesExposedScreen(t *testing.T) {
	home := &resumingScreen{stubScreen{title: "home"}}
	r := New(home)

	r.Push(&stubScreen{title: "review"})
	r.Update(PopScreenMsg{})

	assert.Equal(t, 1, home.resumed)
	assert.Equal(t, "home", r.Active().Title())
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "review"}
	r := New(home)
	r.Push(top)

	r.Update("hello")

	assert.Empty(t, home.got)
	assert.Equal(t, []tea.Msg{"hello"}, top.got)
}

func TestBack(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	assert.Nil(t, r.Back(), "back at root")

	r.Push(&stubScreen{title: "stats"})
	cmd := r.Back()
	if assert.NotNil(t, cmd) {
		assert.Equal(t, PopScreenMsg{}, cmd())
	}

	bs := &backScreen{stubScreen: stubScreen{title: "review"}}
	r.Push(bs)
	cmd = r.Back()
	if assert.NotNil(t, cmd) {
		assert.Equal(t, backMsg{}, cmd())
	}
	assert.Equal(t, 1, bs.backs)
}
