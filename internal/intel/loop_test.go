package intel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arbitrum1984/Arbitron-Systems/internal/model"

	"github.com/go-playground/assert/v2"
)

type fakeSource struct {
	name  string
	items []Item
	err   error
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(ctx context.Context) ([]Item, error) {
	return s.items, s.err
}

type fakeStore struct {
	mu       sync.Mutex
	messages []string
	sessions []string
	roles    []string
}

func (s *fakeStore) AddMessage(sessionID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sessionID)
	s.roles = append(s.roles, role)
	s.messages = append(s.messages, content)
	return nil
}

func keepAll(Item) bool { return true }

func plainFormat(it Item) string { return it.Source + ": " + it.Title }

func newTestLoop(sources []Source, keep Policy, store *fakeStore) *Loop {
	return NewLoop("test", sources, time.Minute, keep, plainFormat, NewLedger(100), store, nil)
}

func TestRunCycle_AppendsToIntelStream(t *testing.T) {
	store := &fakeStore{}
	loop := newTestLoop([]Source{
		&fakeSource{name: "a", items: []Item{{Title: "Tanker seized", Link: "https://a/1", Source: "a"}}},
	}, keepAll, store)

	n := loop.runCycle(context.Background())

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{model.IntelStreamSession}, store.sessions)
	assert.Equal(t, []string{model.RoleSystem}, store.roles)
	assert.Equal(t, []string{"a: Tanker seized"}, store.messages)
}

func TestRunCycle_DeterministicOrder(t *testing.T) {
	sources := func() []Source {
		return []Source{
			&fakeSource{name: "first", items: []Item{
				{Title: "one", Link: "https://f/1", Source: "first"},
				{Title: "two", Link: "https://f/2", Source: "first"},
			}},
			&fakeSource{name: "second", items: []Item{
				{Title: "three", Link: "https://s/1", Source: "second"},
			}},
		}
	}

	var runs [][]string
	for i := 0; i < 5; i++ {
		store := &fakeStore{}
		loop := newTestLoop(sources(), keepAll, store)
		loop.runCycle(context.Background())
		runs = append(runs, store.messages)
	}

	want := []string{"first: one", "first: two", "second: three"}
	for _, got := range runs {
		assert.Equal(t, want, got)
	}
}

func TestRunCycle_DedupAcrossCycles(t *testing.T) {
	store := &fakeStore{}
	loop := newTestLoop([]Source{
		&fakeSource{name: "a", items: []Item{{Title: "x", Link: "https://a/1", Source: "a"}}},
	}, keepAll, store)

	first := loop.runCycle(context.Background())
	second := loop.runCycle(context.Background())

	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, len(store.messages))
}

func TestRunCycle_DiscardedItemsStillRecorded(t *testing.T) {
	store := &fakeStore{}
	keepNone := func(Item) bool { return false }
	loop := newTestLoop([]Source{
		&fakeSource{name: "a", items: []Item{{Title: "noise", Link: "https://a/1", Source: "a"}}},
	}, keepNone, store)

	loop.runCycle(context.Background())

	assert.Equal(t, 0, len(store.messages))
	assert.Equal(t, true, loop.ledger.Seen(Fingerprint("https://a/1")))
}

func TestRunCycle_FailedSourceIsolated(t *testing.T) {
	store := &fakeStore{}
	loop := newTestLoop([]Source{
		&fakeSource{name: "bad", err: errors.New("connection refused")},
		&fakeSource{name: "good", items: []Item{{Title: "ok", Link: "https://g/1", Source: "good"}}},
	}, keepAll, store)

	n := loop.runCycle(context.Background())

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"good: ok"}, store.messages)
}

func TestRun_StopsOnCancel(t *testing.T) {
	store := &fakeStore{}
	loop := newTestLoop([]Source{&fakeSource{name: "a"}}, keepAll, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on context cancellation")
	}
}

func TestSocialPolicy_BlockBeatsAllow(t *testing.T) {
	// Contains both a garbage and an alpha keyword.
	it := Item{Title: "TRAGIC crash near SANCTION zone"}
	assert.Equal(t, false, SocialPolicy(it))
}

func TestSocialPolicy_NeutralDropped(t *testing.T) {
	it := Item{Title: "local team wins championship"}
	assert.Equal(t, false, SocialPolicy(it))
}

func TestSocialPolicy_AlphaKept(t *testing.T) {
	it := Item{Title: "Navy intercepted supertanker near Hormuz"}
	assert.Equal(t, true, SocialPolicy(it))
}

func TestRSSPolicy_TrustedKeepsAll(t *testing.T) {
	it := Item{Title: "completely unrelated story", Trusted: true}
	assert.Equal(t, true, RSSPolicy(it))
}

func TestRSSPolicy_AggregatorNeedsAlpha(t *testing.T) {
	assert.Equal(t, false, RSSPolicy(Item{Title: "completely unrelated story"}))
	assert.Equal(t, true, RSSPolicy(Item{Title: "OPEC cuts output again"}))
}
