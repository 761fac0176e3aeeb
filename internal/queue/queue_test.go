package queue_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/DingzixuanCYEZ/CCB/internal/queue"
)

func TestInsertAt_Clamps(t *testing.T) {
	q := queue.New([]string{"a", "b"})

	if got := q.InsertAt("c", 10); got != 2 {
		t.Errorf("expected clamp to 2, got %d", got)
	}
	if got := q.InsertAt("d", -3); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
	want := []string{"d", "a", "b", "c"}
	if !slices.Equal(q.Active, want) {
		t.Errorf("expected %v, got %v", want, q.Active)
	}
}

func TestRemove(t *testing.T) {
	q := queue.New([]string{"a", "b", "c"})
	if !q.Remove("b") {
		t.Fatal("expected b to be removed")
	}
	if q.Remove("zzz") {
		t.Error("expected unknown id to report false")
	}
	if !slices.Equal(q.Active, []string{"a", "c"}) {
		t.Errorf("unexpected active queue %v", q.Active)
	}
}

func TestCool_RejectsNonPositiveWait(t *testing.T) {
	q := queue.New(nil)
	if err := q.Cool("a", 0); !errors.Is(err, queue.ErrInvalidWait) {
		t.Errorf("expected ErrInvalidWait, got %v", err)
	}
}

func TestTick_ReappearsAfterWait(t *testing.T) {
	q := queue.New([]string{"a", "b", "c", "d"})
	if err := q.Cool("x", 3); err != nil {
		t.Fatal(err)
	}

	for turn := 1; turn <= 2; turn++ {
		if woken := q.Tick(); len(woken) != 0 {
			t.Fatalf("turn %d: expected nothing to wake, got %v", turn, woken)
		}
	}
	woken := q.Tick()
	if !slices.Equal(woken, []string{"x"}) {
		t.Fatalf("expected x to wake on the third turn, got %v", woken)
	}
	if q.Active[len(q.Active)-1] != "x" {
		t.Errorf("expected x at the tail, got %v", q.Active)
	}
	if q.CoolingLen() != 0 {
		t.Errorf("expected empty pool, got %v", q.Cooling)
	}
}

func TestTick_WakesLowestWaitFirst(t *testing.T) {
	q := queue.Queue{Cooling: []queue.Entry{{ID: "late", Wait: 1}, {ID: "early", Wait: 0}, {ID: "later", Wait: 1}}}
	woken := q.Tick()
	want := []string{"early", "late", "later"}
	if !slices.Equal(woken, want) {
		t.Errorf("expected %v, got %v", want, woken)
	}
}

func TestFastForward(t *testing.T) {
	q := queue.Queue{Cooling: []queue.Entry{{ID: "a", Wait: 4}, {ID: "b", Wait: 2}, {ID: "c", Wait: 2}}}

	woken := q.FastForward()
	if !slices.Equal(woken, []string{"b", "c"}) {
		t.Fatalf("expected b and c to wake, got %v", woken)
	}
	if w, ok := q.Wait("a"); !ok || w != 2 {
		t.Errorf("expected a to have wait 2, got %d (present %v)", w, ok)
	}

	if woken := q.FastForward(); woken != nil {
		t.Errorf("expected no fast-forward with a non-empty queue, got %v", woken)
	}
}

func TestValidate(t *testing.T) {
	deck := []string{"a", "b", "c"}

	ok := queue.Queue{Active: []string{"b", "a"}, Cooling: []queue.Entry{{ID: "c", Wait: 2}}}
	if err := ok.Validate(deck); err != nil {
		t.Errorf("expected valid queue, got %v", err)
	}

	tests := []struct {
		name string
		q    queue.Queue
		want error
	}{
		{"missing", queue.Queue{Active: []string{"a", "b"}}, queue.ErrMissingCard},
		{"duplicate", queue.Queue{Active: []string{"a", "b", "c", "a"}}, queue.ErrDuplicateCard},
		{"unknown", queue.Queue{Active: []string{"a", "b", "c", "z"}}, queue.ErrUnknownCard},
		{"zero wait", queue.Queue{Active: []string{"a", "b"}, Cooling: []queue.Entry{{ID: "c"}}}, queue.ErrInvalidWait},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.q.Validate(deck); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRepair(t *testing.T) {
	deck := []string{"a", "b", "c", "d"}
	q := queue.Queue{
		Active:  []string{"b", "ghost", "b"},
		Cooling: []queue.Entry{{ID: "c", Wait: 0}, {ID: "b", Wait: 3}},
	}
	q.Repair(deck)

	if err := q.Validate(deck); err != nil {
		t.Fatalf("expected repaired queue to be valid, got %v", err)
	}
	if !slices.Equal(q.Active, []string{"b", "a", "d"}) {
		t.Errorf("unexpected active order %v", q.Active)
	}
	if w, _ := q.Wait("c"); w != 1 {
		t.Errorf("expected c wait raised to 1, got %d", w)
	}
}

func TestPromote(t *testing.T) {
	q := queue.Queue{Active: []string{"a", "b", "c"}, Cooling: []queue.Entry{{ID: "d", Wait: 2}}}
	q.Promote([]string{"d", "c"})

	if !slices.Equal(q.Active, []string{"d", "c", "a", "b"}) {
		t.Errorf("unexpected active order %v", q.Active)
	}
	if q.CoolingLen() != 0 {
		t.Errorf("expected d to leave the pool, got %v", q.Cooling)
	}
}

func TestInterleave(t *testing.T) {
	q := queue.Queue{
		Active:  []string{"a", "w1", "b", "c"},
		Cooling: []queue.Entry{{ID: "d", Wait: 3}},
	}
	q.Interleave([]string{"w1", "w2"}, 2)

	// others: a b c d(cool 3); w1 after b, w2 after d and inherits its wait.
	if !slices.Equal(q.Active, []string{"a", "b", "w1", "c"}) {
		t.Errorf("unexpected active order %v", q.Active)
	}
	if w, ok := q.Wait("w2"); !ok || w != 3 {
		t.Errorf("expected w2 to cool for 3 turns, got %d (present %v)", w, ok)
	}
	if err := q.Validate([]string{"a", "b", "c", "d", "w1", "w2"}); err != nil {
		t.Errorf("expected valid queue, got %v", err)
	}
}
