// Package queue holds the ordered review queue of a deck together with the
// cooling pool of cards whose reinsertion offset ran past the queue's end.
package queue

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	ErrMissingCard   = errors.New("queue: card missing from queue and cooling pool")
	ErrDuplicateCard = errors.New("queue: card present more than once")
	ErrUnknownCard   = errors.New("queue: unknown card id")
	ErrInvalidWait   = errors.New("queue: cooling wait must be at least 1")
)

// Entry is a card parked in the cooling pool. Wait counts the turns left
// before it is appended back to the active queue.
type Entry struct {
	ID   string `json:"id"`
	Wait int    `json:"wait"`
}

// Queue is the active order (head first) plus the cooling pool. Together
// they hold every card id of a deck exactly once.
type Queue struct {
	Active  []string `json:"active"`
	Cooling []Entry  `json:"cooling,omitempty"`
}

// New builds a queue with ids in the given order and an empty pool.
func New(ids []string) Queue {
	return Queue{Active: slices.Clone(ids)}
}

func (q *Queue) Len() int        { return len(q.Active) }
func (q *Queue) CoolingLen() int { return len(q.Cooling) }

// Head returns the next card to present.
func (q *Queue) Head() (string, bool) {
	if len(q.Active) == 0 {
		return "", false
	}
	return q.Active[0], true
}

// Remove deletes the first occurrence of id from the active queue.
func (q *Queue) Remove(id string) bool {
	i := slices.Index(q.Active, id)
	if i < 0 {
		return false
	}
	q.Active = slices.Delete(q.Active, i, i+1)
	return true
}

// InsertAt places id at index, clamped to [0, Len()], and returns the index
// actually used.
func (q *Queue) InsertAt(id string, index int) int {
	index = max(0, min(index, len(q.Active)))
	q.Active = slices.Insert(q.Active, index, id)
	return index
}

// Cool parks id in the cooling pool for wait turns.
func (q *Queue) Cool(id string, wait int) error {
	if wait < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWait, wait)
	}
	q.Cooling = append(q.Cooling, Entry{ID: id, Wait: wait})
	return nil
}

// Tick advances the pool by one turn: every wait drops by one and the cards
// that reach zero are appended to the active tail, lowest wait first.
func (q *Queue) Tick() []string {
	for i := range q.Cooling {
		q.Cooling[i].Wait--
	}
	return q.wake()
}

// FastForward drains the pool when the active queue is empty by subtracting
// the smallest remaining wait from every entry.
func (q *Queue) FastForward() []string {
	if len(q.Active) > 0 || len(q.Cooling) == 0 {
		return nil
	}
	least := q.Cooling[0].Wait
	for _, e := range q.Cooling[1:] {
		least = min(least, e.Wait)
	}
	for i := range q.Cooling {
		q.Cooling[i].Wait -= least
	}
	return q.wake()
}

func (q *Queue) wake() []string {
	var ready, waiting []Entry
	for _, e := range q.Cooling {
		if e.Wait <= 0 {
			ready = append(ready, e)
		} else {
			waiting = append(waiting, e)
		}
	}
	if len(ready) == 0 {
		return nil
	}
	sort.SliceStable(ready, func(i, j int) bool { return ready[i].Wait < ready[j].Wait })

	woken := make([]string, len(ready))
	for i, e := range ready {
		woken[i] = e.ID
	}
	q.Active = append(q.Active, woken...)
	q.Cooling = waiting
	return woken
}

// Wait returns the remaining wait of a cooling card.
func (q *Queue) Wait(id string) (int, bool) {
	for _, e := range q.Cooling {
		if e.ID == id {
			return e.Wait, true
		}
	}
	return 0, false
}

// IDs returns the active ids followed by the cooling ids.
func (q *Queue) IDs() []string {
	ids := slices.Clone(q.Active)
	for _, e := range q.Cooling {
		ids = append(ids, e.ID)
	}
	return ids
}

func (q Queue) Clone() Queue {
	return Queue{Active: slices.Clone(q.Active), Cooling: slices.Clone(q.Cooling)}
}

// Validate checks that active and cooling together hold exactly the ids in
// deck, each once, and that every cooling wait is positive.
func (q *Queue) Validate(deck []string) error {
	want := make(map[string]bool, len(deck))
	for _, id := range deck {
		want[id] = false
	}
	seen := func(id string) error {
		done, ok := want[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCard, id)
		}
		if done {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, id)
		}
		want[id] = true
		return nil
	}
	for _, id := range q.Active {
		if err := seen(id); err != nil {
			return err
		}
	}
	for _, e := range q.Cooling {
		if err := seen(e.ID); err != nil {
			return err
		}
		if e.Wait < 1 {
			return fmt.Errorf("%w: %s has %d", ErrInvalidWait, e.ID, e.Wait)
		}
	}
	for id, done := range want {
		if !done {
			return fmt.Errorf("%w: %s", ErrMissingCard, id)
		}
	}
	return nil
}

// Repair restores the partition invariant after loading: unknown and
// duplicate ids are dropped, non-positive waits become 1 and missing ids
// are appended to the active tail in deck order.
func (q *Queue) Repair(deck []string) {
	known := make(map[string]bool, len(deck))
	for _, id := range deck {
		known[id] = true
	}
	placed := make(map[string]bool, len(deck))

	active := q.Active[:0:0]
	for _, id := range q.Active {
		if known[id] && !placed[id] {
			active = append(active, id)
			placed[id] = true
		}
	}
	var cooling []Entry
	for _, e := range q.Cooling {
		if known[e.ID] && !placed[e.ID] {
			cooling = append(cooling, Entry{ID: e.ID, Wait: max(1, e.Wait)})
			placed[e.ID] = true
		}
	}
	for _, id := range deck {
		if !placed[id] {
			active = append(active, id)
			placed[id] = true
		}
	}
	q.Active = active
	q.Cooling = cooling
}

// Promote moves ids to the head of the active queue in the given order,
// pulling them out of the cooling pool if needed.
func (q *Queue) Promote(ids []string) {
	if len(ids) == 0 {
		return
	}
	q.extract(ids)
	q.Active = append(slices.Clone(ids), q.Active...)
}

// Interleave spreads ids through the queue, one after every ratio other
// cards. A spread card takes the cooling status of the card before it, so
// one placed right after a cooling card cools for the same wait. Leftover
// ids go to the tail.
func (q *Queue) Interleave(ids []string, ratio int) {
	if len(ids) == 0 {
		return
	}
	ratio = max(1, ratio)
	q.extract(ids)

	type slot struct {
		id   string
		wait int
	}
	var others []slot
	for _, id := range q.Active {
		others = append(others, slot{id: id})
	}
	for _, e := range q.Cooling {
		others = append(others, slot{id: e.ID, wait: e.Wait})
	}

	var order []slot
	next := 0
	for i, s := range others {
		order = append(order, s)
		if (i+1)%ratio == 0 && next < len(ids) {
			order = append(order, slot{id: ids[next], wait: s.wait})
			next++
		}
	}
	for ; next < len(ids); next++ {
		wait := 0
		if len(order) > 0 {
			wait = order[len(order)-1].wait
		}
		order = append(order, slot{id: ids[next], wait: wait})
	}

	q.Active = q.Active[:0:0]
	q.Cooling = nil
	for _, s := range order {
		if s.wait > 0 {
			q.Cooling = append(q.Cooling, Entry{ID: s.id, Wait: s.wait})
		} else {
			q.Active = append(q.Active, s.id)
		}
	}
}

func (q *Queue) extract(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	q.Active = slices.DeleteFunc(q.Active, func(id string) bool { return drop[id] })
	q.Cooling = slices.DeleteFunc(q.Cooling, func(e Entry) bool { return drop[e.ID] })
}
