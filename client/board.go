package client

import (
	"sync"

	"github.com/noctura/backend/domain"
)

// BoardState holds the locally rendered copy of one board, bucketed by
// status column. The server stays the source of truth: optimistic edits
// mutate this state immediately and a later Reconcile replaces it wholesale
// with the canonical answer.
type BoardState struct {
	mu       sync.Mutex
	statuses []domain.Status
	buckets  map[domain.Status][]domain.Task
}

// NewBoardState creates an empty board over the given status vocabulary.
func NewBoardState(statuses []domain.Status) *BoardState {
	s := &BoardState{
		statuses: append([]domain.Status(nil), statuses...),
		buckets:  make(map[domain.Status][]domain.Task, len(statuses)),
	}
	for _, st := range s.statuses {
		s.buckets[st] = []domain.Task{}
	}
	return s
}

// Reconcile replaces local state entirely with the server snapshot. It is a
// wholesale overwrite, never a merge, so local state cannot diverge from
// server state after a successful round-trip. Tasks carrying a status
// outside the vocabulary land in the initial bucket.
func (s *BoardState) Reconcile(snapshot []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make(map[domain.Status][]domain.Task, len(s.statuses))
	for _, st := range s.statuses {
		fresh[st] = []domain.Task{}
	}
	for _, task := range snapshot {
		st := task.Status
		if _, ok := fresh[st]; !ok {
			st = s.statuses[0]
		}
		fresh[st] = append(fresh[st], task)
	}
	s.buckets = fresh
}

// SpeculativeMove relocates a task between buckets in local memory only,
// rewriting its status to the target column's value. Moving a task already
// in the target bucket is a no-op, which keeps repeated hover events
// idempotent. Returns false when the id is unknown or the target is not a
// legal column.
func (s *BoardState) SpeculativeMove(id string, target domain.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[target]; !ok {
		return false
	}

	for from, tasks := range s.buckets {
		for i, task := range tasks {
			if task.ID != id {
				continue
			}
			if from == target {
				return true
			}
			s.buckets[from] = append(tasks[:i:i], tasks[i+1:]...)
			task.Status = target
			s.buckets[target] = append(s.buckets[target], task)
			return true
		}
	}
	return false
}

// Remove drops a task from local memory. Used for optimistic deletes.
func (s *BoardState) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for st, tasks := range s.buckets {
		for i, task := range tasks {
			if task.ID == id {
				s.buckets[st] = append(tasks[:i:i], tasks[i+1:]...)
				return true
			}
		}
	}
	return false
}

// StatusOf reports the bucket currently holding the task.
func (s *BoardState) StatusOf(id string) (domain.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for st, tasks := range s.buckets {
		for _, task := range tasks {
			if task.ID == id {
				return st, true
			}
		}
	}
	return "", false
}

// Bucket returns a copy of one column.
func (s *BoardState) Bucket(status domain.Status) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task(nil), s.buckets[status]...)
}

// Tasks returns a flat copy of every task, column order first.
func (s *BoardState) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Task
	for _, st := range s.statuses {
		out = append(out, s.buckets[st]...)
	}
	return out
}

// Len reports the total task count across buckets.
func (s *BoardState) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, tasks := range s.buckets {
		n += len(tasks)
	}
	return n
}
