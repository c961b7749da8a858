package archive

import (
	"fmt"
	"sync"
)

// Sequencer accepts entries in any order and writes them to a Writer in
// index order, buffering those that arrive early.
type Sequencer struct {
	w *Writer

	mu      sync.Mutex
	next    int
	pending map[int]Entry
}

func NewSequencer(w *Writer) *Sequencer {
	return &Sequencer{w: w, pending: make(map[int]Entry)}
}

// Put hands over the entry for index and writes every entry that is now
// contiguous with the ones already written.
func (s *Sequencer) Put(index int, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < s.next {
		return fmt.Errorf("entry %d already written", index)
	}
	if _, ok := s.pending[index]; ok {
		return fmt.Errorf("entry %d already pending", index)
	}
	s.pending[index] = e
	for {
		ready, ok := s.pending[s.next]
		if !ok {
			return nil
		}
		delete(s.pending, s.next)
		if _, err := s.w.Add(ready); err != nil {
			return err
		}
		s.next++
	}
}

// Flush checks that exactly total entries were written, then closes the Writer.
func (s *Sequencer) Flush(total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next != total || len(s.pending) > 0 {
		return fmt.Errorf("archive incomplete: %d of %d entries written, %d pending", s.next, total, len(s.pending))
	}
	return s.w.Close()
}
