package services

import (
	"math"
	"sync/atomic"
)

const (
	// FirstAccountNumber is the first number issued by a new AccountService.
	FirstAccountNumber = 1000
	// FirstUserID is the first id issued by a new UserService.
	FirstUserID = 1
)

// sequence issues strictly increasing integers.
type sequence struct {
	next atomic.Int64
}

func newSequence(start int) *sequence {
	s := &sequence{}
	s.next.Store(int64(start))
	return s
}

// issue hands out the next number. The largest int64 is never issued, so the
// counter cannot wrap.
func (s *sequence) issue() (int, error) {
	for {
		cur := s.next.Load()
		if cur == math.MaxInt64 {
			return 0, ErrNumberOutOfRange
		}
		if s.next.CompareAndSwap(cur, cur+1) {
			return int(cur), nil
		}
	}
}

// reserve makes sure n is never issued later.
func (s *sequence) reserve(n int) error {
	if int64(n) == math.MaxInt64 {
		return ErrNumberOutOfRange
	}
	for {
		cur := s.next.Load()
		if int64(n) < cur {
			return nil
		}
		if s.next.CompareAndSwap(cur, int64(n)+1) {
			return nil
		}
	}
}
