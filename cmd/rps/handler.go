package main

import (
	"fmt"
	"sync/atomic"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
)

// Matcher counts engine callbacks and signals once all expected events are processed.
type Matcher struct {
	*matching.Statistics

	expected  uint64
	processed atomic.Uint64
	done      chan struct{}
}

var _ matching.Handler = &Matcher{}

func NewMatcher(expected uint64) *Matcher {
	return &Matcher{
		Statistics: matching.NewStatistics(),
		expected:   expected,
		done:       make(chan struct{}),
	}
}

func (m *Matcher) OnEvent(event matching.Event) {
	m.Statistics.OnEvent(event)
	if m.processed.Add(1) == m.expected {
		close(m.done)
	}
}

// Done is closed after the expected amount of events is processed.
func (m *Matcher) Done() <-chan struct{} {
	return m.done
}

func (m *Matcher) PrintStatistics() {
	s := m.Snapshot()
	fmt.Printf("MATCHING ENGINE HANDLER:\n")
	fmt.Printf("New limits %18d\n", s.NewLimits)
	fmt.Printf("Cancels %21d\n", s.Cancels)
	fmt.Printf("Modifies %20d\n", s.Modifies)
	fmt.Printf("Ignored %21d\n", s.Ignored)
	fmt.Printf("Trades %22d\n", s.Trades)
	fmt.Printf("Traded volume %15d\n", s.Volume)
	fmt.Printf("Notional %20s\n", s.Notional)
	fmt.Printf("Total calls %17d\n", s.Events()+s.Trades)
}
