package engine

import (
	"container/heap"
	"time"
)

type Source int

const (
	SourceClock Source = iota
	SourceChart
	SourceInput
)

func (s Source) String() string {
	switch s {
	case SourceClock:
		return "clock"
	case SourceChart:
		return "chart"
	case SourceInput:
		return "input"
	default:
		return "unknown"
	}
}

// priority orders sources due at the same instant: the clock moves notes
// first, then the chart spawns, then input is judged.
func (s Source) priority() int {
	switch s {
	case SourceClock:
		return 2
	case SourceChart:
		return 1
	default:
		return 0
	}
}

type scheduled struct {
	at     time.Duration
	source Source
	seq    uint64
	label  string
	apply  Transition
}

// queue is a min-heap by due time, then higher priority, then FIFO.
type queue []*scheduled

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	if pi, pj := q[i].source.priority(), q[j].source.priority(); pi != pj {
		return pi > pj
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*scheduled)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return x
}

func (q queue) peek() *scheduled {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

var _ heap.Interface = (*queue)(nil)
