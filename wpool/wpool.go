// Package wpool implements the fixed-size worker pool the Remez engine
// uses to refine zero and extremum brackets in parallel. Workers
// communicate with the driver purely through integer job tags posted on
// two blocking, unbounded FIFO queues: questions in, answers out.
//
// Tag space: tag < 0 is a shutdown sentinel; tag in [0, 1000) names a zero
// bracket by its index in the solver's zero list; tag in [1000, 2000)
// names an extremum bracket via tag-1000. The pool itself is agnostic to
// what a tag means and does not check for duplicate tags: a given tag is
// handled by one worker at a time only because the caller posts it again
// only after consuming its answer, which lets the caller serialize all
// mutation of a single bracket's state inside handle without additional
// locking.
package wpool

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

const shutdownSentinel = -1

// DefaultSize returns the detected logical core count, used whenever a
// caller asks for an unconfigured pool size.
func DefaultSize() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return 1
}

// queue is a blocking, unbounded FIFO of ints.
type queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []int
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(v int) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.cond.Signal()
	q.mu.Unlock()
}

func (q *queue) pop() int {
	q.mu.Lock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	v := q.items[0]
	q.items = q.items[1:]
	q.mu.Unlock()
	return v
}

// Pool is a fixed set of worker goroutines draining a shared questions
// queue and posting to a shared answers queue.
type Pool struct {
	size      int
	questions *queue
	answers   *queue
	wg        sync.WaitGroup
}

// New starts size workers (0 means DefaultSize()), each looping:
// pop a tag, stop on a negative sentinel, otherwise call handle(tag) and
// post its result to the answers queue. handle must be safe to call
// concurrently for distinct tags.
func New(size int, handle func(tag int) int) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	p := &Pool{
		size:      size,
		questions: newQueue(),
		answers:   newQueue(),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				tag := p.questions.pop()
				if tag < 0 {
					p.answers.push(tag)
					return
				}
				p.answers.push(handle(tag))
			}
		}()
	}
	return p
}

// Size returns the number of worker goroutines.
func (p *Pool) Size() int { return p.size }

// Push posts a single tag to the questions queue without waiting for its
// answer. Callers that need to interleave pushes and pops directly — for
// example to re-push a bracket that hasn't yet converged — use Push and
// PopAnswer instead of RunPhase's all-at-once discipline.
func (p *Pool) Push(tag int) { p.questions.push(tag) }

// PopAnswer blocks until one answer is available and returns it.
func (p *Pool) PopAnswer() int { return p.answers.pop() }

// RunPhase posts every tag in tags and blocks until exactly len(tags)
// answers have come back, returning them in completion order. Per the
// solver's phase discipline, the caller must not mutate any state the
// handler closure reads or writes until RunPhase returns.
func (p *Pool) RunPhase(tags []int) []int {
	for _, t := range tags {
		p.questions.push(t)
	}
	out := make([]int, len(tags))
	for i := range tags {
		out[i] = p.answers.pop()
	}
	return out
}

// Shutdown posts one negative sentinel per worker and waits for every
// worker goroutine to exit.
func (p *Pool) Shutdown() {
	for i := 0; i < p.size; i++ {
		p.questions.push(shutdownSentinel)
	}
	for i := 0; i < p.size; i++ {
		p.answers.pop()
	}
	p.wg.Wait()
}
