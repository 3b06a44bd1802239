package remez

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// tieBreaker draws deterministic values in [0.4, 0.6) for the initial
// extremum-bracket split point, so that two solver runs with the same
// seed produce bit-identical output (the idempotence property). It wraps
// a blake2b extendable-output function keyed on the run's seed rather
// than math/rand's global source, which is not safe to read concurrently
// and deterministically across goroutines.
type tieBreaker struct {
	mu  sync.Mutex
	xof blake2b.XOF
}

func newTieBreaker(seed []byte) (*tieBreaker, error) {
	if seed == nil {
		seed = []byte("goremez-default-seed")
	}
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, seed)
	if err != nil {
		return nil, err
	}
	return &tieBreaker{xof: xof}, nil
}

// next returns a deterministic pseudo-random float64 in [0.4, 0.6).
// The solver draws every tie-break value serially from the driver
// goroutine, one per extremum bracket as it seeds and dispatches that
// bracket (workers never draw), so the mutex here only guards against
// accidental reuse rather than real contention.
func (t *tieBreaker) next() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var buf [8]byte
	if _, err := t.xof.Read(buf[:]); err != nil {
		panic(err)
	}
	u := binary.BigEndian.Uint64(buf[:])
	frac := float64(u>>11) / float64(1<<53) // top 53 bits, uniform in [0,1)
	return 0.4 + 0.2*frac
}
