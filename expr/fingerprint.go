package expr

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a content hash of the compiled program (its opcode
// sequence and constant pool, at their decimal string representation),
// for debug logging and for the idempotence check: two compiles of the
// same source text at the same precision must produce equal fingerprints.
func (p *Program) Fingerprint() [32]byte {
	h := blake3.New()

	var cbuf [4]byte
	for _, op := range p.Ops {
		_, _ = h.Write([]byte{byte(op.Kind), byte(op.Unary), byte(op.Binary)})
		binary.LittleEndian.PutUint32(cbuf[:], uint32(op.Const))
		_, _ = h.Write(cbuf[:])
	}
	for _, c := range p.Constants {
		_, _ = h.Write([]byte(c.String()))
	}

	var out [32]byte
	sum := h.Sum(nil)
	copy(out[:], sum)
	return out
}
