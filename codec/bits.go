package codec

import (
	"bytes"

	"github.com/icza/bitio"
)

// BitPacker packs unsigned values of 1-8 bits into a byte stream, MSB-first
// within each byte, mirroring the bytes.Buffer+bitio.Writer idiom the
// teacher uses to build metadata blocks in enc.go.
type BitPacker struct {
	buf *bytes.Buffer
	bw  *bitio.Writer
}

// NewBitPacker returns an empty packer.
func NewBitPacker() *BitPacker {
	buf := new(bytes.Buffer)
	return &BitPacker{buf: buf, bw: bitio.NewWriter(buf)}
}

// Push appends the low width bits of value, 1 <= width <= 8.
func (p *BitPacker) Push(value uint32, width uint8) {
	// writes into an in-memory bytes.Buffer, which never errors.
	_ = p.bw.WriteBits(uint64(value), width)
}

// Finish flushes any partial final byte (zero-padded low bits) and returns
// the packed buffer. The packer must not be reused afterwards.
func (p *BitPacker) Finish() []byte {
	_ = p.bw.Close()
	return p.buf.Bytes()
}

// BitUnpacker reverses BitPacker. It supports a constant per-symbol width or
// a pre-supplied sequence of widths (VBR per-slice residual widths).
type BitUnpacker struct {
	constWidth uint8
	varWidths  []uint8
	isVar      bool
	data       []byte
}

// NewBitUnpackerConstBits builds an unpacker that reads width bits per
// symbol until the fed bytes are exhausted.
func NewBitUnpackerConstBits(width uint8) *BitUnpacker {
	return &BitUnpacker{constWidth: width}
}

// NewBitUnpackerVarBits builds an unpacker that reads len(widths) symbols,
// the i-th at widths[i] bits.
func NewBitUnpackerVarBits(widths []uint8) *BitUnpacker {
	return &BitUnpacker{varWidths: widths, isVar: true}
}

// ProcessBytes feeds packed input. Safe to call once; the unpacker keeps a
// reference to data rather than copying it.
func (u *BitUnpacker) ProcessBytes(data []byte) {
	u.data = data
}

// Finish decodes and returns the symbols. In constant-width mode it decodes
// as many full-width symbols as the fed bytes hold; in variable-width mode
// it decodes exactly len(widths) symbols. Trailing zero padding is ignored.
func (u *BitUnpacker) Finish() []byte {
	br := bitio.NewReader(bytes.NewReader(u.data))

	if u.isVar {
		out := make([]byte, len(u.varWidths))
		for i, w := range u.varWidths {
			if w == 0 {
				continue
			}
			v, err := br.ReadBits(w)
			if err != nil {
				break
			}
			out[i] = byte(v)
		}
		return out
	}

	if u.constWidth == 0 {
		return nil
	}
	count := (len(u.data) * 8) / int(u.constWidth)
	out := make([]byte, 0, count)
	for i := 0; i < count; i++ {
		v, err := br.ReadBits(u.constWidth)
		if err != nil {
			break
		}
		out = append(out, byte(v))
	}
	return out
}
