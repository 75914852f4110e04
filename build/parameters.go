package build

import (
	"encoding/binary"
	"io"

	"github.com/kotodict/kotodict"
)

// Parameters accumulates the (left-id, right-id, cost) triple of every
// entry in ingestion order and writes its block section, three little-
// endian int16 per entry, ahead of the offset table. The order is assumed
// to correspond 1:1 with word ids when the connection matrix is consulted
// at analysis time.
type Parameters struct {
	data       []byte
	leftLimit  int
	rightLimit int
}

// NewParameters creates an empty accumulator with no limits.
func NewParameters() *Parameters {
	return &Parameters{}
}

// SetLimits configures the exclusive upper bounds for left and right
// connection ids, as published by the connection-cost matrix. Zero means
// unchecked.
func (p *Parameters) SetLimits(left, right int) {
	p.leftLimit = left
	p.rightLimit = right
}

// Append adds one triple, validating it against the configured limits.
// A left id of -1 is the not-indexed sentinel and always passes.
func (p *Parameters) Append(left, right, cost int16) error {
	if p.leftLimit > 0 && int(left) >= p.leftLimit {
		return &kotodict.ErrParameterOutOfRange{Kind: "left-id", Value: left, Limit: p.leftLimit}
	}
	if p.rightLimit > 0 && int(right) >= p.rightLimit {
		return &kotodict.ErrParameterOutOfRange{Kind: "right-id", Value: right, Limit: p.rightLimit}
	}
	p.data = binary.LittleEndian.AppendUint16(p.data, uint16(left))
	p.data = binary.LittleEndian.AppendUint16(p.data, uint16(right))
	p.data = binary.LittleEndian.AppendUint16(p.data, uint16(cost))
	return nil
}

// Count returns the number of accumulated triples.
func (p *Parameters) Count() int {
	return len(p.data) / 6
}

// WriteTo emits the section.
func (p *Parameters) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.data)
	return int64(n), err
}
