package deltacode

// Decoder is an online decoder. Bytes can be written in any number of chunks;
// the resulting delta sequence does not depend on how the input was split.
// The zero value is ready to use.
type Decoder struct {
	carry   int
	pending bool
	start   int // nibble offset of the open escape run
	offset  int // nibbles consumed so far
	deltas  []int
}

// Write decodes p and appends the resulting deltas. It always consumes all of
// p and never returns an error, so it can be used as an io.Writer.
func (d *Decoder) Write(p []byte) (int, error) {
	for _, b := range p {
		d.push(int(b&0x0f) + MinValue)
		d.push(int((b>>4)&0x0f) + MinValue)
	}
	return len(p), nil
}

func (d *Decoder) push(v int) {
	if IsEscape(v) {
		if !d.pending {
			d.pending = true
			d.start = d.offset
		}
		d.carry += v
	} else {
		d.deltas = append(d.deltas, d.carry+v)
		d.carry = 0
		d.pending = false
	}
	d.offset++
}

// Deltas returns the deltas decoded so far.
func (d *Decoder) Deltas() []int {
	return d.deltas
}

// Pending reports the carry of an escape run that has not been closed yet.
func (d *Decoder) Pending() (carry int, ok bool) {
	return d.carry, d.pending
}

// Close ends the stream. It returns a *CarryError if an escape run is still
// open; the deltas decoded so far are unaffected.
func (d *Decoder) Close() error {
	if !d.pending {
		return nil
	}
	return &CarryError{Carry: d.carry, Offset: d.start}
}

// Reset clears the decoder state so it can be reused.
func (d *Decoder) Reset() {
	*d = Decoder{}
}
