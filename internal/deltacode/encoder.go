package deltacode

// Encode produces the byte stream the recorder writes for deltas. Values
// outside the literal range are split into a run of escape nibbles followed
// by a literal residual. An odd trailing nibble is padded with the MinValue
// escape, which Decode drops.
func Encode(deltas []int) []byte {
	var nibbles []byte
	for _, v := range deltas {
		if v > 0 {
			for v >= MaxValue {
				nibbles = append(nibbles, nibble(MaxValue))
				v -= MaxValue
			}
		} else {
			for v <= MinValue {
				nibbles = append(nibbles, nibble(MinValue))
				v -= MinValue
			}
		}
		nibbles = append(nibbles, nibble(v))
	}
	if len(nibbles)%2 != 0 {
		nibbles = append(nibbles, nibble(MinValue))
	}

	out := make([]byte, len(nibbles)/2)
	for i := range out {
		out[i] = nibbles[2*i] | nibbles[2*i+1]<<4
	}
	return out
}

func nibble(v int) byte {
	return byte(v-MinValue) & 0x0f
}
