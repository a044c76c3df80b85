// SPDX-License-Identifier: EPL-2.0

package timeline

// SumTwo adds two variable-length signals. The overlapping prefix of both
// operands is summed elementwise and the uncontested suffix of the longer
// operand is appended unchanged.
//
// The zero-length signal is the identity element, and the per-sample result
// is commutative and associative, so folding any number of signals gives the
// same content regardless of order.
func SumTwo(a, b [NumChannels][]float64) [NumChannels][]float64 {
	var out [NumChannels][]float64
	for ch := range out {
		short, long := a[ch], b[ch]
		if len(short) > len(long) {
			short, long = long, short
		}
		sum := make([]float64, len(long))
		copy(sum, long)
		for i, v := range short {
			sum[i] += v
		}
		out[ch] = sum
	}
	return out
}
