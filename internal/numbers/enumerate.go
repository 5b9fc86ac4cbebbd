package numbers

import "iter"

// origin tags what a 3 in the mirrored numeral was before mirroring.
type origin uint8

const (
	wasTwo origin = iota
	unchangedThree
)

func (o origin) digit() byte {
	if o == wasTwo {
		return '2'
	}
	return '3'
}

// unmirror yields every way of undoing the 2 -> 3 replacement on s.
// Each 3 is independently a former 2 or an original 3.
func unmirror(s string) iter.Seq[string] {
	var threes []int
	for i := range len(s) {
		if s[i] == '3' {
			threes = append(threes, i)
		}
	}

	return func(yield func(string) bool) {
		b := []byte(s)

		var walk func(i int) bool
		walk = func(i int) bool {
			if i == len(threes) {
				return yield(string(b))
			}
			for _, o := range [...]origin{wasTwo, unchangedThree} {
				b[threes[i]] = o.digit()
				if !walk(i + 1) {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}

// assignments yields every ordered selection of k distinct values.
// The yielded slice is reused between iterations.
func assignments(values []byte, k int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if k > len(values) {
			return
		}

		used := make([]bool, len(values))
		cur := make([]byte, 0, k)

		var walk func() bool
		walk = func() bool {
			if len(cur) == k {
				return yield(cur)
			}
			for i, v := range values {
				if used[i] {
					continue
				}
				used[i] = true
				cur = append(cur, v)
				ok := walk()
				cur = cur[:len(cur)-1]
				used[i] = false
				if !ok {
					return false
				}
			}
			return true
		}
		walk()
	}
}
