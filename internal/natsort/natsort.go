// Package natsort orders strings so that embedded unsigned integer runs
// compare by numeric value instead of bytewise. "v10" sorts after "v2".
package natsort

import "sort"

// Compare returns -1, 0 or 1 comparing a and b with numeric-aware ordering.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			na, ni := digitRun(a, i)
			nb, nj := digitRun(b, j)
			if c := compareRuns(na, nb); c != 0 {
				return c
			}
			i, j = ni, nj
			continue
		}
		if a[i] != b[j] {
			if a[i] < b[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts ss in place using numeric-aware ordering.
func Sort(ss []string) {
	sort.SliceStable(ss, func(i, j int) bool { return Less(ss[i], ss[j]) })
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digitRun returns the digit run starting at i and the index past its end.
func digitRun(s string, i int) (string, int) {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	return s[i:j], j
}

// compareRuns compares two digit runs by numeric value. Leading zeros are
// ignored, so "007" and "7" compare equal.
func compareRuns(a, b string) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
