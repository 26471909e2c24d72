package util

import (
	"fmt"
	"strings"
)

const (
	highlightStart = "\033[1m\033[31m"
	highlightEnd   = "\033[0m"
)

// DumpByteSlice dump a byte slice in hex and optionally ASCII format, like xxd.
// Row positions can be shown in hex, decimal or both.
// If showOnlyBytes is nil, all rows are shown. Otherwise, even for an empty slice, only rows
// containing one of the given positions are shown, with those bytes highlighted.
func DumpByteSlice(b []byte, bytesPerRow int, showASCII, showPosHex, showPosDec bool, showOnlyBytes []int) string {
	if bytesPerRow <= 0 {
		bytesPerRow = 16
	}
	highlight := make(map[int]bool, len(showOnlyBytes))
	for _, v := range showOnlyBytes {
		highlight[v] = true
	}

	var out strings.Builder
	for first := 0; first < len(b); first += bytesPerRow {
		last := first + bytesPerRow
		if showOnlyBytes != nil && !rowContains(highlight, first, last) {
			continue
		}
		if showPosHex {
			fmt.Fprintf(&out, "%08x ", first)
		}
		if showPosDec {
			fmt.Fprintf(&out, "%4d ", first)
		}
		out.WriteString(": ")
		ascii := make([]byte, 0, bytesPerRow)
		for j := first; j < last; j++ {
			// extra space every 8 bytes
			if j%8 == 0 {
				out.WriteByte(' ')
			}
			if j >= len(b) {
				out.WriteString("   ")
				ascii = append(ascii, ' ')
				continue
			}
			if highlight[j] {
				fmt.Fprintf(&out, "%s %02x%s", highlightStart, b[j], highlightEnd)
			} else {
				fmt.Fprintf(&out, " %02x", b[j])
			}
			ascii = append(ascii, printable(b[j]))
		}
		if showASCII {
			out.WriteString("  ")
			out.Write(ascii)
		}
		out.WriteByte('\n')
	}
	return out.String()
}

func rowContains(positions map[int]bool, first, last int) bool {
	for j := first; j < last; j++ {
		if positions[j] {
			return true
		}
	}
	return false
}

func printable(c byte) byte {
	if c < 32 || c > 126 {
		return '.'
	}
	return c
}

type diff struct {
	Offset int
	ByteA  byte
	ByteB  byte
}

// compareByteSlices compares two byte slices position by position. A position past the end of
// the shorter slice compares as 0.
func compareByteSlices(a, b []byte) []diff {
	size := len(a)
	if len(b) > size {
		size = len(b)
	}
	var diffs []diff
	for i := 0; i < size; i++ {
		var ba, bb byte
		if i < len(a) {
			ba = a[i]
		}
		if i < len(b) {
			bb = b[i]
		}
		if i >= len(a) || i >= len(b) || ba != bb {
			diffs = append(diffs, diff{Offset: i, ByteA: ba, ByteB: bb})
		}
	}
	return diffs
}

// DumpByteSlicesWithDiffs show the rows of two byte slices that differ, with the differing
// bytes highlighted. different is false, and out empty, if the slices are identical.
func DumpByteSlicesWithDiffs(a, b []byte, bytesPerRow int, showASCII, showPosHex, showPosDec bool) (different bool, out string) {
	diffs := compareByteSlices(a, b)
	if len(diffs) == 0 {
		return false, ""
	}
	positions := make([]int, len(diffs))
	for i, d := range diffs {
		positions[i] = d.Offset
	}
	out = DumpByteSlice(a, bytesPerRow, showASCII, showPosHex, showPosDec, positions)
	out += "\n"
	out += DumpByteSlice(b, bytesPerRow, showASCII, showPosHex, showPosDec, positions)
	return true, out
}
