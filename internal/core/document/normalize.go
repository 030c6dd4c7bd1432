package document

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied to documents.
const (
	DefaultTitle   = "Untitled"
	DefaultDocType = "article"
)

// NormalizeKeyword converts comma delimiters to semicolons unless the value
// already uses semicolons, in which case it is returned unchanged.
func NormalizeKeyword(kw string) string {
	if strings.Contains(kw, ";") {
		return kw
	}
	return strings.ReplaceAll(kw, ",", ";")
}

// CitationKey is the synthesized BibTeX key for a document without one.
func CitationKey(docID int) string {
	return fmt.Sprintf("doc_%06d", docID)
}

// DateStamp encodes t as a YYYYMMDD integer.
func DateStamp(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// Millis returns t as fractional epoch milliseconds.
func Millis(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}

// NextID returns the id following the largest id seen anywhere.
func NextID(maxSeen int) int {
	if maxSeen < 0 {
		maxSeen = 0
	}
	return maxSeen + 1
}
