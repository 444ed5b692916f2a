package ml

import (
	"sort"
)

// LabelEncoder maps categorical string values to integer codes. Codes
// are assigned over the sorted distinct classes seen at fit time, so
// fitting the same data always yields the same mapping. Values unseen
// at fit time map to a reserved unknown bucket instead of failing.
type LabelEncoder struct {
	Classes []string

	index map[string]int
}

func FitLabelEncoder(values []string) *LabelEncoder {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	classes := make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)

	e := &LabelEncoder{Classes: classes}
	e.ensureIndex()
	return e
}

// Transform returns the code for v. Unseen values get the unknown
// bucket: len(Classes).
func (e *LabelEncoder) Transform(v string) int {
	e.ensureIndex()
	if code, ok := e.index[v]; ok {
		return code
	}
	return len(e.Classes)
}

// UnknownCode is the reserved bucket for values unseen at fit time.
func (e *LabelEncoder) UnknownCode() int {
	return len(e.Classes)
}

// ensureIndex rebuilds the lookup map; needed after gob decoding,
// which only restores exported fields.
func (e *LabelEncoder) ensureIndex() {
	if e.index != nil {
		return
	}
	e.index = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		e.index[c] = i
	}
}
