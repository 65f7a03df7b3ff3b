package mdocx

import "fmt"

// WarningCode identifies the degradation that produced a warning.
type WarningCode string

const (
	WarnUnterminatedMarker   WarningCode = "unterminated-marker"
	WarnUnterminatedMath     WarningCode = "unterminated-math"
	WarnMalformedLink        WarningCode = "malformed-link"
	WarnUnsupportedMath      WarningCode = "unsupported-math"
	WarnUnresolvedFootnote   WarningCode = "unresolved-footnote"
	WarnUnreferencedFootnote WarningCode = "unreferenced-footnote"
	WarnDuplicateFootnote    WarningCode = "duplicate-footnote"
	WarnRaggedTable          WarningCode = "ragged-table"
	WarnHeadingClamped       WarningCode = "heading-clamped"
	WarnListDepthClamped     WarningCode = "list-depth-clamped"
	WarnUnclosedFence        WarningCode = "unclosed-fence"
)

// Warning is one recorded degradation. Warnings never abort a conversion;
// they are surfaced to the caller in the order they occurred.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Warnings is an ordered accumulator threaded by pointer through the parse
// and render stages. A nil *Warnings discards everything, which keeps
// helper call sites free of nil checks.
type Warnings struct {
	list []Warning
}

// Add records a warning.
func (w *Warnings) Add(code WarningCode, format string, args ...interface{}) {
	if w == nil {
		return
	}
	w.list = append(w.list, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Len returns the number of recorded warnings.
func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	return len(w.list)
}

// List returns the recorded warnings in order.
func (w *Warnings) List() []Warning {
	if w == nil {
		return nil
	}
	return w.list
}
