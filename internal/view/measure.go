package view

import "github.com/xycoord/python-editor-next/internal/logger"

// Measure is a read followed by a write. All reads of a cycle run before any
// write so that writes never observe a half-updated frame.
type Measure struct {
	// Key coalesces requests: a pending measure with the same key is replaced.
	Key   string
	Read  func(v *View)
	Write func(v *View)
}

// RequestMeasure schedules m for the next measure cycle.
func (v *View) RequestMeasure(m Measure) {
	if m.Key != "" {
		for i, pending := range v.measures {
			if pending.Key == m.Key {
				v.measures[i] = m
				return
			}
		}
	}
	v.measures = append(v.measures, m)
}

// MeasurePending reports whether a measure cycle is waiting to run.
func (v *View) MeasurePending() bool {
	return len(v.measures) > 0
}

// RunMeasures runs one measure cycle. Measures requested while the cycle is
// in flight wait for the next one; RunMeasures reports whether any did.
func (v *View) RunMeasures() bool {
	if v.measuring || len(v.measures) == 0 {
		return false
	}
	v.measuring = true
	batch := v.measures
	v.measures = nil

	v.resolver.Reset(v.editor.CursorOffset())
	for _, m := range batch {
		if m.Read != nil {
			m.Read(v)
		}
	}
	for _, m := range batch {
		if m.Write != nil {
			m.Write(v)
		}
	}
	v.measuring = false

	logger.DebugTagf("measure", "ran %d measure(s), %d requested during the cycle", len(batch), len(v.measures))
	return len(v.measures) > 0
}
