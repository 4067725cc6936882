package domain

import "errors"

var (
	ErrInvalidKPIKind = errors.New("invalid kpi kind")
	ErrInvalidTarget  = errors.New("kpi target must be positive")
)

// KPIKind is the measurement mode of a habit.
type KPIKind string

const (
	// KindCheckbox marks a habit done or not done, nothing to measure.
	KindCheckbox KPIKind = "checkbox"
	// KindDuration tracks minutes against a target.
	KindDuration KPIKind = "duration"
	// KindCount tracks a repetition count against a target.
	KindCount KPIKind = "count"
)

// IsValid checks if the kind is one of the known KPI kinds.
func (k KPIKind) IsValid() bool {
	switch k {
	case KindCheckbox, KindDuration, KindCount:
		return true
	default:
		return false
	}
}

// KPI describes how a habit measures success. Value-based kinds always
// carry a positive target; a checkbox KPI never does, so an invalid
// combination cannot be constructed.
type KPI struct {
	kind   KPIKind
	target float64
}

// NewCheckboxKPI creates a simple done/not-done KPI.
func NewCheckboxKPI() KPI {
	return KPI{kind: KindCheckbox}
}

// NewDurationKPI creates a duration KPI with a target in minutes.
func NewDurationKPI(target float64) (KPI, error) {
	if target <= 0 {
		return KPI{}, ErrInvalidTarget
	}
	return KPI{kind: KindDuration, target: target}, nil
}

// NewCountKPI creates a count KPI with a target number of repetitions.
func NewCountKPI(target float64) (KPI, error) {
	if target <= 0 {
		return KPI{}, ErrInvalidTarget
	}
	return KPI{kind: KindCount, target: target}, nil
}

// NewKPI constructs a KPI from its kind and target. The target is
// ignored for checkbox KPIs.
func NewKPI(kind KPIKind, target float64) (KPI, error) {
	switch kind {
	case KindCheckbox:
		return NewCheckboxKPI(), nil
	case KindDuration:
		return NewDurationKPI(target)
	case KindCount:
		return NewCountKPI(target)
	default:
		return KPI{}, ErrInvalidKPIKind
	}
}

// Kind returns the measurement mode.
func (k KPI) Kind() KPIKind { return k.kind }

// Target returns the numeric target; 0 for checkbox KPIs.
func (k KPI) Target() float64 { return k.target }

// RequiresValue reports whether a completion must carry a measurement.
func (k KPI) RequiresValue() bool { return k.kind != KindCheckbox }

// MeetsTarget reports whether a measured value satisfies the target.
func (k KPI) MeetsTarget(value float64) bool {
	if k.kind == KindCheckbox {
		return true
	}
	return value >= k.target
}
