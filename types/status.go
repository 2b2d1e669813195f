package types

// Status represents the possible outcomes of a scenario or feature
// execution.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Combine folds another status into the receiver following the usual
// aggregation rules: any fail makes the aggregate fail, otherwise any
// pass makes it pass, otherwise it stays skip.
func (s Status) Combine(other Status) Status {
	switch {
	case s == StatusFail || other == StatusFail:
		return StatusFail
	case s == StatusPass || other == StatusPass:
		return StatusPass
	default:
		return StatusSkip
	}
}
