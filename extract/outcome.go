package extract

// Outcome describes how a single face extraction ended.
type Outcome uint8

const (
	// The face was not attempted (its level failed before fan-out).
	OutcomeSkipped Outcome = iota

	// The face was cut and reported the expected dimensions.
	OutcomeExtracted

	// The face reported wrong dimensions and was re-encoded successfully.
	OutcomeCorrected

	// The face reported wrong dimensions and the re-encode pass failed.
	// The face still counts as extracted.
	OutcomeCorrectiveReencodeFailed

	// The image tool exited with a non-zero status while cutting.
	OutcomeCutFailed

	// The image tool could not be started.
	OutcomeInvocationFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeSkipped:                  "Skipped",
	OutcomeExtracted:                "Extracted",
	OutcomeCorrected:                "Corrected",
	OutcomeCorrectiveReencodeFailed: "CorrectiveReencodeFailed",
	OutcomeCutFailed:                "CutFailed",
	OutcomeInvocationFailed:         "InvocationFailed",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "Unknown"
}

// Ok reports whether the face file should be considered produced.
func (o Outcome) Ok() bool {
	switch o {
	case OutcomeExtracted, OutcomeCorrected, OutcomeCorrectiveReencodeFailed:
		return true
	}
	return false
}
