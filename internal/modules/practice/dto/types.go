package dto

// SessionView is a snapshot of the practice session for rendering.
type SessionView struct {
	SessionID  string
	Phase      string
	ExerciseID string
	Position   int
	Total      int
	Problem    string
	Solution   string
	// Elapsed is the live MM:SS reading; RevealTime is the value captured
	// when the solution was shown.
	Elapsed    string
	RevealTime string
	Running    bool
	Generation uint64
}

type TransitionOutput struct {
	Applied bool
	View    SessionView
}
