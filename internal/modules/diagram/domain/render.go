package domain

import "fmt"

// FailureMarker replaces a diagram that could not be rendered.
const FailureMarker = "error rendering diagram"

type RenderRequest struct {
	ID         string
	Pattern    string
	Definition string
}

// Artifact is what a renderer produced. Text is shown inline; Path, when
// set, points at a file that can be opened with the system viewer.
type Artifact struct {
	Text string
	Path string
}

type RenderStatus string

const (
	RenderNone    RenderStatus = ""
	RenderPending RenderStatus = "pending"
	RenderReady   RenderStatus = "ready"
	RenderFailed  RenderStatus = "failed"
)

// RenderID names one reveal. seq never repeats within a process, so ids
// stay unique across revisits of the same slot and across sessions.
func RenderID(index int, seq uint64) string {
	return fmt.Sprintf("diagram-%d-%d", index, seq)
}
