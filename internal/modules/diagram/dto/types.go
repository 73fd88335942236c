package dto

type RenderRequest struct {
	ID         string
	Pattern    string
	Definition string
}

type DrillView struct {
	Phase        string
	Position     int
	Total        int
	Pattern      string
	RenderID     string
	RenderStatus string
	Diagram      string
	ArtifactPath string
}

type TransitionOutput struct {
	Applied bool
	View    DrillView
}

type RevealOutput struct {
	Applied bool
	Request RenderRequest
	View    DrillView
}

type PatternOutput struct {
	Name       string
	Definition string
}

type PatternPreview struct {
	Name       string
	Definition string
	Diagram    string
}
