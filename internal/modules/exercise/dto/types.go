package dto

type IngestInput struct {
	Paths []string
}

type IngestOutput struct {
	Count  int
	IDs    []string
	Errors []string
	// Ready reports whether a practice session can start.
	Ready bool
}

type ExerciseOutput struct {
	ID       string
	Problem  string
	Solution string
}

type CatalogOutput struct {
	Exercises []ExerciseOutput
}
