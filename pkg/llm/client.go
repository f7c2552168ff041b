package llm

type BeatInput struct {
	Name      string
	Outlets   []string
	Headlines []string
}

type BeatResult struct {
	Beats     []string
	Pitch     string
	ModelUsed string
}

type BeatClient interface {
	InferBeats(input BeatInput) (*BeatResult, error)
}
