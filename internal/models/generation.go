package models

// GenerationConfig tunes a single call to the text-generation service.
type GenerationConfig struct {
	Temperature     float32
	MaxOutputTokens int32
}

// GenerationResult is the provider-neutral view of a generation response.
// Any level may be missing.
type GenerationResult struct {
	Candidates []Candidate
}

type Candidate struct {
	Content      *CandidateContent
	FinishReason string
}

type CandidateContent struct {
	Role  string
	Parts []CandidatePart
}

// CandidatePart carries text only when the upstream part was textual.
type CandidatePart struct {
	Text *string
}
