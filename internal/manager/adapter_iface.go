package manager

import "context"

// InferenceAdapter abstracts the model-execution runtime used by the Manager.
// Concrete implementations (e.g., llama.cpp) should satisfy this interface.
type InferenceAdapter interface {
	// Available reports whether the runtime is linked into this build and usable.
	Available() bool
	// Start constructs a model handle from the asset at modelPath.
	Start(modelPath string, params InferParams) (InferSession, error)
}

// InferSession is a loaded model handle. Implementations are not required to be
// safe for concurrent use; the Manager serializes every call.
type InferSession interface {
	// Generate produces text for prompt. onToken, when non-nil, is invoked for each
	// token as it is produced.
	Generate(ctx context.Context, prompt string, onToken func(string) error) (FinalResult, error)
	// Close releases any resources associated with the session.
	Close() error
}

// InferParams captures generation parameters passed to the adapter.
type InferParams struct {
	Temperature float32
	MaxTokens   int
}

// FinalResult summarizes a generation.
type FinalResult struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage contains token accounting.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
