package azureopenai

// Chat model deployment names commonly available on Azure OpenAI.
const (
	ModelGPT35Turbo    = "gpt-35-turbo"
	ModelGPT35Turbo16K = "gpt-35-turbo-16k"
	ModelGPT4          = "gpt-4"
	ModelGPT4Turbo     = "gpt-4-turbo"
	ModelGPT4o         = "gpt-4o"
	ModelGPT4oMini     = "gpt-4o-mini"
)

// Embedding model deployment names.
const (
	EmbeddingModelAda002 = "text-embedding-ada-002"
	EmbeddingModel3Small = "text-embedding-3-small"
	EmbeddingModel3Large = "text-embedding-3-large"
)

// Wire types for the chat completions and embeddings endpoints. The same
// shapes serve full responses (message populated) and streamed chunks
// (delta populated).

type chatMessage struct {
	Role         string        `json:"role,omitempty"`
	Content      string        `json:"content"`
	Name         string        `json:"name,omitempty"`
	FunctionCall *functionCall `json:"function_call,omitempty"`
}

type functionCall struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

type function struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// functionCallRef forces the model to call a specific function.
type functionCallRef struct {
	Name string `json:"name"`
}

type chatCompletionRequest struct {
	// Model is required by the OpenAI service and ignored by Azure, where
	// the deployment in the URL selects the model.
	Model            string           `json:"model,omitempty"`
	Messages         []chatMessage    `json:"messages"`
	Temperature      *float64         `json:"temperature,omitempty"`
	TopP             *float64         `json:"top_p,omitempty"`
	MaxTokens        *int             `json:"max_tokens,omitempty"`
	Stop             []string         `json:"stop,omitempty"`
	PresencePenalty  *float64         `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64         `json:"frequency_penalty,omitempty"`
	Stream           bool             `json:"stream,omitempty"`
	Functions        []function       `json:"functions,omitempty"`
	FunctionCall     *functionCallRef `json:"function_call,omitempty"`
}

type chatChoice struct {
	Index        int          `json:"index"`
	Message      *chatMessage `json:"message,omitempty"`
	Delta        *chatMessage `json:"delta,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Choices []chatChoice `json:"choices"`
	Usage   *usage       `json:"usage,omitempty"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type embeddingRequest struct {
	Model string   `json:"model,omitempty"`
	Input []string `json:"input"`
}

type embeddingData struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Usage *usage          `json:"usage,omitempty"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
