package entity

// ResponseKind tells which shape an LLM provider answered with.
type ResponseKind int

const (
	ResponseUnrecognized ResponseKind = iota
	ResponseDirectText
	ResponsePartsList
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseDirectText:
		return "direct_text"
	case ResponsePartsList:
		return "parts_list"
	default:
		return "unrecognized"
	}
}

// LLMResponse is a provider response normalized at the client boundary.
// Text is set for ResponseDirectText, Parts for ResponsePartsList.
// A non-empty BlockReason means the provider refused to answer.
type LLMResponse struct {
	Kind        ResponseKind
	Text        string
	Parts       []string
	BlockReason string
}

// ExtractedText is the result of reading a PDF.
type ExtractedText struct {
	Text      string
	PageCount int
}
