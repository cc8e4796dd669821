package fanout

// Document is one element of the fan-out input list.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// BranchResult is what each parallel branch stores for its document.
type BranchResult struct {
	Index     int `json:"index"`
	WordCount int `json:"wordCount"`
}

// FanoutRequest starts a fan-out over a list of documents.
type FanoutRequest struct {
	Key       string     `json:"key"`
	Documents []Document `json:"documents"`
}
