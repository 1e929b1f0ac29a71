package models

// Stream is a single entry of a stream lookup response. It links to a page
// rather than to playable media.
type Stream struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	ExternalURL string `json:"externalUrl"`
}

// StreamsResponse is the body of GET /stream/{type}/{id}.json.
type StreamsResponse struct {
	Streams []Stream `json:"streams"`
}
