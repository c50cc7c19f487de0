package types

// FavoriteSourceLinkedIn is the source recorded for favorites saved from job discovery.
const FavoriteSourceLinkedIn = "linkedin"

// FavoritePayload is the request body used to save a job as a favorite.
// Optional fields are sent as null when the job did not carry them.
type FavoritePayload struct {
	Title     string  `json:"title"`
	URN       *string `json:"urn"`
	Company   *string `json:"company"`
	Location  *string `json:"location"`
	ApplyLink *string `json:"apply_link"`
	Source    string  `json:"source"`
}

// Favorite is a favorite as stored by the backend.
type Favorite struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title"`
	URN       string `json:"urn,omitempty"`
	Company   string `json:"company,omitempty"`
	Location  string `json:"location,omitempty"`
	ApplyLink string `json:"apply_link,omitempty"`
	Source    string `json:"source,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// FavoriteRecord is the outcome of saving a favorite and reading the list back.
type FavoriteRecord struct {
	Saved Favorite   `json:"saved"`
	All   []Favorite `json:"all"`
}

// ChatExchange is one question put to the career advisor and its answer.
type ChatExchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
