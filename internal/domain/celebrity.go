package domain

// CelebrityRider is a pre-authored reference rider used as a comparison
// target for similarity scoring. The parsed rider is static data, not the
// output of the text parser.
type CelebrityRider struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Handle            string   `json:"handle"`
	Description       string   `json:"description"`
	Vibe              string   `json:"vibe"`
	ParsedRider       Rider    `json:"parsedRider"`
	SuggestedProducts []string `json:"suggestedProducts"`
	Avatar            string   `json:"avatar,omitempty"`
	Disclaimer        string   `json:"disclaimer"`
}
