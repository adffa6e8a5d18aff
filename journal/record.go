package journal

// Record is the structured diary entry parsed out of a provider reply.
// It is handed straight to the Notion publisher and never stored locally.
type Record struct {
	Title string   `json:"title"`
	Date  string   `json:"date"` // ISO-8601 string, passed through verbatim
	Text  string   `json:"text"`
	Mood  int      `json:"mood"` // 1..5
	Tags  []string `json:"tags"`
}
