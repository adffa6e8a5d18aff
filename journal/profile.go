package journal

// Profile is the on-device user profile injected into every model prompt.
// The six identity fields are required before the main screen is usable;
// the four secrets are optional, and a missing secret only disables the
// corresponding integration.
type Profile struct {
	Name             string `json:"name"`
	Age              string `json:"age"`
	Sex              string `json:"sex"`
	Work             string `json:"work"`
	Hobby            string `json:"hobby"`
	Language         string `json:"language"`
	NotionToken      string `json:"notion_token,omitempty"`
	NotionDatabaseID string `json:"notion_database_id,omitempty"`
	ChatGPTAPIKey    string `json:"chatgpt_api_key,omitempty"`
	GeminiAPIKey     string `json:"gemini_api_key,omitempty"`
}

// Languages the user can ask the model to write in.
var Languages = []string{"English", "Russian", "Ukrainian", "Hungarian", "Italian", "Spanish"}

// DefaultLanguage is used until the profile says otherwise.
const DefaultLanguage = "English"

// FieldOrUnknown substitutes "Unknown" for a blank profile field when it is
// embedded into a prompt.
func FieldOrUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
