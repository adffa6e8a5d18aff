package llm

import (
	"fmt"
	"time"

	"github.com/drsixthsense/lifelog-public/journal"
)

// The two providers get slightly different behavioral prompts; both embed
// the target language and the profile so the story reads like the user's
// own diary. Blank profile fields become "Unknown" rather than failing.

// BuildChatGPTSystemPrompt builds the system message for the
// chat-completions request. Pure: the same profile and language always
// produce the same string, the timestamp is injected per turn by the
// caller.
func BuildChatGPTSystemPrompt(p journal.Profile, language string) string {
	return "You are an application for creating a life log for a person. " +
		"Based on the photo and comment you must create a rich description of what person has experienced or was doing, " +
		"as if it is a diary page of the person. " +
		"Every response you should start with time stamp, in following format: Year-Month-day Hour:minute. " +
		"Based on this description the user should be able to understand what happened that moment. " +
		"Try to describe as narrator, from first person. Try to identify small details in the photo and embed into a story. " +
		"Respond strictly in " + language + " language. " +
		"User profile is: Name - " + journal.FieldOrUnknown(p.Name) + ", " +
		"sex - " + journal.FieldOrUnknown(p.Sex) + ", " +
		"age - " + journal.FieldOrUnknown(p.Age) + ", " +
		"work - " + journal.FieldOrUnknown(p.Work) + ", " +
		"hobby - " + journal.FieldOrUnknown(p.Hobby) + ". " +
		"Try to evaluate a mood of the person based on the description and photo. " +
		"Send in a JSON format, with 'date' (following format '2024-11-30T13:59:00.000Z'), 'text', " +
		"'mood' (from 1 to 5), 'tags' (try to pick appropriate tags, as array of strings), " +
		"'title' and create a short title for a diary record"
}

// BuildGeminiSystemPrompt builds the context prefix for the first turn of a
// Gemini conversation. Later turns carry only the per-turn message.
func BuildGeminiSystemPrompt(p journal.Profile, language string) string {
	return "You are an application for creating a life log. " +
		"Based on this description the user should be able to understand what happened that moment. " +
		"Try to describe as narrator, from first person. Try to identify small details in the photo and embed into a story. " +
		"Based on the image (if provided) and comment, create a rich diary entry. " +
		"Respond strictly in " + language + " language. " +
		"User profile: Name - " + journal.FieldOrUnknown(p.Name) + ", " +
		"sex - " + journal.FieldOrUnknown(p.Sex) + ", " +
		"age - " + journal.FieldOrUnknown(p.Age) + ", " +
		"work - " + journal.FieldOrUnknown(p.Work) + ", " +
		"hobby - " + journal.FieldOrUnknown(p.Hobby) + ". " +
		"Evaluate mood (1-5). Create a short title. Suggest tags (array of strings). " +
		"Return JSON: {'title': String, 'date': 'YYYY-MM-DDTHH:mm:ss.sssZ', 'text': String, 'mood': Int, 'tags': List<String>}."
}

// timeStamp renders the per-turn wall clock the way the prompts promise it.
func timeStamp(now time.Time) string {
	return now.Format("2006-01-02T15:04:05")
}

// chatGPTUserText is the textual half of the single ChatGPT user message.
func chatGPTUserText(now time.Time, comment string) string {
	return fmt.Sprintf("Current time: %s. What is in this image? Info from sender: %s", timeStamp(now), comment)
}

// geminiTurnText is the per-turn message for an ongoing Gemini conversation.
func geminiTurnText(now time.Time, comment string) string {
	return fmt.Sprintf("Current time: %s. User comment: %s", timeStamp(now), comment)
}
