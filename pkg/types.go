package pkg

// Stage names a point in the fixed intake funnel.  It determines which input
// the engine expects next and which answer key is written.
type Stage string

const (
	StageGreeting           Stage = "greeting"
	StageAssistantOffer     Stage = "menopause_assistant_offer"
	StageIssuesSelection    Stage = "issues_selection"
	StageMainConcerns       Stage = "main_concerns"
	StageSleepConcerns      Stage = "sleep_concerns"
	StageMenstrualCycle     Stage = "menstrual_cycle"
	StageAgeGroup           Stage = "age_group"
	StageLavenderPreference Stage = "lavender_preference"
	StageConsultationOffer  Stage = "consultation_offer"
	StageGoodbye            Stage = "goodbye"
)

// Answers maps an answer key to either a single normalized string or a list of
// strings (multi-select questions).  Keys are append/overwrite only for the
// lifetime of a session.
type Answers map[string]interface{}

// String returns the value stored under key when it is a single string.
func (a Answers) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Strings returns the value stored under key when it is a list of strings.
func (a Answers) Strings(key string) []string {
	if v, ok := a[key].([]string); ok {
		return v
	}
	return nil
}

// Session holds the conversation state for one user.  Sessions are created
// lazily on first contact and live for the duration of the process.
type Session struct {
	UserID  int64   `json:"user_id"`
	Stage   Stage   `json:"stage"`
	Answers Answers `json:"answers"`
}

// ChatRequest is the inbound message contract for POST /chat.  Query is
// required; UserID is assigned by the allocator when absent.
type ChatRequest struct {
	Query  string `json:"query"`
	UserID *int64 `json:"user_id,omitempty"`
}

// ChatResponse is the outbound payload for one dialogue turn.  Only the fields
// relevant to the turn are populated; everything else is omitted.
type ChatResponse struct {
	Answer   string   `json:"answer,omitempty"`
	Options  []string `json:"options,omitempty"`
	UserID   int64    `json:"user_id,omitempty"`
	FollowUp string   `json:"follow_up,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}

// AskRequest is the inbound contract for the free-form question endpoint.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse carries the retrieval-augmented answer.
type AskResponse struct {
	Answer string `json:"answer"`
}
