package funnel

// responses.go holds every literal prompt, option list and canned reply used by
// the dialogue engine.  The option lists are part of the wire contract (the
// recommendation rules match against this exact text), so they must not be
// reworded.

const (
	AssistantOfferPrompt = "Are you looking for a menopause assistant? (Yes/No)"
	IssuesPrompt         = "What issues are you facing from the list below? Tick all that relate to you:"
	MainConcernsPrompt   = "What are your main concerns?"
	SleepQualityPrompt   = "How well do you sleep? Select one:"
	MenstrualCyclePrompt = "Describe your Menstrual Cycle:"
	AgeGroupPrompt       = "Please select your age group:"
	LavenderPrompt       = "Do you like the smell of Lavender? (Yes/No/Do not Know)"
	ConsultationFollowUp = "Would you like to book a Menopause Consultation? (Yes/No)"

	GoodbyeReply  = "Okay! If you need help in the future, feel free to ask."
	AckReply      = "Okay! If you need further assistance, feel free to ask."
	FarewellReply = "Goodbye!"
	FallbackReply = "I'm sorry, I didn't understand that. Can you please rephrase?"

	// ConsultationPath is returned as the redirect target when the user accepts
	// the consultation offer.
	ConsultationPath = "/consultation"
)

// greetingSynonyms is the fixed set of tokens recognized at the greeting stage.
var greetingSynonyms = map[string]struct{}{}

func init() {
	for _, g := range []string{
		"hello", "hi", "hey", "hiya", "howdy", "greetings", "helo", "helloo",
		"hellooo", "heloo", "helooo", "hii", "hiii", "heyy", "heyyy", "hay",
		"hayy", "hiyaa", "yo", "sup", "what's up", "whats up", "wassup",
		"wsup", "waddup", "holla", "holaa", "yo!", "hi there", "hey there",
		"hella",
	} {
		greetingSynonyms[g] = struct{}{}
	}
}

// IssueOptions is the 26-item checklist offered at the issues_selection stage.
var IssueOptions = []string{
	"Fatigue", "Hot Flushes", "Sleep", "Mood Swings", "Restless Legs", "Vaginal Dryness", "Anxiety",
	"Brain Fog", "Depression", "Dizzy Spells", "Panic Disorders", "Breast Pain", "Cramps", "Gut Health",
	"Electric Shocks", "Headaches", "Joint pain", "Tension", "Brittle Nails", "Hair Thinning", "Itchy Skin",
	"Tingling", "Allergies", "Burning Tongue", "Gum Issues", "Osteoporosis",
}

// MainConcernOptions is offered at the main_concerns stage; a selection
// containing "Sleep" routes the funnel through the sleep_concerns stage.
var MainConcernOptions = []string{
	"Sleep", "Joint Pain", "Brain Fog", "Hot Flushes", "Intimacy",
}

// SleepQualityOptions is offered at the sleep_concerns stage.  The
// recommendation rules match substrings of these sentences.
var SleepQualityOptions = []string{
	"Do you have trouble getting to sleep",
	"Do you find yourself waking up at Night",
	"Do you Sleep Like a baby",
	"Do you get Restless Legs",
	"Do you get night Sweats",
}

// MenstrualCycleOptions is offered at the menstrual_cycle stage.  The
// parenthetical hints are matched literally by the peri/post classifier.
var MenstrualCycleOptions = []string{
	"Regular like clock work (it is unlikely she is perimenopausal)",
	"Not Regular For under 12 months (she is perimenopausal)",
	"Not Regular For over 12 months (she is still perimenopausal)",
	"Cannot Remember",
	"Has not seen for over 12 months (postmenopausal)",
}

// AgeGroupOptions is offered at the age_group stage.
var AgeGroupOptions = []string{
	"Under 40", "40-49", "50-59", "60 and over",
}
