// Package recommend derives sleep-product suggestions from the answers
// collected by the intake funnel.  Suggest is a pure function: the same
// (sleep concerns, menstrual cycle text, lavender preference) triple always
// yields the same ordered list.
package recommend

import "strings"

// The two menstrual-cycle phrasings that classify a user as peri- or
// postmenopausal.  Classification is literal substring containment against
// the option text offered earlier in the dialogue, not semantic matching.
const (
	periUnder12 = "not regular for under 12 months (she is perimenopausal)"
	periOver12  = "not regular for over 12 months (she is still perimenopausal)"
)

// concernRule maps one sleep-concern key to its suggestion strings.  An empty
// string means no suggestion is appended for that branch (night sweats has no
// non-peri rows).  Fixed, when set, overrides every branch.
type concernRule struct {
	key string

	fixed string

	periLavender    string
	periPlain       string
	nonPeriLavender string
	nonPeriPlain    string
}

// rules lists the five concern keys in their fixed encounter order.  Output
// order follows this table, not the order of the user's selections.
var rules = []concernRule{
	{
		key:             "trouble getting to sleep",
		periLavender:    "Use Sleep Sound H20 if you are PeriMenopausal or Postmenopausal.",
		nonPeriLavender: "Use Sleep Aid if you are not peri or postmenopausal.",
		periPlain:       "Use Sleep Sound H20 Non Lavender if you are PeriMenopausal or Postmenopausal.",
		nonPeriPlain:    "Use Sleep Aid Non Lavender if you are not peri or postmenopausal.",
	},
	{
		key:             "waking up at night",
		periLavender:    "Use Sleep Sound H2O and Black Seed Supplement.",
		nonPeriLavender: "Use Sleep Aid and Black Seed.",
		periPlain:       "Use Sleep Sound H2O Non Lavender and Black Seed Supplement.",
		nonPeriPlain:    "Use Sleep Aid Non Lavender and Black Seed.",
	},
	{
		key:   "sleep like a baby",
		fixed: "No sleep products needed.",
	},
	{
		key:             "restless legs",
		periLavender:    "Use Sleep Sound H20 for Restless Legs.",
		nonPeriLavender: "Use Sleep Aid for Restless Legs.",
		periPlain:       "Use Sleep Sound H20 Non Lavender for Restless Legs.",
		nonPeriPlain:    "Use Sleep Aid Non Lavender for Restless Legs.",
	},
	{
		key:          "night sweats",
		periLavender: "Use Isoflavanes and Sleep Sound H20 for Night Sweats.",
		periPlain:    "Use Isoflavanes and Sleep Sound H20 Non Lavender for Night Sweats.",
	},
}

// Suggest evaluates the rule table over the selected sleep concerns.  The
// lavender preference selects the lavender rows only when it equals "yes";
// "no" and any unknown value share the non-lavender rows.
func Suggest(sleepConcerns []string, menstrualCycle string, lavender string) []string {
	isPeri := IsPeriOrPost(menstrualCycle)
	wantLavender := lavender == "yes"

	var suggestions []string
	for _, r := range rules {
		if !mentions(sleepConcerns, r.key) {
			continue
		}
		s := r.pick(isPeri, wantLavender)
		if s == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

// IsPeriOrPost classifies menstrual-cycle free text by containment of the two
// fixed perimenopausal phrasings.  Any other phrasing, including the literal
// postmenopausal option, classifies as false.
func IsPeriOrPost(menstrualCycle string) bool {
	text := strings.ToLower(menstrualCycle)
	return strings.Contains(text, periUnder12) || strings.Contains(text, periOver12)
}

// Display renders a suggestion list for the chat response.  The engine
// contract is the list itself; this join is presentation only.
func Display(suggestions []string) string {
	return "Based on your preferences, here are some suggestions: " + strings.Join(suggestions, "; ") + "."
}

func (r concernRule) pick(isPeri, wantLavender bool) string {
	if r.fixed != "" {
		return r.fixed
	}
	switch {
	case isPeri && wantLavender:
		return r.periLavender
	case isPeri:
		return r.periPlain
	case wantLavender:
		return r.nonPeriLavender
	default:
		return r.nonPeriPlain
	}
}

// mentions reports whether any selected concern contains the rule key.  The
// dialogue stores the full option sentences ("Do you have trouble getting to
// sleep"), so matching is containment rather than equality.
func mentions(selected []string, key string) bool {
	for _, s := range selected {
		if strings.Contains(strings.ToLower(strings.TrimSpace(s)), key) {
			return true
		}
	}
	return false
}
