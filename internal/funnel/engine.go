package funnel

import (
	"context"
	"strings"

	"menoassist-chatbot/internal/recommend"
	"menoassist-chatbot/pkg"
)

// Saver is the persistence collaborator invoked when a user accepts the
// consultation offer.  Failures are surfaced to the caller as-is; session
// state mutated earlier in the same turn is not rolled back.
type Saver interface {
	SaveRecord(ctx context.Context, userID int64, stage string, answers pkg.Answers) error
}

// Engine walks a session through the intake funnel.  Each stage is handled by
// an entry in the transition table; Handle is the single dispatch point.
type Engine struct {
	saver Saver
}

// NewEngine constructs an Engine with the given persistence collaborator.
func NewEngine(saver Saver) *Engine {
	return &Engine{saver: saver}
}

// handlerFunc processes one turn for a single stage.  It may mutate the
// session's answers and stage, and returns the response payload for the turn.
type handlerFunc func(e *Engine, ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error)

// transitions is the stage transition table.  It is populated once at process
// start and read-only thereafter.  A stage absent from the table (goodbye, or
// a corrupted value) falls through to the generic fallback response.
var transitions = map[pkg.Stage]handlerFunc{
	pkg.StageGreeting:           (*Engine).handleGreeting,
	pkg.StageAssistantOffer:     (*Engine).handleAssistantOffer,
	pkg.StageIssuesSelection:    (*Engine).handleIssuesSelection,
	pkg.StageMainConcerns:       (*Engine).handleMainConcerns,
	pkg.StageSleepConcerns:      (*Engine).handleSleepConcerns,
	pkg.StageMenstrualCycle:     (*Engine).handleMenstrualCycle,
	pkg.StageAgeGroup:           (*Engine).handleAgeGroup,
	pkg.StageLavenderPreference: (*Engine).handleLavenderPreference,
	pkg.StageConsultationOffer:  (*Engine).handleConsultationOffer,
}

// Handle normalizes the raw input, applies the quit short-circuit and then
// dispatches on the session's current stage.
func (e *Engine) Handle(ctx context.Context, sess *pkg.Session, raw string) (pkg.ChatResponse, error) {
	input := Normalize(raw)
	if IsQuit(input) {
		return pkg.ChatResponse{Answer: FarewellReply}, nil
	}
	h, ok := transitions[sess.Stage]
	if !ok {
		return pkg.ChatResponse{Answer: FallbackReply}, nil
	}
	return h(e, ctx, sess, input)
}

func (e *Engine) handleGreeting(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	if _, ok := greetingSynonyms[input]; !ok {
		return pkg.ChatResponse{Answer: FallbackReply}, nil
	}
	sess.Stage = pkg.StageAssistantOffer
	return pkg.ChatResponse{Answer: AssistantOfferPrompt, UserID: sess.UserID}, nil
}

func (e *Engine) handleAssistantOffer(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	sess.Answers["looking_for_assistant"] = input
	if input != "yes" {
		sess.Stage = pkg.StageGoodbye
		return pkg.ChatResponse{Answer: GoodbyeReply}, nil
	}
	sess.Stage = pkg.StageIssuesSelection
	return pkg.ChatResponse{Answer: IssuesPrompt, Options: IssueOptions, UserID: sess.UserID}, nil
}

func (e *Engine) handleIssuesSelection(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	sess.Answers["issues"] = SplitMulti(input)
	sess.Stage = pkg.StageMainConcerns
	return pkg.ChatResponse{Answer: MainConcernsPrompt, Options: MainConcernOptions, UserID: sess.UserID}, nil
}

func (e *Engine) handleMainConcerns(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	concerns := SplitMulti(input)
	sess.Answers["main_concerns"] = concerns
	if containsFold(concerns, "sleep") {
		sess.Stage = pkg.StageSleepConcerns
		return pkg.ChatResponse{Answer: SleepQualityPrompt, Options: SleepQualityOptions, UserID: sess.UserID}, nil
	}
	// No sleep concern selected: skip the sleep_concerns stage entirely.
	sess.Stage = pkg.StageMenstrualCycle
	return pkg.ChatResponse{Answer: MenstrualCyclePrompt, Options: MenstrualCycleOptions, UserID: sess.UserID}, nil
}

func (e *Engine) handleSleepConcerns(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	sess.Answers["sleep_concerns"] = SplitMulti(input)
	sess.Stage = pkg.StageMenstrualCycle
	return pkg.ChatResponse{Answer: MenstrualCyclePrompt, Options: MenstrualCycleOptions, UserID: sess.UserID}, nil
}

func (e *Engine) handleMenstrualCycle(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	sess.Answers["menstrual_cycle"] = input
	sess.Stage = pkg.StageAgeGroup
	return pkg.ChatResponse{Answer: AgeGroupPrompt, Options: AgeGroupOptions, UserID: sess.UserID}, nil
}

func (e *Engine) handleAgeGroup(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	sess.Answers["age_group"] = input
	sess.Stage = pkg.StageLavenderPreference
	return pkg.ChatResponse{Answer: LavenderPrompt}, nil
}

func (e *Engine) handleLavenderPreference(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	sess.Answers["lavender_preference"] = input
	suggestions := recommend.Suggest(
		sess.Answers.Strings("sleep_concerns"),
		sess.Answers.String("menstrual_cycle"),
		input,
	)
	sess.Answers["product_suggestions"] = suggestions
	sess.Stage = pkg.StageConsultationOffer
	return pkg.ChatResponse{
		Answer:   recommend.Display(suggestions),
		FollowUp: ConsultationFollowUp,
	}, nil
}

func (e *Engine) handleConsultationOffer(ctx context.Context, sess *pkg.Session, input string) (pkg.ChatResponse, error) {
	sess.Answers["consultation_offer"] = input
	if input != "yes" {
		// No further stage is assigned: a resend reaches this handler again
		// and produces the same acknowledgement.
		return pkg.ChatResponse{Answer: AckReply}, nil
	}
	if err := e.saver.SaveRecord(ctx, sess.UserID, "completed", sess.Answers); err != nil {
		return pkg.ChatResponse{}, err
	}
	return pkg.ChatResponse{Redirect: ConsultationPath}, nil
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.ToLower(v) == want {
			return true
		}
	}
	return false
}
