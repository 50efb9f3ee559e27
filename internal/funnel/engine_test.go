package funnel_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"menoassist-chatbot/internal/funnel"
	"menoassist-chatbot/pkg"
)

type fakeSaver struct {
	calls   int
	userID  int64
	stage   string
	answers pkg.Answers
	err     error
}

func (f *fakeSaver) SaveRecord(ctx context.Context, userID int64, stage string, answers pkg.Answers) error {
	f.calls++
	f.userID = userID
	f.stage = stage
	f.answers = answers
	return f.err
}

func newSession(t *testing.T) *pkg.Session {
	t.Helper()
	return &pkg.Session{UserID: 1000, Stage: pkg.StageGreeting, Answers: pkg.Answers{}}
}

func handle(t *testing.T, e *funnel.Engine, sess *pkg.Session, input string) pkg.ChatResponse {
	t.Helper()
	resp, err := e.Handle(context.Background(), sess, input)
	if err != nil {
		t.Fatalf("Handle(%q): %v", input, err)
	}
	return resp
}

func TestFullWalkThroughSleepBranch(t *testing.T) {
	saver := &fakeSaver{}
	e := funnel.NewEngine(saver)
	sess := newSession(t)

	resp := handle(t, e, sess, "Hello")
	if resp.Answer != funnel.AssistantOfferPrompt || resp.UserID != 1000 {
		t.Fatalf("greeting reply = %+v", resp)
	}
	if sess.Stage != pkg.StageAssistantOffer {
		t.Fatalf("stage = %s, want %s", sess.Stage, pkg.StageAssistantOffer)
	}

	resp = handle(t, e, sess, "yes")
	if len(resp.Options) != 26 {
		t.Fatalf("issues checklist has %d options, want 26", len(resp.Options))
	}
	if sess.Answers.String("looking_for_assistant") != "yes" {
		t.Fatalf("looking_for_assistant = %q", sess.Answers.String("looking_for_assistant"))
	}

	resp = handle(t, e, sess, "Fatigue, Sleep")
	if !reflect.DeepEqual(resp.Options, funnel.MainConcernOptions) {
		t.Fatalf("main concerns options = %v", resp.Options)
	}
	if !reflect.DeepEqual(sess.Answers.Strings("issues"), []string{"fatigue", "sleep"}) {
		t.Fatalf("issues = %v", sess.Answers.Strings("issues"))
	}

	resp = handle(t, e, sess, "Sleep, Joint Pain")
	if sess.Stage != pkg.StageSleepConcerns {
		t.Fatalf("stage = %s, want %s", sess.Stage, pkg.StageSleepConcerns)
	}
	if !reflect.DeepEqual(resp.Options, funnel.SleepQualityOptions) {
		t.Fatalf("sleep options = %v", resp.Options)
	}

	resp = handle(t, e, sess, "Do you have trouble getting to sleep")
	if sess.Stage != pkg.StageMenstrualCycle {
		t.Fatalf("stage = %s, want %s", sess.Stage, pkg.StageMenstrualCycle)
	}
	if !reflect.DeepEqual(resp.Options, funnel.MenstrualCycleOptions) {
		t.Fatalf("cycle options = %v", resp.Options)
	}

	resp = handle(t, e, sess, "Not Regular For under 12 months (she is perimenopausal)")
	if !reflect.DeepEqual(resp.Options, funnel.AgeGroupOptions) {
		t.Fatalf("age options = %v", resp.Options)
	}

	resp = handle(t, e, sess, "40-49")
	if resp.Answer != funnel.LavenderPrompt || resp.Options != nil {
		t.Fatalf("lavender prompt reply = %+v", resp)
	}

	resp = handle(t, e, sess, "Yes")
	want := "Based on your preferences, here are some suggestions: " +
		"Use Sleep Sound H20 if you are PeriMenopausal or Postmenopausal."
	if resp.Answer != want+"." {
		t.Fatalf("suggestion answer = %q", resp.Answer)
	}
	if resp.FollowUp != funnel.ConsultationFollowUp {
		t.Fatalf("follow_up = %q", resp.FollowUp)
	}
	if sess.Stage != pkg.StageConsultationOffer {
		t.Fatalf("stage = %s, want %s", sess.Stage, pkg.StageConsultationOffer)
	}
	suggestions := sess.Answers.Strings("product_suggestions")
	if len(suggestions) != 1 || suggestions[0] != "Use Sleep Sound H20 if you are PeriMenopausal or Postmenopausal." {
		t.Fatalf("product_suggestions = %v", suggestions)
	}

	resp = handle(t, e, sess, "yes")
	if resp.Redirect != funnel.ConsultationPath {
		t.Fatalf("redirect = %q", resp.Redirect)
	}
	if saver.calls != 1 || saver.stage != "completed" || saver.userID != 1000 {
		t.Fatalf("saver = %+v", saver)
	}
	if saver.answers.String("consultation_offer") != "yes" {
		t.Fatalf("saved answers missing consultation_offer: %v", saver.answers)
	}
}

// A main-concerns selection without "sleep" must jump straight to the
// menstrual-cycle stage, never visiting sleep_concerns.
func TestBranchSkipWithoutSleep(t *testing.T) {
	e := funnel.NewEngine(&fakeSaver{})
	sess := newSession(t)
	handle(t, e, sess, "hi")
	handle(t, e, sess, "yes")
	handle(t, e, sess, "Joint pain")

	resp := handle(t, e, sess, "Joint Pain, Intimacy")
	if sess.Stage != pkg.StageMenstrualCycle {
		t.Fatalf("stage = %s, want %s", sess.Stage, pkg.StageMenstrualCycle)
	}
	if !reflect.DeepEqual(resp.Options, funnel.MenstrualCycleOptions) {
		t.Fatalf("options = %v, want menstrual cycle list", resp.Options)
	}
	if sess.Answers.Strings("sleep_concerns") != nil {
		t.Fatalf("sleep_concerns should be absent, got %v", sess.Answers.Strings("sleep_concerns"))
	}
}

// No sleep concerns recorded: the recommendation list is empty but the reply
// still renders and the funnel still reaches the consultation offer.
func TestSkippedSleepYieldsNoSuggestions(t *testing.T) {
	e := funnel.NewEngine(&fakeSaver{})
	sess := newSession(t)
	handle(t, e, sess, "hi")
	handle(t, e, sess, "yes")
	handle(t, e, sess, "Joint pain")
	handle(t, e, sess, "Joint Pain")
	handle(t, e, sess, "Cannot Remember")
	handle(t, e, sess, "Under 40")

	resp := handle(t, e, sess, "no")
	if resp.Answer != "Based on your preferences, here are some suggestions: ." {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if got := sess.Answers.Strings("product_suggestions"); len(got) != 0 {
		t.Fatalf("product_suggestions = %v, want empty", got)
	}
}

func TestQuitShortCircuit(t *testing.T) {
	e := funnel.NewEngine(&fakeSaver{})
	sess := newSession(t)
	handle(t, e, sess, "hello")
	handle(t, e, sess, "yes")
	wantStage := sess.Stage
	wantAnswers := len(sess.Answers)

	for _, input := range []string{"quit", "Q", "EXIT", "  exit  "} {
		resp := handle(t, e, sess, input)
		if resp.Answer != funnel.FarewellReply {
			t.Fatalf("quit reply for %q = %+v", input, resp)
		}
		if sess.Stage != wantStage || len(sess.Answers) != wantAnswers {
			t.Fatalf("quit mutated session: stage=%s answers=%d", sess.Stage, len(sess.Answers))
		}
	}
}

func TestGreetingFallback(t *testing.T) {
	e := funnel.NewEngine(&fakeSaver{})
	sess := newSession(t)
	resp := handle(t, e, sess, "book me a consultation")
	if resp.Answer != funnel.FallbackReply {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if sess.Stage != pkg.StageGreeting || len(sess.Answers) != 0 {
		t.Fatalf("fallback mutated session: %+v", sess)
	}
}

func TestCorruptedStageFallsBack(t *testing.T) {
	e := funnel.NewEngine(&fakeSaver{})
	sess := newSession(t)
	sess.Stage = pkg.Stage("definitely_not_a_stage")
	resp := handle(t, e, sess, "hello")
	if resp.Answer != funnel.FallbackReply {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if sess.Stage != pkg.Stage("definitely_not_a_stage") {
		t.Fatalf("stage changed to %s", sess.Stage)
	}
}

func TestAssistantOfferDeclined(t *testing.T) {
	e := funnel.NewEngine(&fakeSaver{})
	sess := newSession(t)
	handle(t, e, sess, "hello")
	resp := handle(t, e, sess, "no")
	if resp.Answer != funnel.GoodbyeReply {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if sess.Stage != pkg.StageGoodbye {
		t.Fatalf("stage = %s, want %s", sess.Stage, pkg.StageGoodbye)
	}
	// goodbye is terminal: further input only gets the fallback.
	resp = handle(t, e, sess, "hello")
	if resp.Answer != funnel.FallbackReply {
		t.Fatalf("post-goodbye answer = %q", resp.Answer)
	}
}

// Declining the consultation leaves the stage in place, so a resend produces
// the identical acknowledgement.
func TestConsultationDeclineIsIdempotent(t *testing.T) {
	saver := &fakeSaver{}
	e := funnel.NewEngine(saver)
	sess := newSession(t)
	sess.Stage = pkg.StageConsultationOffer

	for i := 0; i < 3; i++ {
		resp := handle(t, e, sess, "no thanks")
		if resp.Answer != funnel.AckReply {
			t.Fatalf("answer = %q", resp.Answer)
		}
		if sess.Stage != pkg.StageConsultationOffer {
			t.Fatalf("stage = %s", sess.Stage)
		}
	}
	if saver.calls != 0 {
		t.Fatalf("saver called %d times on decline", saver.calls)
	}
}

func TestConsultationSaveErrorSurfaces(t *testing.T) {
	saver := &fakeSaver{err: errors.New("db down")}
	e := funnel.NewEngine(saver)
	sess := newSession(t)
	sess.Stage = pkg.StageConsultationOffer

	_, err := e.Handle(context.Background(), sess, "yes")
	if err == nil || err.Error() != "db down" {
		t.Fatalf("err = %v, want db down", err)
	}
	// The answer written this turn is not rolled back.
	if sess.Answers.String("consultation_offer") != "yes" {
		t.Fatalf("consultation_offer = %q", sess.Answers.String("consultation_offer"))
	}
}
