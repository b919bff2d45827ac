package orchestrator

import (
	"context"
	"fmt"
	"testing"

	"github.com/Jawbreaker1/TwentyQBot/internal/game"
)

type moveStep struct {
	move Move
	err  error
}

type finalStep struct {
	guess string
	ok    bool
	err   error
}

type fakeQuestioner struct {
	moves      []moveStep
	finals     []finalStep
	questions  int
	finalCalls int
}

func (q *fakeQuestioner) NextQuestion(_ context.Context, _ *game.State) (Move, error) {
	q.questions++
	if len(q.moves) > 0 {
		step := q.moves[0]
		q.moves = q.moves[1:]
		return step.move, step.err
	}
	return Move{Kind: MoveQuestion, Text: "Is it alive?"}, nil
}

func (q *fakeQuestioner) FinalGuess(_ context.Context, _ *game.State) (string, bool, error) {
	q.finalCalls++
	if len(q.finals) > 0 {
		step := q.finals[0]
		q.finals = q.finals[1:]
		return step.guess, step.ok, step.err
	}
	return "", false, nil
}

type fakeAnswerer struct {
	answers  []error
	answer   game.Answer
	confirm  bool
	answered int
}

func (a *fakeAnswerer) Answer(_ context.Context, _ *game.State, _ string) (game.Answer, error) {
	a.answered++
	if len(a.answers) > 0 {
		err := a.answers[0]
		a.answers = a.answers[1:]
		if err != nil {
			return "", err
		}
	}
	if a.answer == "" {
		return game.No, nil
	}
	return a.answer, nil
}

func (a *fakeAnswerer) ConfirmGuess(_ context.Context, _ string) (bool, error) {
	return a.confirm, nil
}

type recordingReporter struct {
	NopReporter
	transients int
	forced     int
	guesses    []string
	resolved   int
}

func (r *recordingReporter) TransientFailure(string, error) { r.transients++ }
func (r *recordingReporter) ForcedGuess(*game.State)        { r.forced++ }
func (r *recordingReporter) GuessMade(guess string)         { r.guesses = append(r.guesses, guess) }
func (r *recordingReporter) Resolved(*game.State)           { r.resolved++ }

func checkResolved(t *testing.T, st *game.State, want game.Winner) {
	t.Helper()
	if !st.Finished {
		t.Fatalf("game not finished")
	}
	if st.Winner != want {
		t.Fatalf("winner = %q, want %q", st.Winner, want)
	}
	if len(st.History) != st.Asked {
		t.Fatalf("history/counter out of step: %d vs %d", len(st.History), st.Asked)
	}
	if st.Asked > st.MaxQuestions {
		t.Fatalf("asked %d exceeds budget %d", st.Asked, st.MaxQuestions)
	}
}

func TestWrongFinalGuessLosesAfterFullBudget(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{finals: []finalStep{{guess: "apple", ok: true}}}
	a := &fakeAnswerer{}
	rep := &recordingReporter{}
	g := &Game{Questioner: q, Answerer: a, Policy: FailClosedNo, Reporter: rep}

	st := game.NewState("banana")
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerAnswerer)
	if st.Asked != st.MaxQuestions-1 {
		t.Fatalf("asked = %d, want %d question turns before the forced guess", st.Asked, st.MaxQuestions-1)
	}
	if rep.forced != 1 {
		t.Fatalf("forced guess fired %d times", rep.forced)
	}
	if q.finalCalls != 1 {
		t.Fatalf("final guess generated %d times", q.finalCalls)
	}
}

func TestCorrectFinalGuessWins(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{finals: []finalStep{{guess: "Banana!", ok: true}}}
	g := &Game{Questioner: q, Answerer: &fakeAnswerer{}, Policy: FailClosedNo}

	st := game.NewState("banana")
	st.MaxQuestions = 3
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerQuestioner)
	if st.Asked != 2 {
		t.Fatalf("asked = %d, want 2", st.Asked)
	}
}

func TestFirstMoveDirectGuessResolvesImmediately(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{moves: []moveStep{{move: Move{Kind: MoveQuestion, Text: "Is it a cat?"}}}}
	rep := &recordingReporter{}
	g := &Game{Questioner: q, Answerer: &fakeAnswerer{}, ResolveDirectGuesses: true, Reporter: rep}

	st := game.NewState("cat")
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerQuestioner)
	if st.Asked != 0 {
		t.Fatalf("direct guess consumed budget: asked = %d", st.Asked)
	}
	if len(rep.guesses) != 1 || rep.guesses[0] != "cat" {
		t.Fatalf("unexpected guesses: %v", rep.guesses)
	}
}

func TestWrongDirectGuessLosesImmediately(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{moves: []moveStep{{move: Move{Kind: MoveQuestion, Text: "Is it a dog?"}}}}
	g := &Game{Questioner: q, Answerer: &fakeAnswerer{}, ResolveDirectGuesses: true}

	st := game.NewState("cat")
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerAnswerer)
	if st.Asked != 0 {
		t.Fatalf("asked = %d, want 0", st.Asked)
	}
}

func TestExplicitGuessCommandResolves(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{moves: []moveStep{{move: Move{Kind: MoveGuess, Text: "Eiffel Tower"}}}}
	g := &Game{Questioner: q, Answerer: &fakeAnswerer{}}

	st := game.NewState("Eiffel-Tower")
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerQuestioner)
}

func TestRuleBasedOverrideConsumesTurnForAutomatedQuestioner(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{
		moves:  []moveStep{{move: Move{Kind: MoveQuestion, Text: "Is it a dog?"}}},
		finals: []finalStep{{guess: "dog", ok: true}},
	}
	a := &fakeAnswerer{}
	g := &Game{Questioner: q, Answerer: a, Policy: FailClosedNo}

	st := game.NewState("cat")
	st.MaxQuestions = 2
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerAnswerer)
	if st.Asked != 1 {
		t.Fatalf("asked = %d, want 1", st.Asked)
	}
	if st.History[0].Answer != game.No {
		t.Fatalf("override answer = %q, want no", st.History[0].Answer)
	}
	if a.answered != 0 {
		t.Fatalf("answerer consulted despite rule-based override")
	}
}

func TestAnswerFailureRetriesSameTurn(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{
		moves: []moveStep{
			{move: Move{Kind: MoveQuestion, Text: "Is it alive?"}},
			{move: Move{Kind: MoveQuestion, Text: "Is it alive?"}},
			{move: Move{Kind: MoveQuestion, Text: "Is it alive?"}},
		},
		finals: []finalStep{{guess: "rock", ok: true}},
	}
	a := &fakeAnswerer{
		answers: []error{fmt.Errorf("transport down"), fmt.Errorf("transport down"), nil},
		answer:  game.Yes,
	}
	rep := &recordingReporter{}
	g := &Game{Questioner: q, Answerer: a, Policy: RetryTurn, Reporter: rep}

	st := game.NewState("cat")
	st.MaxQuestions = 2
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerAnswerer)
	if st.Asked != 1 {
		t.Fatalf("asked = %d, want exactly one recorded turn", st.Asked)
	}
	if st.History[0].Answer != game.Yes {
		t.Fatalf("recorded answer = %q, want yes", st.History[0].Answer)
	}
	if rep.transients != 2 {
		t.Fatalf("transient failures = %d, want 2", rep.transients)
	}
}

func TestAnswerFailureFailsClosedForAutomatedQuestioner(t *testing.T) {
	t.Parallel()

	a := &fakeAnswerer{answers: []error{fmt.Errorf("transport down")}}
	g := &Game{
		Questioner: &fakeQuestioner{finals: []finalStep{{guess: "dog", ok: true}}},
		Answerer:   a,
		Policy:     FailClosedNo,
	}

	st := game.NewState("cat")
	st.MaxQuestions = 2
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerAnswerer)
	if st.Asked != 1 || st.History[0].Answer != game.No {
		t.Fatalf("expected one fail-closed no turn, got %+v", st.History)
	}
}

func TestAnswerFailureAbortsMatchWhenFatal(t *testing.T) {
	t.Parallel()

	a := &fakeAnswerer{answers: []error{fmt.Errorf("input closed")}}
	g := &Game{Questioner: &fakeQuestioner{}, Answerer: a, Policy: FailMatch}

	st := game.NewState("cat")
	if err := g.Play(context.Background(), st); err == nil {
		t.Fatalf("expected fatal answer failure to abort the match")
	}
	if st.Finished {
		t.Fatalf("aborted match should not be resolved")
	}
}

func TestFinalGuessExhaustionIsDefaultLoss(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{finals: []finalStep{
		{err: fmt.Errorf("transport down")},
		{guess: "", ok: false},
		{guess: "", ok: false},
	}}
	rep := &recordingReporter{}
	g := &Game{Questioner: q, Answerer: &fakeAnswerer{}, Reporter: rep}

	st := game.NewState("cat")
	st.MaxQuestions = 1
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerAnswerer)
	if q.finalCalls != 3 {
		t.Fatalf("final guess attempts = %d, want 3", q.finalCalls)
	}
	if rep.transients != 1 {
		t.Fatalf("transient failures = %d, want 1", rep.transients)
	}
	if q.questions != 0 {
		t.Fatalf("question generated on the forced-guess turn")
	}
}

func TestPrivateSecretScoredByConfirmation(t *testing.T) {
	t.Parallel()

	q := &fakeQuestioner{finals: []finalStep{{guess: "unicorn", ok: true}}}
	a := &fakeAnswerer{confirm: true}
	g := &Game{Questioner: q, Answerer: a}

	st := game.NewState("")
	st.MaxQuestions = 1
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	checkResolved(t, st, game.WinnerQuestioner)
}

func TestPlayReportsResolutionOnce(t *testing.T) {
	t.Parallel()

	rep := &recordingReporter{}
	g := &Game{
		Questioner: &fakeQuestioner{finals: []finalStep{{guess: "cat", ok: true}}},
		Answerer:   &fakeAnswerer{},
		Reporter:   rep,
	}
	st := game.NewState("cat")
	st.MaxQuestions = 1
	if err := g.Play(context.Background(), st); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if rep.resolved != 1 {
		t.Fatalf("resolved fired %d times", rep.resolved)
	}
}
