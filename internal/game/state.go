package game

import "fmt"

type Answer string

const (
	Yes Answer = "yes"
	No  Answer = "no"
)

type Winner string

const (
	WinnerNone       Winner = ""
	WinnerQuestioner Winner = "questioner"
	WinnerAnswerer   Winner = "answerer"
)

const DefaultMaxQuestions = 20

type QA struct {
	Question string
	Answer   Answer
}

// State is the single mutable record threading through one game. The
// orchestrator owns it exclusively; every other component only reads it
// when building prompts.
type State struct {
	// Secret is the answerer's object. Empty means a human holder kept it
	// private; scoring then happens via confirmation.
	Secret       string
	MaxQuestions int
	Asked        int
	History      []QA
	Winner       Winner
	Finished     bool
}

func NewState(secret string) *State {
	return &State{Secret: secret, MaxQuestions: DefaultMaxQuestions}
}

func (s *State) Remaining() int {
	return s.MaxQuestions - s.Asked
}

// RecordTurn appends one question/answer pair. History and the asked
// counter move together, so len(History) == Asked holds between turns.
func (s *State) RecordTurn(question string, answer Answer) error {
	if s.Finished {
		return fmt.Errorf("game already finished")
	}
	if s.Asked >= s.MaxQuestions {
		return fmt.Errorf("question budget exhausted (%d/%d)", s.Asked, s.MaxQuestions)
	}
	if answer != Yes && answer != No {
		return fmt.Errorf("invalid answer %q", answer)
	}
	s.History = append(s.History, QA{Question: question, Answer: answer})
	s.Asked++
	return nil
}

// Resolve assigns the winner and finishes the game in one step. A finished
// state never changes again.
func (s *State) Resolve(winner Winner) {
	if s.Finished {
		return
	}
	s.Winner = winner
	s.Finished = true
}
