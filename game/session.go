// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/danielhkuo/poly-millionaire/models"
)

// DefaultTimeLimit is the countdown for each question.
const DefaultTimeLimit = 10 * time.Minute

// State is a playthrough's position in its lifecycle.
type State int

const (
	Loading State = iota
	Playing
	Won
	Lost
	WalkedAway
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case WalkedAway:
		return "walkaway"
	case Failed:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Won || s == Lost || s == WalkedAway || s == Failed
}

var (
	ErrNotPlaying         = errors.New("game is not in progress")
	ErrNotLoading         = errors.New("game already loaded")
	ErrNotFinished        = errors.New("game has not finished")
	ErrWrongQuestionCount = errors.New("a game needs exactly 12 questions")
	ErrInvalidChoice      = errors.New("choice must be one of A, B, C, D")
	ErrChoiceHidden       = errors.New("choice was removed by fifty-fifty")
	ErrLifelineUsed       = errors.New("lifeline already used")
)

// Random is the randomness a session draws on. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Float64() float64                   { return rand.Float64() }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type Options struct {
	// TimeLimit per question; DefaultTimeLimit when zero.
	TimeLimit time.Duration
	// Rand drives lifelines; the global source when nil.
	Rand Random
	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// AnswerResult describes the outcome of one Answer call.
type AnswerResult struct {
	Correct       bool
	TimedOut      bool
	CorrectAnswer string
	State         State
}

// Session is one playthrough: the question set, the current position,
// the countdown, the lifelines, and the append-only answer history.
// A Session is not safe for concurrent use.
type Session struct {
	subject   string
	state     State
	questions []models.Question
	index     int
	history   []models.AnswerRecord
	hidden    map[string]bool
	used      map[Lifeline]bool
	deadline  time.Time
	timeLimit time.Duration
	rng       Random
	now       func() time.Time
}

// NewSession starts a playthrough for the subject in the Loading state.
func NewSession(subjectSlug string, opts Options) *Session {
	s := &Session{
		subject:   subjectSlug,
		state:     Loading,
		hidden:    map[string]bool{},
		used:      map[Lifeline]bool{},
		timeLimit: opts.TimeLimit,
		rng:       opts.Rand,
		now:       opts.Now,
	}
	if s.timeLimit <= 0 {
		s.timeLimit = DefaultTimeLimit
	}
	if s.rng == nil {
		s.rng = globalRand{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Load supplies the fetched questions. Anything other than exactly
// QuestionCount questions moves the session to Failed.
func (s *Session) Load(questions []models.Question) error {
	if s.state != Loading {
		return ErrNotLoading
	}
	if len(questions) != QuestionCount {
		s.state = Failed
		return fmt.Errorf("%w: got %d", ErrWrongQuestionCount, len(questions))
	}
	s.questions = append([]models.Question(nil), questions...)
	s.state = Playing
	s.deadline = s.now().Add(s.timeLimit)
	return nil
}

// Fail moves a loading session to Failed, e.g. when fetching questions errored.
func (s *Session) Fail() {
	if s.state == Loading {
		s.state = Failed
	}
}

func (s *Session) Subject() string { return s.subject }
func (s *Session) State() State    { return s.state }

// Index is the 0-based position of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question being played.
func (s *Session) Current() (models.Question, error) {
	if s.state != Playing {
		return models.Question{}, ErrNotPlaying
	}
	return s.questions[s.index], nil
}

// History returns a copy of the answers recorded so far.
func (s *Session) History() []models.AnswerRecord {
	return append([]models.AnswerRecord(nil), s.history...)
}

// Hidden lists the choices removed by fifty-fifty on this question, in A..D order.
func (s *Session) Hidden() []string {
	var out []string
	for _, c := range models.Choices {
		if s.hidden[c] {
			out = append(out, c)
		}
	}
	return out
}

// Remaining is the time left on the current question's countdown.
func (s *Session) Remaining() time.Duration {
	if s.state != Playing {
		return 0
	}
	left := s.deadline.Sub(s.now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the countdown ran out while playing.
func (s *Session) Expired() bool {
	return s.state == Playing && !s.now().Before(s.deadline)
}

// Timeout ends the game as lost. The current question is recorded
// with no selection.
func (s *Session) Timeout() error {
	if s.state != Playing {
		return ErrNotPlaying
	}
	s.history = append(s.history, models.AnswerRecord{
		QuestionID: s.questions[s.index].ID,
		IsCorrect:  false,
	})
	s.state = Lost
	return nil
}

// Answer submits a choice for the current question. An answer arriving
// after the countdown expired counts as a timeout.
func (s *Session) Answer(choice string) (AnswerResult, error) {
	if s.state != Playing {
		return AnswerResult{State: s.state}, ErrNotPlaying
	}
	if !models.ValidChoice(choice) {
		return AnswerResult{State: s.state}, ErrInvalidChoice
	}
	if s.hidden[choice] {
		return AnswerResult{State: s.state}, ErrChoiceHidden
	}

	q := s.questions[s.index]
	if s.Expired() {
		s.Timeout()
		return AnswerResult{TimedOut: true, CorrectAnswer: q.CorrectAnswer, State: s.state}, nil
	}

	correct := choice == q.CorrectAnswer
	s.history = append(s.history, models.AnswerRecord{
		QuestionID:     q.ID,
		SelectedAnswer: choice,
		IsCorrect:      correct,
	})

	switch {
	case !correct:
		s.state = Lost
	case s.index == QuestionCount-1:
		s.state = Won
	default:
		s.index++
		s.hidden = map[string]bool{}
		s.deadline = s.now().Add(s.timeLimit)
	}

	return AnswerResult{Correct: correct, CorrectAnswer: q.CorrectAnswer, State: s.state}, nil
}

// WalkAway ends the game voluntarily, banking the last answered rung.
// Confirming the intent is up to the caller.
func (s *Session) WalkAway() error {
	if s.state != Playing {
		return ErrNotPlaying
	}
	s.state = WalkedAway
	return nil
}

// Score is the payout for the session's outcome; 0 until it has ended.
func (s *Session) Score() int64 {
	if !s.state.Terminal() {
		return 0
	}
	return Payout(s.state, s.index)
}

// Submission hands over the finished game for persistence. Failed
// sessions never reached play and have nothing to submit.
func (s *Session) Submission() (models.SubmitGameRequest, error) {
	if !s.state.Terminal() || s.state == Failed {
		return models.SubmitGameRequest{}, ErrNotFinished
	}
	return models.SubmitGameRequest{
		SubjectSlug: s.subject,
		Score:       s.Score(),
		Answers:     s.History(),
	}, nil
}
