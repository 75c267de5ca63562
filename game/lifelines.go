// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import "github.com/danielhkuo/poly-millionaire/models"

// Lifeline identifies a one-shot in-game aid.
type Lifeline string

const (
	FiftyFifty  Lifeline = "fifty"
	AskAudience Lifeline = "audience"
	PhoneFriend Lifeline = "phone"
)

// Lifelines lists every lifeline in display order.
var Lifelines = []Lifeline{FiftyFifty, AskAudience, PhoneFriend}

// Audience poll bounds for the correct option, inclusive.
const (
	audienceMin = 40
	audienceMax = 80
)

// AudiencePoll is the fabricated vote distribution. Percentages sum to 100.
type AudiencePoll struct {
	Correct string
	Votes   map[string]int
}

// PhoneHint is the friend's suggestion and stated confidence.
type PhoneHint struct {
	Suggested  string
	Confidence float64
}

// Available reports whether l can still be used this playthrough.
func (s *Session) Available(l Lifeline) bool {
	return !s.used[l]
}

func (s *Session) spend(l Lifeline) (models.Question, error) {
	if s.state != Playing {
		return models.Question{}, ErrNotPlaying
	}
	if s.used[l] {
		return models.Question{}, ErrLifelineUsed
	}
	s.used[l] = true
	return s.questions[s.index], nil
}

func wrongChoices(q models.Question) []string {
	wrongs := make([]string, 0, len(models.Choices)-1)
	for _, c := range models.Choices {
		if c != q.CorrectAnswer {
			wrongs = append(wrongs, c)
		}
	}
	return wrongs
}

// UseFiftyFifty hides two of the three wrong options on the current
// question and returns them in A..D order.
func (s *Session) UseFiftyFifty() ([]string, error) {
	q, err := s.spend(FiftyFifty)
	if err != nil {
		return nil, err
	}

	wrongs := wrongChoices(q)
	s.rng.Shuffle(len(wrongs), func(i, j int) { wrongs[i], wrongs[j] = wrongs[j], wrongs[i] })
	for _, c := range wrongs[:2] {
		s.hidden[c] = true
	}
	return s.Hidden(), nil
}

// UseAskAudience gives the correct option between 40% and 80% of the
// vote and spreads the remainder over the other options. It is
// informational only.
func (s *Session) UseAskAudience() (AudiencePoll, error) {
	q, err := s.spend(AskAudience)
	if err != nil {
		return AudiencePoll{}, err
	}

	correctShare := audienceMin + s.rng.IntN(audienceMax-audienceMin+1)
	poll := AudiencePoll{
		Correct: q.CorrectAnswer,
		Votes:   map[string]int{q.CorrectAnswer: correctShare},
	}

	wrongs := wrongChoices(q)
	weights := make([]int, len(wrongs))
	total := 0
	for i := range weights {
		weights[i] = s.rng.IntN(100) + 1
		total += weights[i]
	}

	remainder := 100 - correctShare
	given := 0
	for i, c := range wrongs {
		share := remainder * weights[i] / total
		if i == len(wrongs)-1 {
			share = remainder - given
		}
		poll.Votes[c] = share
		given += share
	}
	return poll, nil
}

// phoneConfidence is how likely the friend is right at a difficulty.
func phoneConfidence(difficulty int) float64 {
	switch {
	case difficulty <= 1:
		return 0.9
	case difficulty == 2:
		return 0.7
	default:
		return 0.4
	}
}

// UsePhoneFriend asks the simulated friend. The friend names the
// correct option with a probability that drops as difficulty rises, and
// otherwise names the first wrong option.
func (s *Session) UsePhoneFriend() (PhoneHint, error) {
	q, err := s.spend(PhoneFriend)
	if err != nil {
		return PhoneHint{}, err
	}

	confidence := phoneConfidence(q.Difficulty)
	hint := PhoneHint{Confidence: confidence, Suggested: q.CorrectAnswer}
	if s.rng.Float64() >= confidence {
		hint.Suggested = wrongChoices(q)[0]
	}
	return hint, nil
}
