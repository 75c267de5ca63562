// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/poly-millionaire/models"
)

// QuestionCount is the number of questions in one playthrough.
const QuestionCount = 12

// Ladder holds the payout for each question position, ascending.
var Ladder = [QuestionCount]int64{
	500, 1000, 2000, 5000, 10000,
	20000, 40000, 75000, 125000,
	250000, 500000, 1000000,
}

// MaxPayout is awarded for answering all twelve questions.
var MaxPayout = Ladder[QuestionCount-1]

// Guaranteed checkpoints, reached after questions 2 and 7.
const (
	LowCheckpoint  = 1
	HighCheckpoint = 6
)

// IsCheckpoint reports whether the ladder position is a guaranteed amount.
func IsCheckpoint(index int) bool {
	return index == LowCheckpoint || index == HighCheckpoint
}

// LossPayout is the safety-net amount kept when the game is lost while
// on question index.
func LossPayout(index int) int64 {
	switch {
	case index > HighCheckpoint:
		return Ladder[HighCheckpoint]
	case index > LowCheckpoint:
		return Ladder[LowCheckpoint]
	default:
		return 0
	}
}

// WalkAwayPayout is the amount banked when walking away on question
// index, i.e. the ladder value of the last fully answered question.
func WalkAwayPayout(index int) int64 {
	if index <= 0 {
		return 0
	}
	if index > QuestionCount {
		index = QuestionCount
	}
	return Ladder[index-1]
}

// Payout computes the final score for an outcome reached on question index.
func Payout(state State, index int) int64 {
	switch state {
	case Won:
		return MaxPayout
	case WalkedAway:
		return WalkAwayPayout(index)
	case Lost:
		return LossPayout(index)
	}
	return 0
}

// ValidPayout reports whether score is an amount some outcome can pay.
func ValidPayout(score int64) bool {
	if score == 0 {
		return true
	}
	for _, v := range Ladder {
		if v == score {
			return true
		}
	}
	return false
}

// ErrInconsistentHistory means an answer history no playthrough could produce.
var ErrInconsistentHistory = errors.New("answers continue after a missed question")

// HistoryPayout derives the payout from a finished game's answers. A miss
// can only be the last answer and pays the safety net; a full set of
// correct answers wins; fewer correct answers means the player walked away.
func HistoryPayout(answers []models.AnswerRecord) (int64, error) {
	if len(answers) > QuestionCount {
		return 0, fmt.Errorf("at most %d answers per game", QuestionCount)
	}
	for i, a := range answers {
		if a.IsCorrect {
			continue
		}
		if i != len(answers)-1 {
			return 0, ErrInconsistentHistory
		}
		return Payout(Lost, i), nil
	}
	if len(answers) == QuestionCount {
		return Payout(Won, QuestionCount-1), nil
	}
	return Payout(WalkedAway, len(answers)), nil
}
