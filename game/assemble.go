// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/danielhkuo/poly-millionaire/models"
)

// PerTier is how many questions each difficulty tier contributes.
const PerTier = 3

// ShortfallError reports a tier without enough questions to build a game.
type ShortfallError struct {
	Tier int
	Have int
	Need int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("Not enough questions for difficulty %d (Only %d/%d)", e.Tier, e.Have, e.Need)
}

// TierSource returns every question of one difficulty tier.
type TierSource func(tier int) ([]models.Question, error)

// Shuffler permutes n elements using swap.
type Shuffler func(n int, swap func(i, j int))

// Assemble builds a game's question set: for each tier in ascending
// order it shuffles the tier's pool and keeps the first PerTier.
// If any tier falls short, no questions are returned.
func Assemble(source TierSource, shuffle Shuffler) ([]models.Question, error) {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	selected := make([]models.Question, 0, QuestionCount)
	for tier := models.MinDifficulty; tier <= models.MaxDifficulty; tier++ {
		pool, err := source(tier)
		if err != nil {
			return nil, err
		}
		if len(pool) < PerTier {
			return nil, &ShortfallError{Tier: tier, Have: len(pool), Need: PerTier}
		}

		shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		selected = append(selected, pool[:PerTier]...)
	}
	return selected, nil
}
