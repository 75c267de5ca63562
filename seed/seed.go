// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/poly-millionaire/auth"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

// DemoName selects the embedded fixtures instead of a file.
const DemoName = "demo"

//go:embed demo.yaml
var demoYAML []byte

type Fixtures struct {
	Users    []User    `yaml:"users"`
	Subjects []Subject `yaml:"subjects"`
}

type User struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

type Subject struct {
	Name      string     `yaml:"name"`
	Slug      string     `yaml:"slug"`
	Questions []Question `yaml:"questions"`
}

type Question struct {
	Content    string         `yaml:"content"`
	Answers    models.Answers `yaml:"answers"`
	Correct    string         `yaml:"correct"`
	Difficulty int            `yaml:"difficulty"`
}

// Result counts what Apply wrote.
type Result struct {
	UsersCreated int
	Subjects     int
	Questions    int
}

// Parse decodes and validates YAML fixtures. Unknown keys are rejected.
func Parse(data []byte) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixtures{}, err
	}
	return f, nil
}

// Demo returns the embedded demo fixtures.
func Demo() Fixtures {
	f, err := Parse(demoYAML)
	if err != nil {
		panic("seed: embedded demo fixtures are invalid: " + err.Error())
	}
	return f
}

// Load returns the demo fixtures for DemoName, otherwise parses the
// YAML file at source.
func Load(source string) (Fixtures, error) {
	if source == DemoName {
		return Demo(), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return Parse(data)
}

// Validate applies the rules the API enforces on the same data: user
// roles, URL-safe unique slugs, and complete questions.
func (f Fixtures) Validate() error {
	for i, u := range f.Users {
		if strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Name) == "" {
			return fmt.Errorf("user %d: id and name are required", i)
		}
		if !models.ValidRole(u.Role) {
			return fmt.Errorf("user %s: invalid role %q", u.ID, u.Role)
		}
	}

	slugs := make(map[string]bool, len(f.Subjects))
	for i, s := range f.Subjects {
		if strings.TrimSpace(s.Name) == "" || s.Slug == "" {
			return fmt.Errorf("subject %d: name and slug are required", i)
		}
		if !auth.ValidSlug(s.Slug) {
			return fmt.Errorf("subject %d: slug %q must contain only a-z, 0-9, '-' and '_'", i, s.Slug)
		}
		if slugs[s.Slug] {
			return fmt.Errorf("subject %d: duplicate slug %q", i, s.Slug)
		}
		slugs[s.Slug] = true

		for j, q := range s.Questions {
			if _, err := q.model(); err != nil {
				return fmt.Errorf("subject %s question %d: %w", s.Slug, j, err)
			}
		}
	}
	return nil
}

func (q Question) model() (models.Question, error) {
	return models.NewQuestion(q.Content, q.Answers, q.Correct, q.Difficulty)
}

// Apply writes the fixtures in a single transaction. Existing users are
// left untouched. A subject whose slug already exists is deleted, with
// its questions and games, and recreated.
func Apply(ctx context.Context, s *store.Store, f Fixtures) (Result, error) {
	var res Result
	err := s.InTx(ctx, func(tx *store.Tx) error {
		for _, u := range f.Users {
			created, err := tx.EnsureUser(ctx, models.User{ID: u.ID, Name: u.Name, Role: u.Role})
			if err != nil {
				return fmt.Errorf("user %s: %w", u.ID, err)
			}
			if created {
				res.UsersCreated++
			}
		}

		for _, sub := range f.Subjects {
			questions := make([]models.Question, 0, len(sub.Questions))
			for _, q := range sub.Questions {
				model, err := q.model()
				if err != nil {
					return fmt.Errorf("subject %s: %w", sub.Slug, err)
				}
				questions = append(questions, model)
			}
			if _, err := tx.ReplaceSubject(ctx, sub.Name, sub.Slug, questions); err != nil {
				return fmt.Errorf("subject %s: %w", sub.Slug, err)
			}
			res.Subjects++
			res.Questions += len(questions)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	slog.Info("fixtures applied", "users_created", res.UsersCreated, "subjects", res.Subjects, "questions", res.Questions)
	return res, nil
}
