// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/seed"
)

const adminUsage = `Usage: millionaire admin <command> [args]

Commands:
  subjects                                   list subjects
  create-subject [-slug s] <name>            create a subject
  delete-subject <id>                        delete a subject and everything in it
  questions <slug>                           list a subject's questions
  add-question <slug> [question flags]       add one question
  update-question <id> [question flags]      replace a question
  delete-question <id>                       delete a question
  import <slug> <file|->                     bulk import questions (JSON array, or YAML for .yaml/.yml)
  users                                      list users
  create-user [-role r] <id> <name>          create a user

Question flags: -content -a -b -c -d -correct A-D -difficulty 1-4
`

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, adminUsage)
		return errors.New("missing admin command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "subjects":
		return a.listSubjects(ctx)
	case "create-subject":
		return a.createSubject(ctx, rest)
	case "delete-subject":
		return a.withID(rest, "delete-subject <id>", func(id int64) error {
			if err := a.api.DeleteSubject(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted subject %d.\n", id)
			return nil
		})
	case "questions":
		return a.listQuestions(ctx, rest)
	case "add-question":
		return a.addQuestion(ctx, rest)
	case "update-question":
		return a.updateQuestion(ctx, rest)
	case "delete-question":
		return a.withID(rest, "delete-question <id>", func(id int64) error {
			if err := a.api.DeleteQuestion(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted question %d.\n", id)
			return nil
		})
	case "import":
		return a.importQuestions(ctx, rest)
	case "users":
		return a.listUsers(ctx)
	case "create-user":
		return a.createUser(ctx, rest)
	case "help":
		fmt.Fprint(a.out, adminUsage)
		return nil
	}
	return fmt.Errorf("unknown admin command %q", cmd)
}

func (a *app) withID(args []string, usage string, fn func(int64) error) error {
	if len(args) != 1 {
		return errors.New("usage: millionaire admin " + usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return fn(id)
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) createSubject(ctx context.Context, args []string) error {
	fs := a.flags("create-subject")
	slug := fs.String("slug", "", "Subject slug (derived from the name when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: millionaire admin create-subject [-slug s] <name>")
	}

	sub, err := a.api.CreateSubject(ctx, strings.Join(fs.Args(), " "), *slug)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created subject %d %q (%s).\n", sub.ID, sub.Name, sub.Slug)
	return nil
}

func (a *app) listQuestions(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: millionaire admin questions <slug>")
	}
	questions, err := a.api.Questions(ctx, args[0])
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Fprintln(a.out, "No questions yet.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tDIFF\tANSWER\tQUESTION")
	for _, q := range questions {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", q.ID, q.Difficulty, q.CorrectAnswer, q.Content)
	}
	return w.Flush()
}

// questionFlags registers the flags shared by add-question and update-question.
func questionFlags(fs *flag.FlagSet) *models.QuestionRequest {
	req := &models.QuestionRequest{}
	fs.StringVar(&req.Content, "content", "", "Question text")
	fs.StringVar(&req.Answers.A, "a", "", "Answer A")
	fs.StringVar(&req.Answers.B, "b", "", "Answer B")
	fs.StringVar(&req.Answers.C, "c", "", "Answer C")
	fs.StringVar(&req.Answers.D, "d", "", "Answer D")
	fs.StringVar(&req.CorrectAnswer, "correct", "", "Correct answer letter")
	fs.IntVar(&req.Difficulty, "difficulty", 0, "Difficulty tier 1-4")
	return req
}

// parseTarget parses flags that may come before or after the single
// positional argument.
func parseTarget(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() == 0 {
		return "", errors.New("missing argument")
	}
	target := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return "", err
	}
	if fs.NArg() != 0 {
		return "", fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	return target, nil
}

func (a *app) addQuestion(ctx context.Context, args []string) error {
	fs := a.flags("add-question")
	req := questionFlags(fs)
	slug, err := parseTarget(fs, args)
	if err != nil {
		return fmt.Errorf("add-question <slug>: %w", err)
	}

	q, err := a.api.CreateQuestion(ctx, slug, *req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created question %d.\n", q.ID)
	return nil
}

func (a *app) updateQuestion(ctx context.Context, args []string) error {
	fs := a.flags("update-question")
	req := questionFlags(fs)
	target, err := parseTarget(fs, args)
	if err != nil {
		return fmt.Errorf("update-question <id>: %w", err)
	}
	id, err := parseID(target)
	if err != nil {
		return err
	}

	if _, err := a.api.UpdateQuestion(ctx, id, *req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated question %d.\n", id)
	return nil
}

func (a *app) importQuestions(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: millionaire admin import <slug> <file|->")
	}
	slug, path := args[0], args[1]

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = readAll(a.lines)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, err := decodeImport(data, filepath.Ext(path))
	if err != nil {
		return err
	}
	n, err := a.api.ImportQuestions(ctx, slug, records)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %d question(s) into %s.\n", n, slug)
	return nil
}

// readAll drains the input lines.
func readAll(lines <-chan string) ([]byte, error) {
	var buf bytes.Buffer
	for line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// decodeImport reads a JSON array of import records. Files ending in
// .yaml or .yml hold a YAML list in the seed fixture question format.
func decodeImport(data []byte, ext string) ([]models.ImportQuestion, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var questions []seed.Question
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&questions); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		records := make([]models.ImportQuestion, len(questions))
		for i, q := range questions {
			records[i] = models.ImportQuestion{
				Content:    q.Content,
				Answers:    q.Answers,
				Correct:    q.Correct,
				Difficulty: q.Difficulty,
			}
		}
		return records, nil
	}

	var records []models.ImportQuestion
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: the file must hold an array of questions: %w", err)
	}
	return records, nil
}

func (a *app) listUsers(ctx context.Context) error {
	users, err := a.api.Users(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, u.Role)
	}
	return w.Flush()
}

func (a *app) createUser(ctx context.Context, args []string) error {
	fs := a.flags("create-user")
	role := fs.String("role", models.RoleStudent, "Role: student or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: millionaire admin create-user [-role r] <id> <name>")
	}

	u, err := a.api.CreateUser(ctx, models.CreateUserRequest{
		ID:   fs.Arg(0),
		Name: strings.Join(fs.Args()[1:], " "),
		Role: *role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s %s (%s).\n", u.Role, u.Name, u.ID)
	return nil
}
