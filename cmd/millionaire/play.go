// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/poly-millionaire/client"
	"github.com/danielhkuo/poly-millionaire/game"
	"github.com/danielhkuo/poly-millionaire/models"
)

var (
	errTimeUp      = errors.New("time is up")
	errInputClosed = errors.New("input closed, game abandoned")
)

const playHelp = `Commands: A B C D answer | 50 fifty-fifty | aud ask the audience | phone phone a friend | walk walk away | help`

func (a *app) play(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(a.out)
	limit := fs.Duration("time", game.DefaultTimeLimit, "Time limit per question")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: millionaire play [-time 10m] <slug>")
	}
	slug := fs.Arg(0)

	session := game.NewSession(slug, game.Options{TimeLimit: *limit})
	questions, err := a.api.Game(ctx, slug)
	if err != nil {
		session.Fail()
		return fmt.Errorf("failed to load game: %w", err)
	}
	if err := session.Load(questions); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome to Poly-Millionaire! 12 questions stand between you and %s.\n", money(game.MaxPayout))
	fmt.Fprintln(a.out, playHelp)

	for session.State() == game.Playing {
		a.showQuestion(session)
		if err := a.turn(ctx, session); err != nil {
			return err
		}
	}

	a.showOutcome(session)
	return a.submit(ctx, session)
}

func (a *app) showQuestion(s *game.Session) {
	q, err := s.Current()
	if err != nil {
		return
	}
	i := s.Index()
	note := ""
	if game.IsCheckpoint(i) {
		note = ", guaranteed"
	}
	fmt.Fprintf(a.out, "\nQuestion %d of %d for %s%s (%s left)\n", i+1, game.QuestionCount, money(game.Ladder[i]), note, s.Remaining().Round(time.Second))
	fmt.Fprintln(a.out, q.Content)
	a.showChoices(s, q)
}

func (a *app) showChoices(s *game.Session, q models.Question) {
	hidden := map[string]bool{}
	for _, c := range s.Hidden() {
		hidden[c] = true
	}
	for _, c := range models.Choices {
		if hidden[c] {
			fmt.Fprintf(a.out, "  %s) ---\n", c)
			continue
		}
		fmt.Fprintf(a.out, "  %s) %s\n", c, q.Answer(c))
	}
}

// next waits for an input line, the question's countdown, or
// cancellation, printing the time left every tick.
func (a *app) next(ctx context.Context, s *game.Session, expired <-chan time.Time) (string, error) {
	var tick <-chan time.Time
	if a.tick > 0 {
		t := time.NewTicker(a.tick)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-expired:
			return "", errTimeUp
		case <-tick:
			fmt.Fprintf(a.out, "[%s left]\n", s.Remaining().Round(time.Second))
		case line, ok := <-a.lines:
			if !ok {
				return "", errInputClosed
			}
			return strings.TrimSpace(line), nil
		}
	}
}

// turn handles input for the current question until it is answered,
// the player walks away, or the countdown runs out.
func (a *app) turn(ctx context.Context, s *game.Session) error {
	q, err := s.Current()
	if err != nil {
		return err
	}
	timer := time.NewTimer(s.Remaining())
	defer timer.Stop()

	for {
		fmt.Fprint(a.out, "> ")
		line, err := a.next(ctx, s, timer.C)
		if errors.Is(err, errTimeUp) {
			s.Timeout()
			fmt.Fprintf(a.out, "\nTime's up! The answer was %s.\n", q.CorrectAnswer)
			return nil
		}
		if err != nil {
			return err
		}

		switch cmd := strings.ToLower(line); cmd {
		case "a", "b", "c", "d":
			res, err := s.Answer(strings.ToUpper(cmd))
			if errors.Is(err, game.ErrChoiceHidden) {
				fmt.Fprintln(a.out, "That option was removed.")
				continue
			}
			if err != nil {
				return err
			}
			switch {
			case res.TimedOut:
				fmt.Fprintf(a.out, "Too late! The answer was %s.\n", res.CorrectAnswer)
			case res.Correct:
				fmt.Fprintln(a.out, "Correct!")
			default:
				fmt.Fprintf(a.out, "Wrong! The answer was %s.\n", res.CorrectAnswer)
			}
			return nil

		case "50":
			removed, err := s.UseFiftyFifty()
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			fmt.Fprintf(a.out, "Removed %s.\n", strings.Join(removed, " and "))
			a.showChoices(s, q)

		case "aud":
			poll, err := s.UseAskAudience()
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			fmt.Fprintln(a.out, "The audience votes:")
			for _, c := range models.Choices {
				pct := poll.Votes[c]
				fmt.Fprintf(a.out, "  %s %3d%% %s\n", c, pct, strings.Repeat("#", pct/5))
			}

		case "phone":
			hint, err := s.UsePhoneFriend()
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			fmt.Fprintf(a.out, "Your friend says: \"I think it's %s, maybe %.0f%% sure.\"\n", hint.Suggested, hint.Confidence*100)

		case "walk":
			fmt.Fprintf(a.out, "Walk away with %s? [y/N] ", money(game.WalkAwayPayout(s.Index())))
			answer, err := a.next(ctx, s, timer.C)
			if errors.Is(err, errTimeUp) {
				s.Timeout()
				fmt.Fprintf(a.out, "\nTime's up! The answer was %s.\n", q.CorrectAnswer)
				return nil
			}
			if err != nil {
				return err
			}
			if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
				return s.WalkAway()
			}

		case "help", "?":
			fmt.Fprintln(a.out, playHelp)

		case "":

		default:
			fmt.Fprintf(a.out, "Unknown command %q. %s\n", line, playHelp)
		}
	}
}

func (a *app) showOutcome(s *game.Session) {
	switch s.State() {
	case game.Won:
		fmt.Fprintf(a.out, "\nYou won %s!\n", money(s.Score()))
	case game.WalkedAway:
		fmt.Fprintf(a.out, "\nYou walked away with %s.\n", money(s.Score()))
	case game.Lost:
		fmt.Fprintf(a.out, "\nGame over. You leave with %s.\n", money(s.Score()))
	}
}

// submit hands the finished game to the submitter. The outcome has
// already been shown, so delivery problems are reported, not returned.
func (a *app) submit(ctx context.Context, s *game.Session) error {
	req, err := s.Submission()
	if err != nil {
		return err
	}

	gameID, delivery, err := a.submitter.Submit(ctx, req)
	switch delivery {
	case client.Delivered:
		fmt.Fprintf(a.out, "Saved as game #%d.\n", gameID)
	case client.Queued:
		fmt.Fprintln(a.out, "Could not reach the server. The game was saved locally and will be sent next time.")
	case client.Rejected:
		fmt.Fprintf(a.out, "The server did not accept this game: %v\n", err)
	}
	return nil
}
