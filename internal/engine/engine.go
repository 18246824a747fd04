// Package engine orchestrates one practice loop: pick a card, build a
// question, grade the answer and fold the outcome back into the profile.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/abhisek/lexiz/internal/ability"
	"github.com/abhisek/lexiz/internal/card"
	"github.com/abhisek/lexiz/internal/grader"
	"github.com/abhisek/lexiz/internal/profile"
	"github.com/abhisek/lexiz/internal/question"
	"github.com/abhisek/lexiz/internal/srs"
	"github.com/abhisek/lexiz/internal/store"
)

// recentLimit is the size of the recency ring used to avoid immediate
// card repeats.
const recentLimit = 5

// ErrEmptyDeck is returned when no cards are available at all.
var ErrEmptyDeck = errors.New("no cards available")

// AttemptSink receives one immutable row per graded answer.
type AttemptSink interface {
	Append(ctx context.Context, rec store.AttemptRecord) error
}

// AnswerJudge is the optional LLM grading collaborator. A nil verdict
// means "no opinion" and the deterministic grader decides.
type AnswerJudge interface {
	TryGrade(ctx context.Context, q question.Question, userAnswer string) *grader.Result
}

// Status is a snapshot of the learner's progress for display.
type Status struct {
	Lang       string
	Ability    profile.Ability
	DueCount   int
	NewCount   int
	StreakDays int
	Enabled    bool
}

// Config wires an Engine. Store and Deck are required; the rest have
// working defaults. Now and Rand exist for deterministic tests.
type Config struct {
	Store    *store.ProfileStore
	Lang     string
	Deck     []card.Card
	Attempts AttemptSink
	Judge    AnswerJudge

	SaveDebounce time.Duration
	Rand         *rand.Rand
	Now          func() int64
}

// Engine drives the practice session for one (learner, language) pair.
// It is not safe for concurrent use; the presentation layer serializes
// calls.
type Engine struct {
	store    *store.ProfileStore
	profile  *profile.Profile
	attempts AttemptSink
	judge    AnswerJudge
	gen      *question.Generator
	saver    *store.Saver

	deck   []card.Card
	byID   map[string]card.Card
	recent []string

	rng *rand.Rand
	now func() int64
}

// New creates an engine and loads the language profile.
func New(cfg Config) *Engine {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := cfg.Now
	if now == nil {
		now = func() int64 { return time.Now().UnixMilli() }
	}

	p := cfg.Store.Load(cfg.Lang)

	e := &Engine{
		store:    cfg.Store,
		profile:  p,
		attempts: cfg.Attempts,
		judge:    cfg.Judge,
		gen:      question.NewGenerator(rng),
		deck:     cfg.Deck,
		byID:     card.Index(cfg.Deck),
		rng:      rng,
		now:      now,
	}
	e.saver = store.NewSaver(cfg.SaveDebounce, func() {
		_ = cfg.Store.Save(e.profile)
	})
	return e
}

// Profile exposes the live profile for display. Callers must not mutate
// it.
func (e *Engine) Profile() *profile.Profile {
	return e.profile
}

// SetDeck swaps the deck. SRS entries for ids no longer in the deck stay
// in the profile but become unselectable.
func (e *Engine) SetDeck(deck []card.Card) {
	e.deck = deck
	e.byID = card.Index(deck)
}

// Status reports due/new counts, the streak and the ability estimate.
func (e *Engine) Status() Status {
	now := e.now()
	due := 0
	for id, state := range e.profile.Deck.Srs {
		if e.profile.IsSuspended(id) {
			continue
		}
		if state.IsDue(now) {
			due++
		}
	}
	newCount := 0
	for _, c := range e.deck {
		if !e.profile.IsKnown(c.ID) {
			newCount++
		}
	}
	return Status{
		Lang:       e.profile.Lang,
		Ability:    e.profile.Ability,
		DueCount:   due,
		NewCount:   newCount,
		StreakDays: e.profile.Stats.StreakDays,
		Enabled:    e.profile.Enabled,
	}
}

// NextQuestion selects a card and builds the next question.
func (e *Engine) NextQuestion() (question.Question, error) {
	c, err := e.pickCard()
	if err != nil {
		return question.Question{}, err
	}
	return e.gen.Generate(c, e.profile, e.deck), nil
}

// SubmitAnswer grades one answer and applies every side effect of the
// turn: schedule, ability, stats, attempt log and a debounced save.
func (e *Engine) SubmitAnswer(ctx context.Context, q question.Question, rawAnswer string, latencyMs int64, hintUsed bool) grader.Result {
	now := e.now()

	res := e.grade(ctx, q, rawAnswer, latencyMs)

	if hintUsed && res.Quality > 3 {
		res.Quality = 3
		res.Explanation += " (Hint used)"
	}

	if !res.Correct {
		if note := learningNote(q); note != "" {
			res.Explanation += " " + note
		}
	}

	e.advanceSrs(q.CardID, res.Quality, now)
	e.profile.Ability = ability.Update(e.profile.Ability, q, res.Correct, latencyMs, now)
	e.updateStats(res.Correct, latencyMs, now)
	e.logAttempt(ctx, q, rawAnswer, res, latencyMs, now)
	e.saver.SaveSoon()

	return res
}

// Hint builds a structural hint for the question.
func (e *Engine) Hint(q question.Question) string {
	return question.Hint(q)
}

// Flush writes any pending profile changes synchronously.
func (e *Engine) Flush() {
	e.saver.Flush()
}

// grade offers the answer to the judge first; no judge, no opinion or
// any judge failure falls back to deterministic grading.
func (e *Engine) grade(ctx context.Context, q question.Question, rawAnswer string, latencyMs int64) grader.Result {
	if e.judge != nil {
		if verdict := e.judge.TryGrade(ctx, q, rawAnswer); verdict != nil {
			return *verdict
		}
	}
	return grader.Grade(q, rawAnswer, latencyMs)
}

// pickCard selects the next card: earliest due first, then an unseen
// card, then a random known card, then the deck head.
func (e *Engine) pickCard() (card.Card, error) {
	if len(e.deck) == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	now := e.now()

	if c, ok := e.pickDueCard(now); ok {
		e.trackRecent(c.ID)
		return c, nil
	}

	if c, ok := e.pickNewCard(); ok {
		e.introduceCard(c.ID, now)
		e.trackRecent(c.ID)
		return c, nil
	}

	if c, ok := e.pickKnownCard(); ok {
		e.trackRecent(c.ID)
		return c, nil
	}

	first := e.deck[0]
	if !e.profile.IsKnown(first.ID) {
		e.introduceCard(first.ID, now)
	}
	e.trackRecent(first.ID)
	return first, nil
}

func (e *Engine) pickDueCard(now int64) (card.Card, bool) {
	type due struct {
		id    string
		dueAt int64
	}
	var dues []due
	for id, state := range e.profile.Deck.Srs {
		if e.profile.IsSuspended(id) {
			continue
		}
		if _, inDeck := e.byID[id]; !inDeck {
			continue
		}
		if state.IsDue(now) {
			dues = append(dues, due{id: id, dueAt: state.DueAt})
		}
	}
	if len(dues) == 0 {
		return card.Card{}, false
	}
	sort.Slice(dues, func(i, j int) bool { return dues[i].dueAt < dues[j].dueAt })

	chosen := dues[0].id
	for _, d := range dues {
		if !e.isRecent(d.id) {
			chosen = d.id
			break
		}
	}
	return e.byID[chosen], true
}

func (e *Engine) pickNewCard() (card.Card, bool) {
	var unseen []card.Card
	for _, c := range e.deck {
		if !e.profile.IsKnown(c.ID) {
			unseen = append(unseen, c)
		}
	}
	if len(unseen) == 0 {
		return card.Card{}, false
	}
	return unseen[e.rng.Intn(len(unseen))], true
}

func (e *Engine) pickKnownCard() (card.Card, bool) {
	var candidates []card.Card
	for _, id := range e.profile.Deck.KnownCardIDs {
		if e.profile.IsSuspended(id) {
			continue
		}
		if c, ok := e.byID[id]; ok {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return card.Card{}, false
	}

	var fresh []card.Card
	for _, c := range candidates {
		if !e.isRecent(c.ID) {
			fresh = append(fresh, c)
		}
	}
	pool := candidates
	if len(fresh) > 0 {
		pool = fresh
	}
	return pool[e.rng.Intn(len(pool))], true
}

// introduceCard marks a card known and seeds its schedule.
func (e *Engine) introduceCard(id string, now int64) {
	if !e.profile.IsKnown(id) {
		e.profile.Deck.KnownCardIDs = append(e.profile.Deck.KnownCardIDs, id)
	}
	if _, ok := e.profile.Deck.Srs[id]; !ok {
		e.profile.Deck.Srs[id] = srs.Init(now)
	}
	e.saver.SaveSoon()
}

func (e *Engine) advanceSrs(cardID string, quality int, now int64) {
	state, ok := e.profile.Deck.Srs[cardID]
	if !ok {
		state = srs.Init(now)
	}
	e.profile.Deck.Srs[cardID] = srs.Advance(state, quality, now)
}

func (e *Engine) updateStats(correct bool, latencyMs int64, now int64) {
	stats := &e.profile.Stats
	prevLastActiveAt := stats.LastActiveAt

	stats.TotalAttempts++
	if correct {
		stats.CorrectAttempts++
	}
	stats.LastActiveAt = now
	stats.AvgLatencyMs7d = blendLatency(stats.AvgLatencyMs7d, latencyMs)
	stats.StreakDays = updateStreak(stats.StreakDays, prevLastActiveAt, now)
}

func (e *Engine) logAttempt(ctx context.Context, q question.Question, rawAnswer string, res grader.Result, latencyMs int64, now int64) {
	if e.attempts == nil {
		return
	}
	// Best effort: a failed log write never fails the turn.
	_ = e.attempts.Append(ctx, store.AttemptRecord{
		TS:         now,
		Lang:       e.profile.Lang,
		CardID:     q.CardID,
		Variant:    string(q.Variant),
		Prompt:     q.DisplayPrompt(),
		UserAnswer: rawAnswer,
		Correct:    res.Correct,
		LatencyMs:  latencyMs,
		Quality:    res.Quality,
		Tags:       q.Meta.Tags,
	})
}

func (e *Engine) trackRecent(id string) {
	next := []string{id}
	for _, r := range e.recent {
		if r != id {
			next = append(next, r)
		}
	}
	if len(next) > recentLimit {
		next = next[:recentLimit]
	}
	e.recent = next
}

func (e *Engine) isRecent(id string) bool {
	for _, r := range e.recent {
		if r == id {
			return true
		}
	}
	return false
}

func blendLatency(prev float64, next int64) float64 {
	if prev == 0 {
		return float64(next)
	}
	return prev*0.8 + float64(next)*0.2
}

// updateStreak keeps the streak within a calendar day, increments it
// exactly one day later and resets it otherwise.
func updateStreak(current int, lastActiveAt, now int64) int {
	if lastActiveAt == 0 {
		return 1
	}
	last := time.UnixMilli(lastActiveAt)
	cur := time.UnixMilli(now)

	ly, lm, ld := last.Date()
	cy, cm, cd := cur.Date()
	if ly == cy && lm == cm && ld == cd {
		if current < 1 {
			return 1
		}
		return current
	}

	diffDays := (now - lastActiveAt) / srs.DayMs
	if diffDays == 1 {
		return current + 1
	}
	return 1
}
