package app

import (
	"context"
	"fmt"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// SessionRepository stores quiz sessions keyed by user identity
// (in-memory, Redis, etc).
type SessionRepository interface {
	Get(ctx context.Context, userID string) (*domain.QuizSession, bool, error)
	Put(ctx context.Context, session *domain.QuizSession) error
	Delete(ctx context.Context, userID string) error
}

// TestSource loads question sets by name (the question store, usually
// behind a cache).
type TestSource interface {
	Load(ctx context.Context, name string) (domain.TestDefinition, error)
}

// ResultRecorder persists a finished session's transcript.
type ResultRecorder interface {
	Record(ctx context.Context, testName, student string, transcript []domain.AnswerRecord) error
}

// RoleDirectory resolves a user's role; "" means unregistered.
type RoleDirectory interface {
	Role(ctx context.Context, userID string) (string, error)
}

// Identity names the user driving a session.
type Identity struct {
	ID   string
	Name string
}

// Label is the human-readable form written into result rows.
func (id Identity) Label() string {
	if id.Name != "" {
		return id.Name
	}
	return id.ID
}

// Step kinds returned by Advance.
type StepKind int

const (
	// StepAskQuestion carries the next question to render.
	StepAskQuestion StepKind = iota
	// StepFinished carries the final score summary.
	StepFinished
)

// Step is the state machine's output for the transport to render.
type Step struct {
	Kind     StepKind
	TestName string
	Total    int
	Question domain.Question // set when Kind == StepAskQuestion
	Summary  string          // set when Kind == StepFinished
}

// SurveyService is the per-user quiz progression state machine. Each
// user's session is an explicit record in the session repository;
// transitions load it, mutate it and store it back.
type SurveyService struct {
	sessions SessionRepository
	tests    TestSource
	results  ResultRecorder
	roles    RoleDirectory
}

func NewSurveyService(sessions SessionRepository, tests TestSource, results ResultRecorder, roles RoleDirectory) *SurveyService {
	return &SurveyService{sessions: sessions, tests: tests, results: results, roles: roles}
}

// Ready opens a fresh session for a student. Non-students are rejected
// with domain.ErrNotStudent; a prior session for the same user is
// replaced, so Finished is terminal per session instance.
func (s *SurveyService) Ready(ctx context.Context, user Identity) error {
	role, err := s.roles.Role(ctx, user.ID)
	if err != nil {
		return err
	}
	if role != domain.RoleStudent {
		return domain.ErrNotStudent
	}

	return s.sessions.Put(ctx, &domain.QuizSession{
		UserID:     user.ID,
		State:      domain.StateNotStarted,
		Transcript: []domain.AnswerRecord{},
	})
}

// Advance is the InProgress transition. It operates only on a session
// opened by Ready; a callback without one fails with
// domain.ErrSessionNotFound. A start action bootstraps the flow and is
// never scored; a question action scores the just-answered question
// first. The indices are deliberately asymmetric: the answered question
// is dereferenced 1-based (index-1), while the "more questions left"
// check compares the same index 0-based against the total. That keeps
// the last question scored without prompting an extra one.
func (s *SurveyService) Advance(ctx context.Context, user Identity, action Action) (Step, error) {
	test, err := s.tests.Load(ctx, action.TestName)
	if err != nil {
		// A session cannot proceed without its question set.
		return Step{}, err
	}

	session, ok, err := s.sessions.Get(ctx, user.ID)
	if err != nil {
		return Step{}, err
	}
	if !ok {
		// Sessions are opened by Ready, which holds the student-role
		// gate. A callback without a live session is either a stale
		// keyboard or a user who never passed that gate; bootstrapping
		// a session here would let both through.
		return Step{}, fmt.Errorf("user %s: %w", user.ID, domain.ErrSessionNotFound)
	}
	session.TestName = test.Name
	session.State = domain.StateInProgress

	if action.Kind == ActionQuestion {
		if action.QuestionIndex > len(test.Questions) {
			return Step{}, fmt.Errorf("%w: question index %d of %d", domain.ErrMalformedPayload, action.QuestionIndex, len(test.Questions))
		}
		answered := test.Questions[action.QuestionIndex-1]
		session.Transcript = append(session.Transcript, domain.AnswerRecord{
			Prompt:  answered.Prompt(),
			Correct: answered.CorrectAnswer() == action.ChosenAnswer,
		})
	}

	if action.QuestionIndex < len(test.Questions) {
		next := test.Questions[action.QuestionIndex]
		session.NextQuestion = action.QuestionIndex
		if err := s.sessions.Put(ctx, session); err != nil {
			return Step{}, err
		}
		return Step{
			Kind:     StepAskQuestion,
			TestName: test.Name,
			Total:    len(test.Questions),
			Question: next,
		}, nil
	}

	session.State = domain.StateFinished
	summary := session.Summary()

	// A lost result row is data loss: surface recording failures
	// instead of swallowing them, and keep the session so a retry
	// is possible.
	if err := s.results.Record(ctx, test.Name, user.Label(), session.Transcript); err != nil {
		return Step{}, err
	}
	if err := s.sessions.Delete(ctx, user.ID); err != nil {
		return Step{}, err
	}

	return Step{
		Kind:     StepFinished,
		TestName: test.Name,
		Total:    len(test.Questions),
		Summary:  summary,
	}, nil
}
