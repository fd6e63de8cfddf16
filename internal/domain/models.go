package domain

import (
	"fmt"
	"sort"
)

// Distinguished field keys inside a question's field map. Quiz sheets
// are authored with Russian headers, so the defaults match the source
// spreadsheets rather than the code's language.
const (
	PromptField = "Вопрос"
	AnswerField = "правильный"
)

// Roles assigned to registered users.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Question is one surviving row of a quiz sheet, keyed by the header row.
type Question struct {
	Index  int // 1-based position within the test
	Fields map[string]string
}

// Prompt returns the question text shown to the student.
func (q Question) Prompt() string {
	return q.Fields[PromptField]
}

// CorrectAnswer returns the value of the correct-answer marker field.
func (q Question) CorrectAnswer() string {
	return q.Fields[AnswerField]
}

// Choices returns the selectable answers in stable order. Quiz sheets
// label choice columns "1".."4", so sorted key order is authoring order.
func (q Question) Choices() []string {
	keys := make([]string, 0, len(q.Fields))
	for key := range q.Fields {
		if key == PromptField || key == AnswerField {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	choices := make([]string, 0, len(keys))
	for _, key := range keys {
		choices = append(choices, q.Fields[key])
	}
	return choices
}

// TestDefinition is a normalized, ordered question set for one named test.
type TestDefinition struct {
	Name      string
	Questions []Question
}

// AnswerRecord is one scored entry of a session transcript.
type AnswerRecord struct {
	Prompt  string `json:"prompt"`
	Correct bool   `json:"correct"`
}

// SessionState tracks a student's progression through a test.
type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
	StateFinished   SessionState = "finished"
)

// QuizSession is one user's attempt at a test. It is owned by the
// session repository and mutated only by the state machine.
type QuizSession struct {
	UserID       string         `json:"userId"`
	TestName     string         `json:"testName"`
	State        SessionState   `json:"state"`
	NextQuestion int            `json:"nextQuestion"` // 0-based index of the next question to render
	Transcript   []AnswerRecord `json:"transcript"`
}

// CorrectCount returns how many transcript entries were answered correctly.
func (s *QuizSession) CorrectCount() int {
	count := 0
	for _, record := range s.Transcript {
		if record.Correct {
			count++
		}
	}
	return count
}

// Summary renders the final score as "correct/total".
func (s *QuizSession) Summary() string {
	return fmt.Sprintf("%d/%d", s.CorrectCount(), len(s.Transcript))
}
