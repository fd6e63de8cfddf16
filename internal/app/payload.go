package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// Callback action kinds carried by chat transport payloads.
const (
	ActionReady    = "ready"
	ActionStart    = "test"
	ActionQuestion = "question"
)

// Action is a parsed callback payload of the form
// "<action>;<testName>;<questionIndex>[;<chosenAnswer>]".
type Action struct {
	Kind          string
	TestName      string
	QuestionIndex int
	ChosenAnswer  string
}

// ParseAction validates a payload's shape instead of assuming it. Bad
// field counts, unknown actions and non-numeric indices all come back
// as domain.ErrMalformedPayload.
func ParseAction(payload string) (Action, error) {
	parts := strings.Split(payload, ";")

	switch parts[0] {
	case ActionReady:
		if len(parts) != 1 {
			return Action{}, malformed(payload)
		}
		return Action{Kind: ActionReady}, nil

	case ActionStart:
		if len(parts) != 3 || parts[1] == "" {
			return Action{}, malformed(payload)
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil || index != 0 {
			return Action{}, malformed(payload)
		}
		return Action{Kind: ActionStart, TestName: parts[1]}, nil

	case ActionQuestion:
		if len(parts) != 4 || parts[1] == "" {
			return Action{}, malformed(payload)
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil || index < 1 {
			return Action{}, malformed(payload)
		}
		return Action{
			Kind:          ActionQuestion,
			TestName:      parts[1],
			QuestionIndex: index,
			ChosenAnswer:  parts[3],
		}, nil
	}

	return Action{}, malformed(payload)
}

func malformed(payload string) error {
	return fmt.Errorf("%w: %q", domain.ErrMalformedPayload, payload)
}
