package models

import (
	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
)

// * Action selects which upstream call an invocation performs
type Action int

const (
	ActionUnknown Action = iota
	ActionGetIssues
	ActionGetBranches
	ActionGetPullRequests
	ActionGetIssue
	ActionGetPullRequest
)

var actionNames = [...]string{
	ActionUnknown:         "unknown",
	ActionGetIssues:       "get_issues",
	ActionGetBranches:     "get_branches",
	ActionGetPullRequests: "get_pull_requests",
	ActionGetIssue:        "get_one_issue",
	ActionGetPullRequest:  "get_one_pull_request",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return actionNames[ActionUnknown]
	}
	return actionNames[a]
}

// * EventActions are the only values accepted in an invocation event's action field.
// * Single-item lookups are reachable through agent routes only.
var EventActions = []Action{ActionGetIssues, ActionGetBranches, ActionGetPullRequests}

// * ParseAction resolves the action field of an invocation event
func ParseAction(s string) (Action, error) {
	for _, a := range EventActions {
		if a.String() == s {
			return a, nil
		}
	}
	return ActionUnknown, errors.UnknownAction(s)
}

// * Request is a resolved operation. Number is only meaningful for single-item lookups.
type Request struct {
	Action Action
	Number int
}
