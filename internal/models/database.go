package models

import "context"

// * Database is the audit store used to record invocations
type Database interface {
	RecordInvocation(ctx context.Context, inv *Invocation) error
	ListInvocations(ctx context.Context, limit int) ([]Invocation, error)
}
