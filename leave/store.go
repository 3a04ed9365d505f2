/*
store.go - Persistence interface for leave records

PURPOSE:
  The boundary between the pure domain logic and whatever holds the
  records. The engine itself never performs I/O; the HTTP layer loads
  records through this interface, runs the pure transforms, and writes
  the results back.

IMPLEMENTATIONS:
  - store/memory: in-memory, for tests and development
  - store/sqlite: production SQLite
*/
package leave

import "context"

// Store persists employees, requests, configuration and the year-close
// meta record. Replace* methods swap an entire section atomically; they
// back the bulk import.
type Store interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	PutEmployee(ctx context.Context, emp Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	ReplaceEmployees(ctx context.Context, employees []Employee) error

	ListRequests(ctx context.Context) ([]LeaveRequest, error)
	GetRequest(ctx context.Context, id string) (LeaveRequest, error)
	PutRequest(ctx context.Context, req LeaveRequest) error
	DeleteRequest(ctx context.Context, id string) error
	ReplaceRequests(ctx context.Context, requests []LeaveRequest) error

	Config(ctx context.Context) (Config, error)
	PutConfig(ctx context.Context, cfg Config) error

	CloseMeta(ctx context.Context) (CloseMeta, error)
	PutCloseMeta(ctx context.Context, meta CloseMeta) error
}
