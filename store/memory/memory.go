// Package memory provides an in-memory leave.Store for testing and dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	employees map[string]leave.Employee
	requests  map[string]leave.LeaveRequest
	config    leave.Config
	meta      leave.CloseMeta
}

var _ leave.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		employees: make(map[string]leave.Employee),
		requests:  make(map[string]leave.LeaveRequest),
		config:    leave.DefaultConfig(),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) ListEmployees(_ context.Context) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]leave.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[id]
	if !ok {
		return leave.Employee{}, leave.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Store) PutEmployee(_ context.Context, emp leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
	return nil
}

func (s *Store) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return leave.ErrEmployeeNotFound
	}
	delete(s.employees, id)
	return nil
}

func (s *Store) ReplaceEmployees(_ context.Context, employees []leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = make(map[string]leave.Employee, len(employees))
	for _, emp := range employees {
		s.employees[emp.ID] = emp
	}
	return nil
}

// =============================================================================
// REQUESTS
// =============================================================================

func (s *Store) ListRequests(_ context.Context) ([]leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]leave.LeaveRequest, 0, len(s.requests))
	for _, req := range s.requests {
		out = append(out, req)
	}
	// Stable order: by start date, then id.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetRequest(_ context.Context, id string) (leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (s *Store) PutRequest(_ context.Context, req leave.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = req
	return nil
}

func (s *Store) DeleteRequest(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[id]; !ok {
		return leave.ErrRequestNotFound
	}
	delete(s.requests, id)
	return nil
}

func (s *Store) ReplaceRequests(_ context.Context, requests []leave.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = make(map[string]leave.LeaveRequest, len(requests))
	for _, req := range requests {
		s.requests[req.ID] = req
	}
	return nil
}

// =============================================================================
// CONFIG & CLOSE META
// =============================================================================

func (s *Store) Config(_ context.Context) (leave.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, nil
}

func (s *Store) PutConfig(_ context.Context, cfg leave.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	return nil
}

func (s *Store) CloseMeta(_ context.Context) (leave.CloseMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta, nil
}

func (s *Store) PutCloseMeta(_ context.Context, meta leave.CloseMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = meta
	return nil
}
