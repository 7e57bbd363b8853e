package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"freewen/internal/model"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExists    = errors.New("session name already in use")
	ErrInvalidName      = errors.New("session name is empty")
	ErrDocumentNotFound = errors.New("document not found")
)

// SessionStore keeps every workspace's sessions in process memory. Nothing
// here survives a restart; durable history goes through the archive
// pipeline instead.
//
// All reads hand out deep copies, so a caller can never mutate store-owned
// state except through store methods.
type SessionStore struct {
	mu         sync.RWMutex
	workspaces map[string]*workspace
}

type workspace struct {
	sessions map[string]*model.Session
	order    []string // creation order, drives listing
	active   string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{workspaces: map[string]*workspace{}}
}

func (s *SessionStore) Create(workspaceID, name string, cfg model.TripConfig) (*model.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(workspaceID)
	if _, exists := ws.sessions[name]; exists {
		return nil, ErrSessionExists
	}

	now := time.Now()
	session := &model.Session{
		Name:      name,
		Config:    cfg.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	ws.sessions[name] = session
	ws.order = append(ws.order, name)
	ws.active = name
	return session.Clone(), nil
}

func (s *SessionStore) List(workspaceID string) []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return nil
	}
	out := make([]model.Session, 0, len(ws.order))
	for _, name := range ws.order {
		out = append(out, *ws.sessions[name].Clone())
	}
	return out
}

func (s *SessionStore) Get(workspaceID, name string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.lookup(workspaceID, name)
	if err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

func (s *SessionStore) Rename(workspaceID, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(workspaceID, oldName)
	if err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	ws := s.workspaces[workspaceID]
	if _, exists := ws.sessions[newName]; exists {
		return ErrSessionExists
	}

	delete(ws.sessions, oldName)
	session.Name = newName
	session.UpdatedAt = time.Now()
	ws.sessions[newName] = session
	for i, n := range ws.order {
		if n == oldName {
			ws.order[i] = newName
			break
		}
	}
	if ws.active == oldName {
		ws.active = newName
	}
	return nil
}

// UpdateConfig replaces the session's working configuration. The plan, if
// one exists, keeps its own frozen snapshot.
func (s *SessionStore) UpdateConfig(workspaceID, name string, cfg model.TripConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(workspaceID, name)
	if err != nil {
		return err
	}
	session.Config = cfg.Clone()
	session.UpdatedAt = time.Now()
	return nil
}

func (s *SessionStore) SetActive(workspaceID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(workspaceID, name); err != nil {
		return err
	}
	s.workspaces[workspaceID].active = name
	return nil
}

// Active returns the active session name, or "" when the workspace is empty.
func (s *SessionStore) Active(workspaceID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return ""
	}
	return ws.active
}

func (s *SessionStore) Delete(workspaceID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(workspaceID, name); err != nil {
		return err
	}
	ws := s.workspaces[workspaceID]
	delete(ws.sessions, name)
	for i, n := range ws.order {
		if n == name {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
	if ws.active == name {
		ws.active = ""
		if len(ws.order) > 0 {
			ws.active = ws.order[0]
		}
	}
	return nil
}

// SavePlan atomically replaces the session's plan. Regeneration overwrites
// the previous plan in one step.
func (s *SessionStore) SavePlan(workspaceID, name string, plan *model.TravelPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(workspaceID, name)
	if err != nil {
		return err
	}
	session.Plan = plan.Clone()
	session.UpdatedAt = time.Now()
	return nil
}

func (s *SessionStore) AddDocument(workspaceID, name string, doc model.BookingDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(workspaceID, name)
	if err != nil {
		return err
	}
	session.Bookings = append(session.Bookings, doc.Clone())
	session.UpdatedAt = time.Now()
	return nil
}

func (s *SessionStore) Documents(workspaceID, name string) ([]model.BookingDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.lookup(workspaceID, name)
	if err != nil {
		return nil, err
	}
	out := make([]model.BookingDocument, len(session.Bookings))
	for i := range session.Bookings {
		out[i] = session.Bookings[i].Clone()
	}
	return out, nil
}

func (s *SessionStore) GetDocument(workspaceID, name, docID string) (*model.BookingDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.lookup(workspaceID, name)
	if err != nil {
		return nil, err
	}
	for i := range session.Bookings {
		if session.Bookings[i].ID == docID {
			doc := session.Bookings[i].Clone()
			return &doc, nil
		}
	}
	return nil, ErrDocumentNotFound
}

func (s *SessionStore) DeleteDocument(workspaceID, name, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(workspaceID, name)
	if err != nil {
		return err
	}
	for i := range session.Bookings {
		if session.Bookings[i].ID == docID {
			session.Bookings = append(session.Bookings[:i], session.Bookings[i+1:]...)
			session.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrDocumentNotFound
}

// workspace returns the workspace, creating it on first touch. Caller holds
// the write lock.
func (s *SessionStore) workspace(workspaceID string) *workspace {
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		ws = &workspace{sessions: map[string]*model.Session{}}
		s.workspaces[workspaceID] = ws
	}
	return ws
}

// lookup finds a live session. Caller holds at least the read lock.
func (s *SessionStore) lookup(workspaceID, name string) (*model.Session, error) {
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session, ok := ws.sessions[name]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
