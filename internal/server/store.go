package server

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

var ErrTooManyInstances = errors.New("too many form instances")

// WidgetFactory builds the widget backing a new instance. display receives the
// instance's submission.
type WidgetFactory func(display details.Display) (*widget.Widget, error)

// Instance is one widget addressed by id. Callers must hold Lock while using
// the widget.
type Instance struct {
	sync.Mutex

	ID       string
	Widget   *widget.Widget
	Recorder *details.Recorder

	notice   string
	lastSeen time.Time
}

// TakeNotice returns the pending flash message and clears it.
func (i *Instance) TakeNotice() string {
	notice := i.notice
	i.notice = ""
	return notice
}

// SetNotice records a message shown on the next render.
func (i *Instance) SetNotice(notice string) {
	i.notice = notice
}

// Store keeps instances in memory. Instances idle for longer than ttl are
// evicted; when max is reached the least recently used instance makes room.
type Store struct {
	mu        sync.Mutex
	instances map[string]*Instance
	factory   WidgetFactory
	display   details.Display
	ttl       time.Duration
	max       int
	now       func() time.Time
}

func NewStore(factory WidgetFactory, display details.Display, ttl time.Duration, max int) *Store {
	return &Store{
		instances: make(map[string]*Instance),
		factory:   factory,
		display:   display,
		ttl:       ttl,
		max:       max,
		now:       time.Now,
	}
}

func (s *Store) Create() (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if s.max > 0 && len(s.instances) >= s.max {
		if !s.evictOldestLocked() {
			return nil, errors.WithStack(ErrTooManyInstances)
		}
	}

	recorder := &details.Recorder{}
	w, err := s.factory(details.Multi(recorder, s.display))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	instance := &Instance{
		ID:       xid.New().String(),
		Widget:   w,
		Recorder: recorder,
		lastSeen: s.now(),
	}
	s.instances[instance.ID] = instance
	return instance, nil
}

func (s *Store) Get(id string) (*Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, ok := s.instances[id]
	if !ok {
		return nil, false
	}
	if s.expiredLocked(instance) {
		delete(s.instances, id)
		return nil, false
	}
	instance.lastSeen = s.now()
	return instance, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

// Sweep evicts expired instances and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	removed := 0
	for id, instance := range s.instances {
		if s.expiredLocked(instance) {
			delete(s.instances, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expiredLocked(instance *Instance) bool {
	return s.ttl > 0 && s.now().Sub(instance.lastSeen) > s.ttl
}

func (s *Store) evictOldestLocked() bool {
	var oldest *Instance
	for _, instance := range s.instances {
		if oldest == nil || instance.lastSeen.Before(oldest.lastSeen) {
			oldest = instance
		}
	}
	if oldest == nil {
		return false
	}
	delete(s.instances, oldest.ID)
	return true
}
