package form

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/dmitrymomot/regform/pkg/logger"
)

// Manager holds the live form state. All methods are safe for concurrent use;
// change hooks run after the internal lock is released.
type Manager struct {
	registry *Registry
	logger   *slog.Logger
	hooks    []func(State)

	mu    sync.RWMutex
	state State
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRegistry replaces the default registration rules.
func WithRegistry(r *Registry) ManagerOption {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithLogger sets the logger for the Manager.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithChangeHook registers fn to receive a snapshot after every change and reset.
func WithChangeHook(fn func(State)) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.hooks = append(m.hooks, fn)
		}
	}
}

// NewManager creates a manager with every field empty and untouched.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resetLocked()
	return m
}

// Registry returns the rules the manager validates against.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// SetValue stores value for field, revalidates it and every dependent field,
// and recomputes aggregate validity. Unknown fields are ignored.
func (m *Manager) SetValue(field FieldName, value Value) {
	if !m.registry.Has(field) {
		m.logger.Warn("Ignoring change for unknown field", logger.Field(string(field)))
		return
	}
	value = m.registry.Rule(field).normalize(value)

	m.mu.Lock()
	m.state.Values[field] = value
	m.state.Touched[field] = true
	for _, f := range m.registry.affected(field) {
		m.state.Results[f] = m.registry.Validate(f, m.state.Values.Get(f), m.state.Values)
	}
	m.recomputeLocked()
	snapshot := m.state.clone()
	m.mu.Unlock()

	m.logger.Debug("Field changed",
		logger.Field(string(field)),
		slog.Bool("field_valid", snapshot.Results[field].Valid),
		slog.Bool("form_valid", snapshot.IsValid),
	)
	m.notify(snapshot)
}

// State returns a copy of the current state. No validation runs.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// IsValid reports the current aggregate validity.
func (m *Manager) IsValid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.IsValid
}

// Reset restores empty values, clears touched flags and recomputes every result in one step.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.resetLocked()
	snapshot := m.state.clone()
	m.mu.Unlock()

	m.logger.Debug("Form reset")
	m.notify(snapshot)
}

// ResetIfUnchanged resets the form only while its values still equal expected.
// It reports whether the reset happened.
func (m *Manager) ResetIfUnchanged(expected Values) bool {
	m.mu.Lock()
	if !maps.Equal(m.state.Values, expected) {
		m.mu.Unlock()
		return false
	}
	m.resetLocked()
	snapshot := m.state.clone()
	m.mu.Unlock()

	m.logger.Debug("Form reset")
	m.notify(snapshot)
	return true
}

func (m *Manager) resetLocked() {
	fields := m.registry.Fields()
	st := State{
		Values:  make(Values, len(fields)),
		Results: make(map[FieldName]Result, len(fields)),
		Touched: make(map[FieldName]bool, len(fields)),
	}
	for _, f := range fields {
		st.Values[f] = Value{}
	}
	for _, f := range fields {
		st.Results[f] = m.registry.Validate(f, Value{}, st.Values)
	}
	m.state = st
	m.recomputeLocked()
}

func (m *Manager) recomputeLocked() {
	valid := true
	for _, f := range m.registry.Fields() {
		if !m.state.Results[f].Valid {
			valid = false
			break
		}
	}
	m.state.IsValid = valid
}

func (m *Manager) notify(st State) {
	for _, hook := range m.hooks {
		hook(st)
	}
}
