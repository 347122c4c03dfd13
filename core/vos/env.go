package vos

import (
	"sort"
	"strings"
	"sync"
)

// EnvPWD is set in every spawned unit's environment to its working directory.
const EnvPWD = "PWD"

// MapEnv is an in-memory environment.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

// NewMapEnvFromEnvList creates an environment from "key=value" entries.
// Entries without "=" get an empty value.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{env: make(map[string]string)}

	for _, e := range environ {
		key, value := e, ""
		if idx := strings.Index(e, "="); idx >= 0 {
			key, value = e[:idx], e[idx+1:]
		}
		out.env[key] = value
	}

	return out
}

// Setenv sets the value of the variable named by key.
func (m *MapEnv) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

// LookupEnv retrieves the value of the variable named by key and whether it
// was present.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv retrieves the value of the variable named by key, or "" if unset.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ returns a sorted copy of the environment in "key=value" form.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	env := make([]string, 0, len(m.env))
	for k, v := range m.env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// EnvironWith returns Environ with key overridden, leaving m untouched.
func (m *MapEnv) EnvironWith(key, value string) []string {
	clone := NewMapEnvFromEnvList(m.Environ())
	clone.Setenv(key, value)
	return clone.Environ()
}
