package session

import "sync"

// MemoryTokens is a TokenStore held in memory, used by tests and tools.
type MemoryTokens struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokens(token string) *MemoryTokens {
	return &MemoryTokens{token: token}
}

func (m *MemoryTokens) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *MemoryTokens) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokens) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
