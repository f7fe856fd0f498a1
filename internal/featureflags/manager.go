// Package featureflags evaluates rollout flags configured as a key=value list.
package featureflags

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Flags read by the server.
const (
	// BoardJitter scatters board cards; when off every card sits on its baseline slot.
	BoardJitter = "board_jitter"
	// FriendSearch exposes GET /api/friends/search.
	FriendSearch = "friend_search"
)

// Manager evaluates flags such as "board_jitter=on,friend_search=25%".
// Percentages bucket a subject (client address, board seed) deterministically.
type Manager struct {
	flags map[string]string
}

// NewManager parses a comma-separated list. Malformed pairs are skipped.
func NewManager(raw string) *Manager {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key, value = normalize(key), normalize(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return &Manager{flags: out}
}

// Enabled reports whether name is on for subject. Unknown flags fall back to def.
func (m *Manager) Enabled(name, subject string, def bool) bool {
	if m == nil {
		return def
	}
	value, ok := m.flags[normalize(name)]
	if !ok {
		return def
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return def
	}
	pct, err := strconv.Atoi(pctRaw)
	switch {
	case err != nil || pct <= 0:
		return false
	case pct >= 100:
		return true
	case subject == "":
		return false
	}
	return bucket(name, subject) < pct
}

// Names lists the configured flags in sorted order.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.flags))
	for k := range m.flags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot evaluates every configured flag for subject.
func (m *Manager) Snapshot(subject string) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, subject, false)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func bucket(name, subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + subject))
	return int(h.Sum32() % 100)
}
