// Package threshold holds the numeric review/usage policy the classifier's
// consumers and the review analyzer consult. Policy values come from a
// per-experience-tier default table and may be adjusted field by field; every
// write is clamped into a safe range rather than rejected.
package threshold

import "sync"

// Level is a developer experience tier. Each tier has its own default policy.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// Clamp bounds for each policy field. Out-of-range writes are pulled to the
// nearest bound, never rejected.
const (
	MinBlindApprovalMs = 500
	MaxBlindApprovalMs = 10000

	MinAIPercentage = 20
	MaxAIPercentage = 100

	MinReviewMs = 500
	MaxReviewMs = 10000

	MinStreak = 2
	MaxStreak = 10
)

// Config is the active numeric policy. It is a plain value object; Manager
// hands out copies so callers can never mutate the live policy.
type Config struct {
	// BlindApprovalTimeMs: acceptances faster than this count as blind
	// approvals. Range [500, 10000].
	BlindApprovalTimeMs int `yaml:"blind_approval_time_ms" json:"blind_approval_time_ms"`

	// MaxAIPercentage: daily AI share of written lines above this trips the
	// usage check. Range [20, 100].
	MaxAIPercentage int `yaml:"max_ai_percentage" json:"max_ai_percentage"`

	// MinReviewTimeMs: floor for expected review time. Range [500, 10000].
	MinReviewTimeMs int `yaml:"min_review_time_ms" json:"min_review_time_ms"`

	// StreakThreshold: consecutive quick acceptances before the streak check
	// trips. Range [2, 10].
	StreakThreshold int `yaml:"streak_threshold" json:"streak_threshold"`
}

// defaults maps each tier to its policy. Juniors get the tightest AI-share
// cap and the longest review floors; seniors the loosest.
var defaults = map[Level]Config{
	LevelJunior: {
		BlindApprovalTimeMs: 3000,
		MaxAIPercentage:     40,
		MinReviewTimeMs:     3000,
		StreakThreshold:     3,
	},
	LevelMid: {
		BlindApprovalTimeMs: 2000,
		MaxAIPercentage:     60,
		MinReviewTimeMs:     2000,
		StreakThreshold:     4,
	},
	LevelSenior: {
		BlindApprovalTimeMs: 1500,
		MaxAIPercentage:     80,
		MinReviewTimeMs:     1500,
		StreakThreshold:     5,
	},
}

// Defaults returns the default policy for a tier. Unrecognized tiers get the
// mid-tier policy; validating the tier string is the caller's job.
func Defaults(level Level) Config {
	if cfg, ok := defaults[level]; ok {
		return cfg
	}
	return defaults[LevelMid]
}

// clamp pulls v into [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Manager owns the active policy and serializes access to it.
type Manager struct {
	mu    sync.Mutex
	level Level
	cfg   Config
}

// NewManager creates a manager seeded with the tier's default policy.
func NewManager(level Level) *Manager {
	return &Manager{level: level, cfg: Defaults(level)}
}

// Config returns a copy of the active policy.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Level returns the active experience tier.
func (m *Manager) Level() Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// SetLevel replaces the whole policy with the tier's defaults. Field-level
// adjustments made under the previous tier are discarded, not merged.
func (m *Manager) SetLevel(level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	m.cfg = Defaults(level)
}

// SetBlindApprovalTime sets the blind-approval allowance in milliseconds,
// clamped to [500, 10000].
func (m *Manager) SetBlindApprovalTime(ms int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.BlindApprovalTimeMs = clamp(ms, MinBlindApprovalMs, MaxBlindApprovalMs)
}

// SetMaxAIPercentage sets the daily AI-share cap, clamped to [20, 100].
func (m *Manager) SetMaxAIPercentage(pct int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.MaxAIPercentage = clamp(pct, MinAIPercentage, MaxAIPercentage)
}

// SetMinReviewTime sets the review-time floor in milliseconds, clamped to
// [500, 10000].
func (m *Manager) SetMinReviewTime(ms int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.MinReviewTimeMs = clamp(ms, MinReviewMs, MaxReviewMs)
}

// SetStreakThreshold sets the quick-acceptance streak length, clamped to
// [2, 10].
func (m *Manager) SetStreakThreshold(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.StreakThreshold = clamp(n, MinStreak, MaxStreak)
}

// Export returns the full policy for persistence by the caller.
func (m *Manager) Export() Config {
	return m.Config()
}

// Import replaces the policy with cfg, clamping each field independently so a
// partially out-of-range import still yields a valid policy.
func (m *Manager) Import(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = Config{
		BlindApprovalTimeMs: clamp(cfg.BlindApprovalTimeMs, MinBlindApprovalMs, MaxBlindApprovalMs),
		MaxAIPercentage:     clamp(cfg.MaxAIPercentage, MinAIPercentage, MaxAIPercentage),
		MinReviewTimeMs:     clamp(cfg.MinReviewTimeMs, MinReviewMs, MaxReviewMs),
		StreakThreshold:     clamp(cfg.StreakThreshold, MinStreak, MaxStreak),
	}
}
