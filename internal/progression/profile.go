package progression

import "time"

const (
	// StartingMaxXP is the XP needed to leave level 1.
	StartingMaxXP = 100
	// HourlyCoins is paid by each hourly reward claim.
	HourlyCoins = 100
	// HourlyInterval is the minimum time between two claims.
	HourlyInterval = time.Hour
)

// Profile is the persistent progression record of one player.
type Profile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Level             int       `json:"level"`
	CurrentXP         int       `json:"current_xp"`
	MaxXP             int       `json:"max_xp"`
	TotalXP           int       `json:"total_xp"`
	Coins             int       `json:"coins"`
	LastRewardClaimed time.Time `json:"last_reward_claimed"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewProfile returns a level 1 profile.
func NewProfile(id, username string, now time.Time) Profile {
	return Profile{
		ID:        id,
		Username:  username,
		Level:     1,
		MaxXP:     StartingMaxXP,
		CreatedAt: now,
	}
}

// MaxXPForLevel returns the XP needed to complete the given level.
// Each level needs 10% more than the previous one, rounded down at every step.
func MaxXPForLevel(level int) int {
	xp := StartingMaxXP
	for l := 1; l < level; l++ {
		xp = xp * 11 / 10
	}
	return xp
}

// AddXP credits xp and performs any level-ups, carrying the remainder.
// It returns the number of levels gained. Non-positive amounts are ignored.
func (p *Profile) AddXP(xp int) int {
	if xp <= 0 {
		return 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.MaxXP <= 0 {
		p.MaxXP = MaxXPForLevel(p.Level)
	}

	p.TotalXP += xp
	p.CurrentXP += xp

	gained := 0
	for p.CurrentXP >= p.MaxXP {
		p.CurrentXP -= p.MaxXP
		p.Level++
		p.MaxXP = MaxXPForLevel(p.Level)
		gained++
	}
	return gained
}

// CanClaim reports whether the hourly reward is available at now.
func (p Profile) CanClaim(now time.Time) bool {
	return p.LastRewardClaimed.IsZero() || now.Sub(p.LastRewardClaimed) >= HourlyInterval
}

// NextClaimIn returns how long until the hourly reward becomes available.
func (p Profile) NextClaimIn(now time.Time) time.Duration {
	if p.CanClaim(now) {
		return 0
	}
	return HourlyInterval - now.Sub(p.LastRewardClaimed)
}

// ClaimHourly pays HourlyCoins when the reward is available and reports whether it did.
func (p *Profile) ClaimHourly(now time.Time) bool {
	if !p.CanClaim(now) {
		return false
	}
	p.Coins += HourlyCoins
	p.LastRewardClaimed = now
	return true
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	TotalXP     int    `json:"total_xp"`
	Level       int    `json:"level"`
}

// Entry projects the profile onto a leaderboard row.
func (p Profile) Entry() LeaderboardEntry {
	return LeaderboardEntry{
		ID:          p.ID,
		DisplayName: p.Username,
		TotalXP:     p.TotalXP,
		Level:       p.Level,
	}
}
