package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleCoach = "coach"
	RoleAdmin = "admin"
)

// Games players can request coaching for.
var Games = []string{"valorant", "cs2", "overwatch", "apex", "rocket-league", "fortnite"}

// SkillTiers self-reported at signup.
var SkillTiers = []string{"bronze", "silver", "gold", "platinum", "diamond", "elite"}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	Game           string    `json:"game"`
	SkillTier      string    `json:"skill_tier"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleCoach || role == RoleAdmin
}

// RoleSatisfies reports whether having `have` grants access gated at `want`.
// Admin outranks coach, coach outranks user.
func RoleSatisfies(have, want string) bool {
	return roleRank(have) >= roleRank(want) && roleRank(have) > 0
}

func roleRank(role string) int {
	switch role {
	case RoleUser:
		return 1
	case RoleCoach:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

func IsValidGame(game string) bool {
	return contains(Games, game)
}

func IsValidSkillTier(tier string) bool {
	return contains(SkillTiers, tier)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
