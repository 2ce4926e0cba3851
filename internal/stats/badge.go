package stats

// BadgeRule describes how a badge is earned.
type BadgeRule struct {
	Metric      func(Profile) int
	ID          string
	Name        string
	Description string
	Requirement int
}

// Progress returns the metric value capped at the requirement.
func (r BadgeRule) Progress(p Profile) int {
	return min(r.Metric(p), r.Requirement)
}

// Unlocked reports whether the profile satisfies the requirement.
func (r BadgeRule) Unlocked(p Profile) bool {
	return r.Progress(p) >= r.Requirement
}

// Badge is the evaluated state of a badge for a profile.
type Badge struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Requirement int    `json:"requirement" yaml:"requirement"`
	Progress    int    `json:"progress"    yaml:"progress"`
	Unlocked    bool   `json:"unlocked"    yaml:"unlocked"`
}

func completedMissions(p Profile) int { return p.CompletedMissions }

var badgeRules = []BadgeRule{
	{
		ID:          "first-victory",
		Name:        "First Victory",
		Description: "Complete your first mission",
		Metric:      completedMissions,
		Requirement: 1,
	},
	{
		ID:          "seasoned-guardian",
		Name:        "Seasoned Guardian",
		Description: "Complete 5 missions",
		Metric:      completedMissions,
		Requirement: 5,
	},
	{
		ID:          "legendary-guardian",
		Name:        "Legendary Guardian",
		Description: "Complete 10 missions",
		Metric:      completedMissions,
		Requirement: 10,
	},
	{
		ID:          "rest-master",
		Name:        "Rest Master",
		Description: "Finish 5 rest periods",
		Metric:      func(p Profile) int { return p.TotalRestPeriods },
		Requirement: 5,
	},
	{
		ID:          "on-fire",
		Name:        "On Fire",
		Description: "Focus 3 days in a row",
		Metric:      func(p Profile) int { return p.FocusStreakDays },
		Requirement: 3,
	},
	{
		ID:          "marathon-focus",
		Name:        "Marathon Focus",
		Description: "Complete a 45 minute mission",
		Metric:      func(p Profile) int { return p.BestFocusMinutes },
		Requirement: 45,
	},
}

// Rules returns the badge table in display order.
func Rules() []BadgeRule {
	rules := make([]BadgeRule, len(badgeRules))
	copy(rules, badgeRules)

	return rules
}

// DeriveBadges evaluates every badge rule against p.
func DeriveBadges(p Profile) []Badge {
	badges := make([]Badge, 0, len(badgeRules))

	for _, r := range badgeRules {
		badges = append(badges, Badge{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Requirement: r.Requirement,
			Progress:    r.Progress(p),
			Unlocked:    r.Unlocked(p),
		})
	}

	return badges
}

// Unlocked filters the unlocked badges.
func Unlocked(badges []Badge) []Badge {
	var out []Badge

	for _, b := range badges {
		if b.Unlocked {
			out = append(out, b)
		}
	}

	return out
}
