package adapters

import "sync"

// AchievementRule evaluates one typed event and reports whether it unlocks
// its id for the acting player. Kept as a predicate over (eventType, data)
// rather than a virtual dispatch table, matching the perk/ability hook-
// point style used throughout the core.
type AchievementRule struct {
	ID          string
	Display     string
	EventType   string
	Predicate   func(data map[string]any) bool
}

// AchievementChecker is a rule-based, in-memory achievement evaluator. It
// tracks which ids each player has already unlocked so a rule never fires
// twice.
type AchievementChecker struct {
	mu      sync.Mutex
	rules   []AchievementRule
	unlocked map[string]map[string]bool // name -> id -> true
}

// NewAchievementChecker builds a checker over the default rule set.
func NewAchievementChecker() *AchievementChecker {
	return &AchievementChecker{
		rules:    defaultRules(),
		unlocked: make(map[string]map[string]bool),
	}
}

func defaultRules() []AchievementRule {
	return []AchievementRule{
		{
			ID: "first_win", Display: "First Victory", EventType: "game_finished",
			Predicate: func(data map[string]any) bool {
				won, _ := data["won"].(bool)
				return won
			},
		},
		{
			ID: "finisher", Display: "Crossed the Line", EventType: "game_finished",
			Predicate: func(data map[string]any) bool {
				pos, _ := data["position"].(int)
				return pos >= 75
			},
		},
		{
			ID: "ability_adept", Display: "Ability Adept", EventType: "ability_used",
			Predicate: func(data map[string]any) bool {
				count, _ := data["abilities_used"].(int)
				return count >= 10
			},
		},
		{
			ID: "demolitionist", Display: "Demolitionist", EventType: "special_tile",
			Predicate: func(data map[string]any) bool {
				kind, _ := data["tile_kind"].(string)
				return kind == "mine"
			},
		},
		{
			ID: "high_roller", Display: "High Roller", EventType: "dice_rolled",
			Predicate: func(data map[string]any) bool {
				sixes, _ := data["consecutive_sixes"].(int)
				return sixes >= 3
			},
		},
		{
			ID: "host", Display: "Host With the Most", EventType: "room_created",
			Predicate: func(map[string]any) bool { return true },
		},
	}
}

// Check evaluates every rule matching eventType against data for name,
// returning the ids newly unlocked (a rule already unlocked for name is
// skipped).
func (c *AchievementChecker) Check(name, eventType string, data map[string]any) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := c.unlocked[name]
	if seen == nil {
		seen = make(map[string]bool)
		c.unlocked[name] = seen
	}

	var newly []string
	for _, rule := range c.rules {
		if rule.EventType != eventType || seen[rule.ID] {
			continue
		}
		if rule.Predicate(data) {
			seen[rule.ID] = true
			newly = append(newly, rule.ID)
		}
	}
	return newly
}

// Info returns the display name for an unlocked achievement id.
func (c *AchievementChecker) Info(id string) (string, bool) {
	for _, rule := range c.rules {
		if rule.ID == id {
			return rule.Display, true
		}
	}
	return "", false
}
