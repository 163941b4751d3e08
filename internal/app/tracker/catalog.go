package tracker

import (
	"sort"

	"github.com/vitalog/vita/internal/domain"
)

// Catalog returns the full achievement catalog, ordered by ID. The catalog
// is fixed at build time; changing it is a deploy-time operation. IDs are
// stable across versions — persisted unlock state is merged by ID.
func Catalog() []domain.AchievementDefinition {
	defs := make([]domain.AchievementDefinition, len(catalog))
	copy(defs, catalog)
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// CatalogByCategory returns the catalog entries in one category, ordered by ID.
func CatalogByCategory(cat domain.AchievementCategory) []domain.AchievementDefinition {
	var defs []domain.AchievementDefinition
	for _, d := range Catalog() {
		if d.Category == cat {
			defs = append(defs, d)
		}
	}
	return defs
}

// CatalogByRarity returns the catalog entries of one rarity, ordered by ID.
func CatalogByRarity(r domain.Rarity) []domain.AchievementDefinition {
	var defs []domain.AchievementDefinition
	for _, d := range Catalog() {
		if d.Rarity == r {
			defs = append(defs, d)
		}
	}
	return defs
}

// catalog holds the definitions grouped by category for readability.
// Catalog() re-sorts by ID for the stable evaluation order.
var catalog = []domain.AchievementDefinition{
	// ── Health ─────────────────────────────────────────────────────────
	{
		ID: "first_water", Title: "Hydrated", Icon: "💧",
		Description: "Drink 2 liters of water in a single day",
		Category:    domain.CatHealth, Rarity: domain.RarityCommon,
		MetricKey: domain.BestDayKey(domain.Water), Threshold: 2000,
	},
	{
		ID: "hydration_master", Title: "Hydration Master", Icon: "🏆",
		Description: "5 days in a row with 2+ liters of water",
		Category:    domain.CatHealth, Rarity: domain.RarityRare,
		MetricKey: domain.StreakKey(domain.Water), Threshold: 5,
	},
	{
		ID: "water_expert", Title: "Deep Water", Icon: "🌊",
		Description: "Drink 100 liters of water all-time",
		Category:    domain.CatHealth, Rarity: domain.RarityEpic,
		MetricKey: domain.TotalKey(domain.Water), Threshold: 100000,
	},
	{
		ID: "first_sleep", Title: "Good Night", Icon: "🌙",
		Description: "Sleep 8 hours in a night for the first time",
		Category:    domain.CatHealth, Rarity: domain.RarityCommon,
		MetricKey: domain.BestDayKey(domain.Sleep), Threshold: 8,
	},
	{
		ID: "perfect_week_sleep", Title: "Well Rested", Icon: "⭐",
		Description: "7 nights in a row of 8+ hours",
		Category:    domain.CatHealth, Rarity: domain.RarityRare,
		MetricKey: domain.StreakKey(domain.Sleep), Threshold: 7,
	},
	{
		ID: "sleep_expert", Title: "Sleep Expert", Icon: "😴",
		Description: "100 hours of tracked sleep",
		Category:    domain.CatHealth, Rarity: domain.RarityEpic,
		MetricKey: domain.TotalKey(domain.Sleep), Threshold: 100,
	},
	{
		ID: "sleep_marathon", Title: "Sleep Marathon", Icon: "🌛",
		Description: "30 nights in a row of 8+ hours",
		Category:    domain.CatHealth, Rarity: domain.RarityLegendary,
		MetricKey: domain.StreakKey(domain.Sleep), Threshold: 30,
	},
	{
		ID: "first_nutrition", Title: "Food Detective", Icon: "🍽️",
		Description: "Log a meal for the first time",
		Category:    domain.CatHealth, Rarity: domain.RarityCommon,
		MetricKey: domain.CountKey(domain.Nutrition), Threshold: 1,
	},
	{
		ID: "meal_prep_master", Title: "Meal Prep Master", Icon: "👨‍🍳",
		Description: "Log 100 different foods",
		Category:    domain.CatHealth, Rarity: domain.RarityLegendary,
		MetricKey: domain.DistinctKey(domain.Nutrition), Threshold: 100,
	},

	// ── Fitness ────────────────────────────────────────────────────────
	{
		ID: "first_workout", Title: "Off the Couch", Icon: "💪",
		Description: "Finish your first workout",
		Category:    domain.CatFitness, Rarity: domain.RarityCommon,
		MetricKey: domain.CountKey(domain.Workout), Threshold: 1,
	},
	{
		ID: "streak_7", Title: "Unbroken", Icon: "🔥",
		Description: "7 days in a row with a workout",
		Category:    domain.CatFitness, Rarity: domain.RarityRare,
		MetricKey: domain.StreakKey(domain.Workout), Threshold: 7,
	},
	{
		ID: "endurance_1000", Title: "Endurance", Icon: "🏃",
		Description: "1000 minutes of training all-time",
		Category:    domain.CatFitness, Rarity: domain.RarityRare,
		MetricKey: domain.TotalKey(domain.Workout), Threshold: 1000,
	},
	{
		ID: "iron_man", Title: "Iron Man", Icon: "🦾",
		Description: "Try 10 different workout types",
		Category:    domain.CatFitness, Rarity: domain.RarityEpic,
		MetricKey: domain.DistinctKey(domain.Workout), Threshold: 10,
	},
	{
		ID: "fitness_pro", Title: "Fitness Pro", Icon: "🏅",
		Description: "Finish 100 workouts",
		Category:    domain.CatFitness, Rarity: domain.RarityEpic,
		MetricKey: domain.CountKey(domain.Workout), Threshold: 100,
	},

	// ── Mind ───────────────────────────────────────────────────────────
	{
		ID: "first_mood", Title: "Check-In", Icon: "😊",
		Description: "Log your mood for the first time",
		Category:    domain.CatMind, Rarity: domain.RarityCommon,
		MetricKey: domain.CountKey(domain.Mood), Threshold: 1,
	},
	{
		ID: "happy_day", Title: "Happy Day", Icon: "😍",
		Description: "Log a perfect 5/5 mood",
		Category:    domain.CatMind, Rarity: domain.RarityCommon,
		MetricKey: domain.MetricMoodPeak, Threshold: 5,
	},
	{
		ID: "positive_week", Title: "Positive Week", Icon: "🌈",
		Description: "7 days in a row with mood 4+",
		Category:    domain.CatMind, Rarity: domain.RarityRare,
		MetricKey: domain.StreakKey(domain.Mood), Threshold: 7,
	},
	{
		ID: "emotional_explorer", Title: "Emotional Explorer", Icon: "🎭",
		Description: "Use all 5 mood levels",
		Category:    domain.CatMind, Rarity: domain.RarityRare,
		MetricKey: domain.DistinctKey(domain.Mood), Threshold: 5,
	},
	{
		ID: "mindful_month", Title: "Mindful Month", Icon: "🧠",
		Description: "30 mood entries",
		Category:    domain.CatMind, Rarity: domain.RarityEpic,
		MetricKey: domain.CountKey(domain.Mood), Threshold: 30,
	},

	// ── Dedication ─────────────────────────────────────────────────────
	{
		ID: "week_streak", Title: "Habit Forming", Icon: "📅",
		Description: "7 days in a row of tracking",
		Category:    domain.CatDedication, Rarity: domain.RarityCommon,
		MetricKey: domain.MetricActivityStreak, Threshold: 7,
	},
	{
		ID: "month_streak", Title: "Habit Formed", Icon: "📆",
		Description: "30 days in a row of tracking",
		Category:    domain.CatDedication, Rarity: domain.RarityRare,
		MetricKey: domain.MetricActivityStreak, Threshold: 30,
	},
	{
		ID: "four_seasons", Title: "Four Seasons", Icon: "🍂",
		Description: "90 days in a row of tracking",
		Category:    domain.CatDedication, Rarity: domain.RarityLegendary,
		MetricKey: domain.MetricActivityStreak, Threshold: 90,
	},
	{
		ID: "health_guru", Title: "Health Guru", Icon: "🎓",
		Description: "100 days of tracking all-time",
		Category:    domain.CatDedication, Rarity: domain.RarityLegendary,
		MetricKey: domain.MetricActivityDays, Threshold: 100,
	},
	{
		ID: "perfect_day", Title: "Perfect Day", Icon: "👑",
		Description: "Hit the sleep, water, workout and mood goals in a single day",
		Category:    domain.CatDedication, Rarity: domain.RarityLegendary,
		MetricKey: domain.MetricPerfectDays, Threshold: 1,
	},

	// ── Special ────────────────────────────────────────────────────────
	{
		ID: "weekend_warrior", Title: "Weekend Warrior", Icon: "🎪",
		Description: "Work out only on weekends for 4 weeks straight",
		Category:    domain.CatSpecial, Rarity: domain.RarityRare,
		MetricKey: domain.MetricWeekendWeeks, Threshold: 4,
	},
	{
		ID: "first_achievement", Title: "Collector", Icon: "🎉",
		Description: "Unlock your first achievement",
		Category:    domain.CatSpecial, Rarity: domain.RarityCommon,
		MetricKey: domain.MetricUnlockedCount, Threshold: 1,
	},
	{
		ID: "halfway_there", Title: "Halfway There", Icon: "🎪",
		Description: "Unlock 50% of all achievements",
		Category:    domain.CatSpecial, Rarity: domain.RarityEpic,
		MetricKey: domain.MetricUnlockedPct, Threshold: 50,
	},
	{
		ID: "completionist", Title: "Completionist", Icon: "🏆",
		Description: "Unlock every achievement",
		Category:    domain.CatSpecial, Rarity: domain.RarityLegendary,
		MetricKey: domain.MetricUnlockedPct, Threshold: 100,
	},
}
