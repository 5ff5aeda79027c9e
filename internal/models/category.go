package models

type ChallengeCategory string

const (
	CategoryExercise ChallengeCategory = "exercise"
	CategoryWriting  ChallengeCategory = "writing"
	CategoryWork     ChallengeCategory = "work"
	CategoryFood     ChallengeCategory = "food"
	CategoryFun      ChallengeCategory = "fun"
)

// CategoryCount is the number of challenge categories. Category goal
// averages always divide by this fixed count, not by the number of
// categories a user actually attempted.
const CategoryCount = 5

type CategoryConfig struct {
	ID          ChallengeCategory `json:"id"`
	Name        string            `json:"name"`
	KoreanName  string            `json:"korean_name"`
	Icon        string            `json:"icon"`
	Emoji       string            `json:"emoji"`
	MonthlyGoal int               `json:"monthly_goal"`
	Color       string            `json:"color"`
	Description string            `json:"description"`
}

var categoryConfigs = [CategoryCount]CategoryConfig{
	{
		ID:          CategoryExercise,
		Name:        "Exercise",
		KoreanName:  "운동",
		Icon:        "Dumbbell",
		Emoji:       "🏃",
		MonthlyGoal: 7,
		Color:       "#FF6B6B",
		Description: "건강한 몸과 마음을 위한 운동 챌린지",
	},
	{
		ID:          CategoryWriting,
		Name:        "Writing",
		KoreanName:  "글쓰기",
		Icon:        "PenTool",
		Emoji:       "✍️",
		MonthlyGoal: 7,
		Color:       "#4ECDC4",
		Description: "생각을 정리하고 표현하는 글쓰기 챌린지",
	},
	{
		ID:          CategoryWork,
		Name:        "Work",
		KoreanName:  "작업",
		Icon:        "Briefcase",
		Emoji:       "💼",
		MonthlyGoal: 7,
		Color:       "#45B7D1",
		Description: "전문성 향상과 생산성을 위한 작업 챌린지",
	},
	{
		ID:          CategoryFood,
		Name:        "Food",
		KoreanName:  "맛집",
		Icon:        "UtensilsCrossed",
		Emoji:       "🍽️",
		MonthlyGoal: 7,
		Color:       "#96CEB4",
		Description: "새로운 맛과 경험을 위한 맛집 탐방 챌린지",
	},
	{
		ID:          CategoryFun,
		Name:        "Fun",
		KoreanName:  "놀기",
		Icon:        "Gamepad2",
		Emoji:       "🎮",
		MonthlyGoal: 3,
		Color:       "#FFEAA7",
		Description: "재충전과 즐거움을 위한 놀기 챌린지",
	},
}

// GetCategoryConfig looks up the static config for a category. The five
// identifiers are a closed enumeration; unknown values return the zero
// config and callers are expected to validate with IsValidCategory first.
func GetCategoryConfig(category ChallengeCategory) CategoryConfig {
	for _, cfg := range categoryConfigs {
		if cfg.ID == category {
			return cfg
		}
	}
	return CategoryConfig{}
}

// AllCategories returns the five category configs in fixed, stable order.
func AllCategories() []CategoryConfig {
	out := make([]CategoryConfig, CategoryCount)
	copy(out, categoryConfigs[:])
	return out
}

func IsValidCategory(category ChallengeCategory) bool {
	switch category {
	case CategoryExercise, CategoryWriting, CategoryWork, CategoryFood, CategoryFun:
		return true
	}
	return false
}

// CategoryCounts holds one integer per category. A fixed struct rather
// than a map keeps exhaustiveness over the five categories checked at
// compile time.
type CategoryCounts struct {
	Exercise int `json:"exercise"`
	Writing  int `json:"writing"`
	Work     int `json:"work"`
	Food     int `json:"food"`
	Fun      int `json:"fun"`
}

func (c *CategoryCounts) Inc(category ChallengeCategory) {
	switch category {
	case CategoryExercise:
		c.Exercise++
	case CategoryWriting:
		c.Writing++
	case CategoryWork:
		c.Work++
	case CategoryFood:
		c.Food++
	case CategoryFun:
		c.Fun++
	}
}

func (c CategoryCounts) Get(category ChallengeCategory) int {
	switch category {
	case CategoryExercise:
		return c.Exercise
	case CategoryWriting:
		return c.Writing
	case CategoryWork:
		return c.Work
	case CategoryFood:
		return c.Food
	case CategoryFun:
		return c.Fun
	}
	return 0
}

// CategoryPercentages mirrors CategoryCounts for percentage-of-goal
// values. No rounding is applied; presentation rounds where needed.
type CategoryPercentages struct {
	Exercise float64 `json:"exercise"`
	Writing  float64 `json:"writing"`
	Work     float64 `json:"work"`
	Food     float64 `json:"food"`
	Fun      float64 `json:"fun"`
}

func (p *CategoryPercentages) Set(category ChallengeCategory, value float64) {
	switch category {
	case CategoryExercise:
		p.Exercise = value
	case CategoryWriting:
		p.Writing = value
	case CategoryWork:
		p.Work = value
	case CategoryFood:
		p.Food = value
	case CategoryFun:
		p.Fun = value
	}
}

func (p CategoryPercentages) Get(category ChallengeCategory) float64 {
	switch category {
	case CategoryExercise:
		return p.Exercise
	case CategoryWriting:
		return p.Writing
	case CategoryWork:
		return p.Work
	case CategoryFood:
		return p.Food
	case CategoryFun:
		return p.Fun
	}
	return 0
}

// Sum adds the five percentages. Used for overall ranking averages.
func (p CategoryPercentages) Sum() float64 {
	return p.Exercise + p.Writing + p.Work + p.Food + p.Fun
}
