package catalog

// Program is a static catalog entry. The catalog is immutable at runtime;
// cohorts reference programs by ID.
type Program struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Duration     string   `json:"duration"`
	DurationDays int      `json:"duration_days"`
	Price        float64  `json:"price"`
	PriceRange   string   `json:"price_range"`
	Description  string   `json:"description"`
	Tagline      string   `json:"tagline"`
	BestFor      string   `json:"best_for"`
	Features     []string `json:"features"`
	Modules      []string `json:"modules"`
	Category     string   `json:"category"`
	Popular      bool     `json:"popular,omitempty"`
}

const (
	ProgramQuickStart         = "quick-start"
	ProgramCoreMastery        = "core-mastery"
	ProgramDeepTransformation = "deep-transformation"
)

var programs = []Program{
	{
		ID:           ProgramQuickStart,
		Name:         "Quick Start",
		Duration:     "1 Week",
		DurationDays: 7,
		Price:        10,
		PriceRange:   "$7–$12",
		Description:  "Test the waters with AI basics",
		Tagline:      "Quick wins & confidence boost",
		BestFor:      "Busy professionals and curious beginners",
		Features: []string{
			"Quick wins & confidence boost",
			"Video tutorials & guides",
			"Beginner AI tools",
			"Certificate",
			"Lifetime access",
		},
		Modules:  []string{"AI Fundamentals & Tool Mastery"},
		Category: "beginner",
	},
	{
		ID:           ProgramCoreMastery,
		Name:         "Core Mastery",
		Duration:     "4 Weeks",
		DurationDays: 28,
		Price:        32,
		PriceRange:   "$25–$39",
		Description:  "Solid foundation + first projects",
		Tagline:      "Practical skills for daily use",
		BestFor:      "Professionals ready to level up",
		Features: []string{
			"Practical daily-use skills",
			"Hands-on projects",
			"Community access",
			"Private cohort group",
			"Certificate",
			"Lifetime access",
		},
		Modules: []string{
			"AI Fundamentals & Tool Mastery",
			"Prompting Like a Pro",
			"Automation & Workflows",
			"Your Income Project",
		},
		Category: "intermediate",
		Popular:  true,
	},
	{
		ID:           ProgramDeepTransformation,
		Name:         "Deep Transformation",
		Duration:     "12 Weeks",
		DurationDays: 84,
		Price:        84,
		PriceRange:   "$69–$99",
		Description:  "3x the depth, projects & mastery",
		Tagline:      "Advanced AI techniques & income growth",
		BestFor:      "Serious learners ready for deep mastery",
		Features: []string{
			"Advanced AI techniques",
			"Real-world income projects",
			"Weekly live Q&A",
			"Private cohort community",
			"Mentorship access",
			"Premium certificate",
			"Lifetime access",
			"Alumni network",
		},
		Modules: []string{
			"AI Fundamentals & Tool Mastery",
			"Prompting Like a Pro",
			"Automation & Workflows",
			"Content Creation with AI",
			"Business Automation",
			"Advanced Income Projects",
		},
		Category: "advanced",
	},
}

// Programs returns the full catalog in display order.
func Programs() []Program {
	out := make([]Program, len(programs))
	copy(out, programs)
	return out
}

// ByID looks up a program by its catalog ID.
func ByID(id string) (Program, bool) {
	for _, p := range programs {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}

// ValidProgramID reports whether id names a catalog program.
func ValidProgramID(id string) bool {
	_, ok := ByID(id)
	return ok
}

// ReferralTier maps a referral count to its reward.
type ReferralTier struct {
	Referrals int    `json:"referrals"`
	Bonus     string `json:"bonus"`
}

var referralTiers = []ReferralTier{
	{Referrals: 1, Bonus: "20% Off Next Program"},
	{Referrals: 4, Bonus: "30% Off Next Program"},
	{Referrals: 8, Bonus: "50% Off Next Program"},
	{Referrals: 15, Bonus: "Free Program"},
	{Referrals: 25, Bonus: "Free Program + $500 Credit"},
}

// ReferralTiers returns the reward ladder, ascending by referral count.
func ReferralTiers() []ReferralTier {
	out := make([]ReferralTier, len(referralTiers))
	copy(out, referralTiers)
	return out
}
