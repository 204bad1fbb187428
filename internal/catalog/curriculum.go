package catalog

// LessonType distinguishes how a lesson is delivered.
type LessonType string

const (
	LessonVideo   LessonType = "video"
	LessonText    LessonType = "text"
	LessonProject LessonType = "project"
)

// Lesson is one unit inside a module.
type Lesson struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Type  LessonType `json:"type"`
}

// Module is one week of a program's curriculum.
type Module struct {
	ID          string   `json:"id"`
	Week        int      `json:"week"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Lessons     []Lesson `json:"lessons"`
}

// Curriculum modules keyed by title; each program's module list selects
// from this pool.
var modulePool = map[string]Module{
	"AI Fundamentals & Tool Mastery": {
		ID:          "1",
		Title:       "AI Fundamentals & Tool Mastery",
		Description: "Learn the basics of AI tools and how to use them effectively",
		Duration:    "3 hours",
		Lessons: []Lesson{
			{ID: "1-1", Title: "What is AI & Why It Matters", Type: LessonVideo},
			{ID: "1-2", Title: "ChatGPT, Claude & Gemini Comparison", Type: LessonText},
			{ID: "1-3", Title: "Your First AI Prompt Exercise", Type: LessonProject},
		},
	},
	"Prompting Like a Pro": {
		ID:          "2",
		Title:       "Prompting Like a Pro",
		Description: "Master the art of writing effective prompts",
		Duration:    "3.5 hours",
		Lessons: []Lesson{
			{ID: "2-1", Title: "Prompt Engineering Fundamentals", Type: LessonVideo},
			{ID: "2-2", Title: "Templates & Frameworks", Type: LessonText},
			{ID: "2-3", Title: "Real-World Prompt Project", Type: LessonProject},
		},
	},
	"Automation & Workflows": {
		ID:          "3",
		Title:       "Automation & Workflows",
		Description: "Automate repetitive tasks using AI",
		Duration:    "4 hours",
		Lessons: []Lesson{
			{ID: "3-1", Title: "Zapier & Make.com Basics", Type: LessonVideo},
			{ID: "3-2", Title: "Building Your First Workflow", Type: LessonProject},
		},
	},
	"Your Income Project": {
		ID:          "4",
		Title:       "Your Income Project",
		Description: "Apply everything to create a real money-making project",
		Duration:    "5 hours",
		Lessons: []Lesson{
			{ID: "4-1", Title: "Income Opportunities Overview", Type: LessonText},
			{ID: "4-2", Title: "Launch Your Project", Type: LessonProject},
			{ID: "4-3", Title: "Track & Scale Results", Type: LessonText},
		},
	},
	"Content Creation with AI": {
		ID:          "5",
		Title:       "Content Creation with AI",
		Description: "Produce written, visual, and video content at scale",
		Duration:    "4 hours",
		Lessons: []Lesson{
			{ID: "5-1", Title: "AI Writing Workflows", Type: LessonVideo},
			{ID: "5-2", Title: "Image & Video Generation Tools", Type: LessonText},
			{ID: "5-3", Title: "Publish a Content Series", Type: LessonProject},
		},
	},
	"Business Automation": {
		ID:          "6",
		Title:       "Business Automation",
		Description: "Wire AI into end-to-end business processes",
		Duration:    "4.5 hours",
		Lessons: []Lesson{
			{ID: "6-1", Title: "Mapping Processes Worth Automating", Type: LessonText},
			{ID: "6-2", Title: "Agents & Integrations", Type: LessonVideo},
			{ID: "6-3", Title: "Automate One Business Process", Type: LessonProject},
		},
	},
	"Advanced Income Projects": {
		ID:          "7",
		Title:       "Advanced Income Projects",
		Description: "Ship a portfolio of income-generating AI projects",
		Duration:    "6 hours",
		Lessons: []Lesson{
			{ID: "7-1", Title: "Choosing Your Niche", Type: LessonText},
			{ID: "7-2", Title: "Build & Launch", Type: LessonProject},
			{ID: "7-3", Title: "Scaling & Alumni Case Studies", Type: LessonVideo},
		},
	},
}

// CurriculumFor returns the ordered module list for a program, or nil for
// an unknown program ID. Week numbers follow the program's own ordering.
func CurriculumFor(programID string) []Module {
	p, ok := ByID(programID)
	if !ok {
		return nil
	}

	out := make([]Module, 0, len(p.Modules))
	for i, title := range p.Modules {
		m, ok := modulePool[title]
		if !ok {
			continue
		}
		m.Week = i + 1
		out = append(out, m)
	}
	return out
}
