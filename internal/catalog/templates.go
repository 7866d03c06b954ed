package catalog

// Template is a named combination of folder layout, features and plugins.
type Template struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Folders     []string `json:"folders"`
	Features    []string `json:"features"`
}

func (t Template) clone() Template {
	t.Folders = append([]string(nil), t.Folders...)
	t.Features = append([]string(nil), t.Features...)
	return t
}

// builtinTemplates is the registry in declaration order.
var builtinTemplates = []Template{
	{
		Key:         "minimal",
		Name:        "Minimal Starter",
		Description: "Clean start with basic folder structure",
		Folders:     []string{"notes", "daily", "attachments", "Readwise"},
		Features:    []string{"Simple daily notes", "Basic folder organization", "Readwise integration"},
	},
	{
		Key:         "pkm",
		Name:        "Personal Knowledge Management",
		Description: "PARA method with MOCs and linked notes",
		Folders: []string{
			"1-Projects", "2-Areas", "3-Resources", "4-Archive", "daily-notes", "templates",
			"attachments", "Readwise/Books", "Readwise/Articles", "Readwise/Podcasts",
		},
		Features: []string{"PARA method", "Maps of Content", "Daily notes", "Weekly reviews", "Readwise sync"},
	},
	{
		Key:         "research",
		Name:        "Academic Research",
		Description: "Literature notes, citations, and thesis management",
		Folders:     []string{"literature-notes", "permanent-notes", "projects", "bibliography", "drafts", "templates", "attachments"},
		Features:    []string{"Zettelkasten-style notes", "Citation management", "Literature reviews", "Academic writing"},
	},
	{
		Key:         "zettelkasten",
		Name:        "Zettelkasten",
		Description: "Atomic notes with unique IDs and emergence tracking",
		Folders:     []string{"fleeting", "literature", "permanent", "index", "attachments"},
		Features:    []string{"Unique note IDs", "Atomic notes", "Strict linking", "Emergence patterns"},
	},
	{
		Key:         "project",
		Name:        "Project Management",
		Description: "Tasks, sprints, and team collaboration",
		Folders:     []string{"projects", "tasks", "meetings", "documentation", "reviews", "templates", "attachments"},
		Features:    []string{"Kanban boards", "Sprint planning", "Meeting notes", "Project dashboards"},
	},
	{
		Key:         "journaling",
		Name:        "Daily Journaling",
		Description: "Reflection, gratitude, and personal growth",
		Folders:     []string{"journal", "gratitude", "goals", "reflections", "dreams", "attachments"},
		Features:    []string{"Daily prompts", "Mood tracking", "Goal setting", "Weekly reviews"},
	},
	{
		Key:         "technical",
		Name:        "Technical Documentation",
		Description: "API docs, architecture, and code snippets",
		Folders:     []string{"apis", "architecture", "guides", "troubleshooting", "changelog", "snippets", "diagrams", "attachments"},
		Features:    []string{"Code blocks", "Mermaid diagrams", "API references", "Architecture decisions"},
	},
	{
		Key:         "creative",
		Name:        "Creative Writing",
		Description: "Characters, worldbuilding, and story drafts",
		Folders:     []string{"characters", "worldbuilding", "scenes", "drafts", "research", "ideas", "attachments"},
		Features:    []string{"Character sheets", "World maps", "Scene tracking", "Story structure"},
	},
	{
		Key:         "gtd",
		Name:        "Getting Things Done",
		Description: "GTD methodology with contexts and reviews",
		Folders:     []string{"inbox", "next-actions", "projects", "waiting-for", "someday-maybe", "reference", "attachments"},
		Features:    []string{"GTD workflow", "Context tags", "Weekly reviews", "Quick capture"},
	},
	{
		Key:         "business",
		Name:        "Business/Startup",
		Description: "Strategy, customers, and metrics tracking",
		Folders:     []string{"strategy", "customers", "competitors", "metrics", "meetings", "ideas", "attachments"},
		Features:    []string{"Business model canvas", "Customer interviews", "KPI tracking", "Competitive analysis"},
	},
	{
		Key:         "content",
		Name:        "Content Creation",
		Description: "Blog posts, videos, and content calendar",
		Folders:     []string{"ideas", "drafts", "published", "research", "assets", "calendar", "attachments"},
		Features:    []string{"Content pipeline", "Editorial calendar", "SEO optimization", "Publishing workflow"},
	},
	{
		Key:         "learning",
		Name:        "Learning & Study",
		Description: "Courses, flashcards, and knowledge testing",
		Folders:     []string{"courses", "flashcards", "practice", "resources", "progress", "notes", "attachments"},
		Features:    []string{"Spaced repetition", "Course notes", "Practice problems", "Progress tracking"},
	},
}
