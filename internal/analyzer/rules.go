package analyzer

import "github.com/starford/vaultboot/internal/models"

// MinHotkeys is the hotkey count below which more bindings are recommended.
const MinHotkeys = 5

// WorkflowRules are evaluated in this order.
var WorkflowRules = []Rule[models.WorkflowPattern]{
	dailyNotesWorkflow,
	zettelkastenWorkflow,
	taskManagementWorkflow,
}

// RecommendationRules are evaluated in this order.
var RecommendationRules = []Rule[string]{
	moreHotkeys,
	templatePlugin,
	graphView,
}

func dailyNotesWorkflow(f Facts) (models.WorkflowPattern, bool) {
	if !f.CoreEnabled("daily-notes") {
		return models.WorkflowPattern{}, false
	}
	return models.WorkflowPattern{
		Name:        "Daily Notes Workflow",
		Description: "Daily journaling and task management",
		Steps: []string{
			"Create daily note with configured template",
			"Review yesterday's tasks",
			"Plan today's activities",
			"Link to relevant projects/notes",
		},
	}, true
}

func zettelkastenWorkflow(f Facts) (models.WorkflowPattern, bool) {
	if !f.HasPlugin("obsidian-zettelkasten-plugin", "obsidian-citation-plugin") {
		return models.WorkflowPattern{}, false
	}
	return models.WorkflowPattern{
		Name:        "Zettelkasten Workflow",
		Description: "Academic note-taking with atomic notes",
		Steps: []string{
			"Create atomic notes with unique IDs",
			"Link notes bidirectionally",
			"Build index/structure notes",
			"Regular review for emergence",
		},
	}, true
}

func taskManagementWorkflow(f Facts) (models.WorkflowPattern, bool) {
	if !f.HasPlugin("obsidian-tasks-plugin", "obsidian-kanban") {
		return models.WorkflowPattern{}, false
	}
	return models.WorkflowPattern{
		Name:        "Task Management Workflow",
		Description: "GTD-style task and project management",
		Steps: []string{
			"Capture tasks in daily notes",
			"Process into project files",
			"Review in kanban boards",
			"Archive completed items",
		},
	}, true
}

func moreHotkeys(f Facts) (string, bool) {
	return "Consider setting up more hotkeys for frequently used commands", len(f.Hotkeys) < MinHotkeys
}

func templatePlugin(f Facts) (string, bool) {
	return "Install Templater or QuickAdd for powerful note templates", !f.HasPlugin("templater-obsidian", "quickadd")
}

func graphView(f Facts) (string, bool) {
	return "Enable the Graph view to visualize note connections", !f.CoreEnabled("graph")
}
