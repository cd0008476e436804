package routes

import (
	"github.com/yigit/extension-registry/internal/app/controllers"
)

// Controllers groups the controllers the menu tree dispatches to
type Controllers struct {
	Student      *controllers.StudentController
	Professor    *controllers.ProfessorController
	Project      *controllers.ProjectController
	InterestArea *controllers.InterestAreaController
	Report       *controllers.ReportController
	Assistant    *controllers.AssistantController
	Admin        *controllers.AdminController
}

// NewMainMenu builds the full menu tree
func NewMainMenu(c Controllers) *Menu {
	students := &Menu{
		Title: "Students",
		Items: []Item{
			{Label: "Create student", Action: c.Student.Create},
			{Label: "Show student", Action: c.Student.Get},
			{Label: "List students", Action: c.Student.List},
			{Label: "Update student", Action: c.Student.Update},
			{Label: "Delete student", Action: c.Student.Delete},
		},
	}

	professors := &Menu{
		Title: "Professors",
		Items: []Item{
			{Label: "Create professor", Action: c.Professor.Create},
			{Label: "Show professor", Action: c.Professor.Get},
			{Label: "List professors", Action: c.Professor.List},
			{Label: "Update professor", Action: c.Professor.Update},
			{Label: "Delete professor", Action: c.Professor.Delete},
		},
	}

	projects := &Menu{
		Title: "Projects",
		Items: []Item{
			{Label: "Create project", Action: c.Project.Create},
			{Label: "Show project", Action: c.Project.Get},
			{Label: "List projects", Action: c.Project.List},
			{Label: "List projects by advisor", Action: c.Project.ListByAdvisor},
			{Label: "Update project", Action: c.Project.Update},
			{Label: "Delete project", Action: c.Project.Delete},
			{Label: "Enroll student", Action: c.Project.Enroll},
			{Label: "Withdraw student", Action: c.Project.Withdraw},
			{Label: "Assign interest area", Action: c.Project.AssignArea},
			{Label: "Open vacancy", Action: c.Project.OpenVacancy},
		},
	}

	areas := &Menu{
		Title: "Interest areas",
		Items: []Item{
			{Label: "Create interest area", Action: c.InterestArea.Create},
			{Label: "List interest areas", Action: c.InterestArea.List},
		},
	}

	crud := &Menu{
		Title: "Manage records",
		Items: []Item{
			{Label: "Students", Submenu: students},
			{Label: "Professors", Submenu: professors},
			{Label: "Projects", Submenu: projects},
			{Label: "Interest areas", Submenu: areas},
		},
	}

	reports := &Menu{
		Title: "Reports",
		Items: []Item{
			{Label: "Area popularity by student engagement", Action: c.Report.AreaPopularity},
			{Label: "Professors by active advising load", Action: c.Report.AdvisorRanking},
			{Label: "Open positions by project", Action: c.Report.OpenVacancies},
			{Label: "Projects per advisor", Action: c.Report.ProjectsPerAdvisor},
			{Label: "All reports", Action: c.Report.All},
		},
	}

	assistant := &Menu{
		Title: "AI assistant",
		Items: []Item{
			{Label: "Suggest projects for a student and professor", Action: c.Assistant.SuggestWithProfessor},
			{Label: "Suggest themes and advisors for a student", Action: c.Assistant.DiscoverAdvisors},
			{Label: "Ask a question in plain language", Action: c.Assistant.AskSQL},
		},
	}

	return &Menu{
		Title:     "Extension Project Registry",
		LeaveText: "Exit",
		Items: []Item{
			{Label: "Manage records", Submenu: crud},
			{Label: "Reports", Submenu: reports},
			{Label: "AI assistant", Submenu: assistant},
			{Label: "Create schema", Action: c.Admin.CreateSchema},
			{Label: "Seed sample data", Action: c.Admin.Seed},
			{Label: "Drop all tables", Action: c.Admin.DropAll},
		},
	}
}
