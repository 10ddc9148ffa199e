package main

// Bundled sample data shown whenever live data is unavailable: outside the
// host environment, on remote failures, and while the widget is not yet
// bound to a table. Shapes mirror what the Bitable endpoints return.

func sampleRows() []rowRecord {
	return []rowRecord{
		{rowIDKey: "rec_1", "name": "Project kickoff", "date": "2024-01-15", "group": "Requirements", "description": "Project formally started; scope and goals agreed", "status": "completed"},
		{rowIDKey: "rec_2", "name": "Requirements review", "date": "2024-01-20", "group": "Requirements", "description": "Requirement documents reviewed and confirmed", "status": "completed"},
		{rowIDKey: "rec_3", "name": "Design sign-off", "date": "2024-02-10", "group": "Design", "description": "UI/UX and technical design completed", "status": "in_progress"},
		{rowIDKey: "rec_4", "name": "Development start", "date": "2024-02-15", "group": "Development", "description": "Frontend and backend work begins", "status": "in_progress"},
		{rowIDKey: "rec_5", "name": "Feature complete", "date": "2024-03-20", "group": "Development", "description": "All planned features implemented", "status": "pending"},
		{rowIDKey: "rec_6", "name": "Test pass begins", "date": "2024-03-25", "group": "Testing", "description": "Full regression and integration testing", "status": "pending"},
		{rowIDKey: "rec_7", "name": "Launch", "date": "2024-04-10", "group": "Release", "description": "Project goes live", "status": "pending"},
	}
}

// sampleItems is the canonical 7-entry set used when no table is bound yet.
// It exercises every optional item facet the renderer understands.
func sampleItems() []timelineItem {
	return []timelineItem{
		{
			ID: "1", Title: "Kickoff meeting", Description: "Agree on project goals and scope",
			Date: "2023-04-01", Group: "Planning", Status: statusCompleted, Priority: priorityHigh,
			Assignee: "Alex", Tags: []string{"meeting", "planning"},
		},
		{
			ID: "2", Title: "Requirements finalized", Description: "Detailed requirement document complete",
			Date: "2023-04-10", Group: "Planning", Status: statusCompleted, Priority: priorityHigh,
			Assignee: "Blake", Milestone: true, Tags: []string{"milestone", "requirements"},
		},
		{
			ID: "3", Title: "UI design review", Description: "Review the interface mockups",
			Date: "2023-04-15", Group: "Design", Status: statusInProgress, Priority: priorityMedium,
			Assignee: "Casey", Tags: []string{"design", "review"},
		},
		{
			ID: "4", Title: "Frontend build", Description: "Implement views and interaction logic",
			Date: "2023-04-20", Group: "Development", Status: statusInProgress, Priority: priorityHigh,
			Assignee: "Drew", Tags: []string{"development", "frontend"},
		},
		{
			ID: "5", Title: "Backend build", Description: "Implement the API and storage",
			Date: "2023-04-25", Group: "Development", Status: statusInProgress, Priority: priorityHigh,
			Assignee: "Emery", Tags: []string{"development", "backend"},
		},
		{
			ID: "6", Title: "Integration testing", Description: "Exercise the assembled system",
			Date: "2023-05-11", Group: "Testing", Status: statusPending, Priority: priorityMedium,
			Assignee: "Finley", Tags: []string{"testing", "integration"},
		},
		{
			ID: "7", Title: "Go-live", Description: "System enters production",
			Date: "2023-05-25", Group: "Operations", Status: statusPending, Priority: priorityHigh,
			Assignee: "Gray", Milestone: true, Tags: []string{"milestone", "launch"},
		},
	}
}

func sampleGroups() []string {
	return extractGroups(sampleItems())
}

func sampleTables() []tableDescriptor {
	return []tableDescriptor{
		{AppToken: "sample_app_token_1", TableID: "sample_table_id_1", TableName: "Project timeline"},
		{AppToken: "sample_app_token_2", TableID: "sample_table_id_2", TableName: "Task tracker"},
	}
}

func sampleFields() []fieldDescriptor {
	return []fieldDescriptor{
		{Name: "name", Type: "text"},
		{Name: "date", Type: "date"},
		{Name: "group", Type: "select"},
		{Name: "description", Type: "text"},
		{Name: "status", Type: "select"},
	}
}
