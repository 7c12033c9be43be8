package types

const ContextUserKey = "user"

const (
	RoleAdmin          = "Admin"
	RoleProjectManager = "Project Manager"
	RoleTeamMember     = "Team Member"
)

const (
	TaskNotStarted = "not-started"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)
