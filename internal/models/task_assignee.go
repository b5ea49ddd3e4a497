package models

// TaskAssignee is the join row linking a task to an assigned user.
// The composite primary key keeps a (task, user) pair unique.
type TaskAssignee struct {
	TaskID string `gorm:"type:uuid;primarykey;index" json:"task_id"`
	UserID string `gorm:"type:uuid;primarykey;index" json:"user_id"`
}

func (TaskAssignee) TableName() string {
	return "task_assignees"
}
