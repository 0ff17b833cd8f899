package models

import "time"

type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskDone    TaskStatus = "DONE"
	TaskLate    TaskStatus = "LATE"
)

type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  Ref        `json:"assignedTo"`
	AssignedBy  Ref        `json:"assignedBy"`
	Deadline    time.Time  `json:"deadline"`
	Status      TaskStatus `json:"status"`
}

// TaskInput is the payload for POST /tasks. Deadline is the raw date string
// from the form; the API parses it.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Deadline    string `json:"deadline"`
}

type TaskStatusUpdate struct {
	Status TaskStatus `json:"status"`
}
