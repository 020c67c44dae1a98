package domain

import (
	"time"
)

// State is derived from the submission flag and the presence of a mark.
// Grading is deliberately not gated on submission, so a Draft assignment
// can jump straight to Graded.
type State string

const (
	StateDraft     State = "draft"
	StateSubmitted State = "submitted"
	StateGraded    State = "graded"
)

type Assignment struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	TotalScore    float64   `json:"totalScore"`
	DueDate       time.Time `json:"dueDate"`
	UserID        int64     `json:"userId"`
	IsSubmitted   bool      `json:"isSubmitted"`
	MarksObtained *float64  `json:"marksObtained"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a *Assignment) State() State {
	switch {
	case a.MarksObtained != nil:
		return StateGraded
	case a.IsSubmitted:
		return StateSubmitted
	default:
		return StateDraft
	}
}
