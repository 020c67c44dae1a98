package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	teacher := &User{ID: 1, Username: "teacher", Role: RoleTeacher}
	student := &User{ID: 2, Username: "student", Role: RoleStudent}
	assignment := &Assignment{ID: 10, TotalScore: 100, UserID: teacher.ID}

	tests := []struct {
		name       string
		actor      *User
		op         Operation
		tgt        Target
		allowed    bool
		wantReason string
	}{
		{name: "teacher lists", actor: teacher, op: OpListAssignments, allowed: true},
		{name: "student lists", actor: student, op: OpListAssignments, allowed: true},
		{name: "student reads", actor: student, op: OpGetAssignment, tgt: Target{Assignment: assignment}, allowed: true},

		{name: "teacher creates for another account", actor: teacher, op: OpCreateAssignment, tgt: Target{AssigneeID: 3}, allowed: true},
		{name: "teacher creates for self", actor: teacher, op: OpCreateAssignment, tgt: Target{AssigneeID: teacher.ID}, allowed: false, wantReason: "Unauthorized"},
		{name: "student creates", actor: student, op: OpCreateAssignment, tgt: Target{AssigneeID: 3}, allowed: false, wantReason: "Unauthorized"},

		{name: "teacher updates", actor: teacher, op: OpUpdateAssignment, tgt: Target{Assignment: assignment}, allowed: true},
		{name: "student updates", actor: student, op: OpUpdateAssignment, tgt: Target{Assignment: assignment}, allowed: false, wantReason: "Unauthorized to update assignment"},

		{name: "teacher deletes", actor: teacher, op: OpDeleteAssignment, tgt: Target{Assignment: assignment}, allowed: true},
		{name: "student deletes", actor: student, op: OpDeleteAssignment, tgt: Target{Assignment: assignment}, allowed: false, wantReason: "Unauthorized to delete assignment"},

		{name: "student submits", actor: student, op: OpSubmitAssignment, tgt: Target{Assignment: assignment}, allowed: true},
		{name: "teacher submits", actor: teacher, op: OpSubmitAssignment, tgt: Target{Assignment: assignment}, allowed: false, wantReason: "Unauthorized to submit assignment"},

		{name: "teacher marks within total", actor: teacher, op: OpMarkAssignment, tgt: Target{Assignment: assignment, Marks: 60}, allowed: true},
		{name: "teacher marks exactly the total", actor: teacher, op: OpMarkAssignment, tgt: Target{Assignment: assignment, Marks: 100}, allowed: true},
		{name: "teacher marks above the total", actor: teacher, op: OpMarkAssignment, tgt: Target{Assignment: assignment, Marks: 100.5}, allowed: false, wantReason: "Unauthorized to mark assignment"},
		{name: "student marks", actor: student, op: OpMarkAssignment, tgt: Target{Assignment: assignment, Marks: 60}, allowed: false, wantReason: "Unauthorized to mark assignment"},

		{name: "teacher views report", actor: teacher, op: OpViewReport, allowed: true},
		{name: "student views report", actor: student, op: OpViewReport, allowed: false, wantReason: "Unauthorized"},

		{name: "unknown operation", actor: teacher, op: Operation("drop_tables"), allowed: false, wantReason: "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.actor, tt.op, tt.tgt)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.wantReason, decision.Reason)
			} else {
				assert.Empty(t, decision.Reason)
			}
		})
	}
}
