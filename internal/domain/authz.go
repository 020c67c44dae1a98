package domain

// Operation names every action a user can request against the
// assignment store.
type Operation string

const (
	OpListAssignments  Operation = "list_assignments"
	OpGetAssignment    Operation = "get_assignment"
	OpCreateAssignment Operation = "create_assignment"
	OpUpdateAssignment Operation = "update_assignment"
	OpDeleteAssignment Operation = "delete_assignment"
	OpSubmitAssignment Operation = "submit_assignment"
	OpMarkAssignment   Operation = "mark_assignment"
	OpViewReport       Operation = "view_report"
)

// Target carries the resource-side facts an authorization predicate may
// need. Fields are only read for the operations that use them.
type Target struct {
	// Assignment is the existing assignment being read or mutated.
	Assignment *Assignment
	// AssigneeID is the teacher an assignment is being created for.
	AssigneeID int64
	// Marks is the mark a teacher is trying to record.
	Marks float64
}

type Decision struct {
	Allowed bool
	Reason  string
}

func permit() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize is the single capability check for every (role, operation,
// resource) triple. Each request evaluates exactly one decision; handlers
// never inspect roles themselves.
func Authorize(actor *User, op Operation, tgt Target) Decision {
	switch op {
	case OpListAssignments, OpGetAssignment:
		// any authenticated user
		return permit()

	case OpCreateAssignment:
		if actor.Role != RoleTeacher {
			return deny("Unauthorized")
		}
		if tgt.AssigneeID == actor.ID {
			// a teacher may not assign work to their own account
			return deny("Unauthorized")
		}
		return permit()

	case OpUpdateAssignment:
		if actor.Role != RoleTeacher {
			return deny("Unauthorized to update assignment")
		}
		return permit()

	case OpDeleteAssignment:
		if actor.Role != RoleTeacher {
			return deny("Unauthorized to delete assignment")
		}
		return permit()

	case OpSubmitAssignment:
		if actor.Role != RoleStudent {
			return deny("Unauthorized to submit assignment")
		}
		return permit()

	case OpMarkAssignment:
		if actor.Role != RoleTeacher {
			return deny("Unauthorized to mark assignment")
		}
		if tgt.Assignment != nil && tgt.Marks > tgt.Assignment.TotalScore {
			return deny("Unauthorized to mark assignment")
		}
		return permit()

	case OpViewReport:
		if actor.Role != RoleTeacher {
			return deny("Unauthorized")
		}
		return permit()

	default:
		return deny("Unauthorized")
	}
}
