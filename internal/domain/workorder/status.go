package workorder

// OrderStatus represents the lifecycle status of a job order
type OrderStatus string

const (
	StatusCreated         OrderStatus = "created"
	StatusPendingApproval OrderStatus = "pending_approval"
	StatusApproved        OrderStatus = "approved"
	StatusRejected        OrderStatus = "rejected"
	StatusCancelled       OrderStatus = "cancelled"
)

// AllStatuses lists every order status
var AllStatuses = []OrderStatus{
	StatusCreated,
	StatusPendingApproval,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
}

// validTransitions is the closed transition table of the approval workflow.
// Approved and cancelled are terminal; a rejected order may be revised and
// resubmitted.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusCreated:         {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusCancelled},
	StatusRejected:        {StatusPendingApproval, StatusCancelled},
	StatusApproved:        {},
	StatusCancelled:       {},
}

// IsValid checks if the status is known
func (s OrderStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0 && s.IsValid()
}

// IsEditable reports whether order contents (items, repairs, notes) may change
func (s OrderStatus) IsEditable() bool {
	return s == StatusCreated || s == StatusRejected
}

func (s OrderStatus) String() string {
	return string(s)
}
