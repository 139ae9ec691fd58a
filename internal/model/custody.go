package model

import (
	"fmt"

	"github.com/fastech/equiptrack/internal/errs"
)

// Status is the equipment's current high-level state, derived from the
// latest history record's action.
type Status string

const (
	StatusInStock        Status = "In Stock"
	StatusWithClient     Status = "With Client"
	StatusInMaintenance  Status = "In Maintenance"
	StatusDecommissioned Status = "Decommissioned"
)

// Statuses lists all statuses in display order.
func Statuses() []Status {
	return []Status{StatusInStock, StatusWithClient, StatusInMaintenance, StatusDecommissioned}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusWithClient, StatusInMaintenance, StatusDecommissioned:
		return true
	}
	return false
}

// Action is the enumerated reason for a custody change.
type Action string

const (
	ActionRegister     Action = "Register"
	ActionDelivery     Action = "Delivery"
	ActionReturn       Action = "Return"
	ActionMaintenance  Action = "Maintenance"
	ActionRepair       Action = "Repair"
	ActionTransfer     Action = "Transfer"
	ActionDecommission Action = "Decommission"
)

// Actions lists all actions in display order.
func Actions() []Action {
	return []Action{
		ActionRegister, ActionDelivery, ActionReturn, ActionMaintenance,
		ActionRepair, ActionTransfer, ActionDecommission,
	}
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionRegister, ActionDelivery, ActionReturn, ActionMaintenance,
		ActionRepair, ActionTransfer, ActionDecommission:
		return true
	}
	return false
}

// RequiresClient reports whether the action must carry a destination client.
func (a Action) RequiresClient() bool {
	return a == ActionDelivery || a == ActionTransfer
}

// AllowsClient reports whether the action may carry a client. Return keeps
// the client optional for informational purposes; Register accepts one to
// support register-and-deliver in a single call.
func (a Action) AllowsClient() bool {
	return a.RequiresClient() || a == ActionReturn || a == ActionRegister
}

// Status maps the action to the resulting equipment status. hasClient only
// matters for Register: registering directly to a client yields WithClient.
func (a Action) Status(hasClient bool) (Status, error) {
	switch a {
	case ActionRegister:
		if hasClient {
			return StatusWithClient, nil
		}
		return StatusInStock, nil
	case ActionDelivery, ActionTransfer:
		return StatusWithClient, nil
	case ActionReturn:
		return StatusInStock, nil
	case ActionMaintenance, ActionRepair:
		return StatusInMaintenance, nil
	case ActionDecommission:
		return StatusDecommissioned, nil
	}
	return "", fmt.Errorf("action %q: %w", string(a), errs.ErrInvalidArgument)
}
