package appointment

import (
	"fmt"

	"wrenchly/models"
)

// Role identifies who is driving a status transition.
type Role string

const (
	RoleShop     Role = "shop"
	RoleCustomer Role = "customer"
	// RoleSystem is the time-driven actor that completes appointments;
	// it is never attached to an HTTP request.
	RoleSystem Role = "system"
)

// Actor is the authenticated party behind a transition request.
type Actor struct {
	ID   string
	Role Role
}

// IllegalTransitionError rejects a status change the gate does not allow.
type IllegalTransitionError struct {
	From, To models.AppointmentStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// ForbiddenError rejects a legal transition attempted by the wrong party.
type ForbiddenError struct {
	Role Role
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %s may not perform this transition", e.Role)
}

type transition struct {
	from, to models.AppointmentStatus
}

var allowedRoles = map[transition][]Role{
	{models.StatusPending, models.StatusConfirmed}:   {RoleShop},
	{models.StatusPending, models.StatusCancelled}:   {RoleShop, RoleCustomer},
	{models.StatusConfirmed, models.StatusCancelled}: {RoleShop, RoleCustomer},
	{models.StatusConfirmed, models.StatusCompleted}: {RoleSystem},
}

// CanTransition checks whether the gate permits moving an appointment from
// one status to another, and whether the given role may trigger it. A
// same-status transition is always permitted as a no-op.
func CanTransition(from, to models.AppointmentStatus, role Role) error {
	if from == to {
		return nil
	}
	roles, ok := allowedRoles[transition{from, to}]
	if !ok {
		return &IllegalTransitionError{From: from, To: to}
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return &ForbiddenError{Role: role}
}
