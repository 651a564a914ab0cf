// Package lifecycle holds the legal booking transitions as data: a table keyed
// by (current status, actor role, requested transition).
package lifecycle

import (
	"errors"

	"github.com/Eursukkul/helper-marketplace/internal/models"
)

type Transition string

const (
	Accept         Transition = "accept"
	CounterOffer   Transition = "counter_offer"
	AcceptCounter  Transition = "accept_counter"
	Start          Transition = "start"
	Complete       Transition = "complete"
	ConfirmPayment Transition = "confirm_payment"
	Cancel         Transition = "cancel"
)

// Transitions lists every transition on an existing booking. Creation is not
// a transition: it has no prior status.
var Transitions = []Transition{Accept, CounterOffer, AcceptCounter, Start, Complete, ConfirmPayment, Cancel}

var (
	ErrRoleNotAllowed = errors.New("role may not perform this transition")
	ErrWrongState     = errors.New("transition not allowed from current status")
)

type key struct {
	from models.BookingStatus
	role models.Role
	tr   Transition
}

var table = map[key]models.BookingStatus{
	{models.StatusPending, models.RoleWorker, Accept}:       models.StatusAccepted,
	{models.StatusPending, models.RoleWorker, CounterOffer}: models.StatusCounterOffered,

	{models.StatusCounterOffered, models.RoleMember, AcceptCounter}: models.StatusAccepted,

	{models.StatusAccepted, models.RoleWorker, Start}:      models.StatusInProgress,
	{models.StatusAccepted, models.RoleWorker, Complete}:   models.StatusCompleted,
	{models.StatusInProgress, models.RoleWorker, Complete}: models.StatusCompleted,

	{models.StatusAccepted, models.RoleMember, ConfirmPayment}:   models.StatusPaid,
	{models.StatusInProgress, models.RoleMember, ConfirmPayment}: models.StatusPaid,
	{models.StatusCompleted, models.RoleMember, ConfirmPayment}:  models.StatusPaid,

	{models.StatusPending, models.RoleMember, Cancel}:        models.StatusCancelled,
	{models.StatusCounterOffered, models.RoleMember, Cancel}: models.StatusCancelled,
	{models.StatusAccepted, models.RoleMember, Cancel}:       models.StatusCancelled,
	{models.StatusCounterOffered, models.RoleWorker, Cancel}: models.StatusCancelled,
	{models.StatusAccepted, models.RoleWorker, Cancel}:       models.StatusCancelled,
}

// roles records which roles may ever perform a transition, so that a miss in
// the table can be told apart as a role problem or a state problem.
var roles = func() map[Transition]map[models.Role]bool {
	m := make(map[Transition]map[models.Role]bool)
	for k := range table {
		if m[k.tr] == nil {
			m[k.tr] = make(map[models.Role]bool)
		}
		m[k.tr][k.role] = true
	}
	return m
}()

// Next returns the status a booking in from moves to when role performs tr.
func Next(from models.BookingStatus, role models.Role, tr Transition) (models.BookingStatus, error) {
	if !roles[tr][role] {
		return "", ErrRoleNotAllowed
	}
	to, ok := table[key{from, role, tr}]
	if !ok {
		return "", ErrWrongState
	}
	return to, nil
}

// Allowed reports whether role may perform tr on a booking in from.
func Allowed(from models.BookingStatus, role models.Role, tr Transition) bool {
	_, ok := table[key{from, role, tr}]
	return ok
}

// PermittedBy reports whether role may perform tr from any status.
func PermittedBy(role models.Role, tr Transition) bool {
	return roles[tr][role]
}

// Terminal reports whether no transition leaves the status.
func Terminal(s models.BookingStatus) bool {
	for k := range table {
		if k.from == s {
			return false
		}
	}
	return true
}
