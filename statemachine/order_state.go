package statemachine

import (
	"burger-palace-api/models"
)

// Actor identifies who is asking for a transition
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorStaff    Actor = "staff"
	// ActorSystem may perform any legal transition regardless of role
	ActorSystem Actor = "system"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor Actor              `json:"actor"`
}

// validTransitions is the authoritative order state machine definition
var validTransitions = []Transition{
	// Kitchen accepts a pending order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorStaff},
	// Staff or customer can cancel before cooking starts
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorStaff},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorStaff},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorStaff},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorCustomer},
	// Once cooking starts only staff can cancel
	{From: models.StatusPreparing, To: models.StatusReady, Actor: ActorStaff},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: ActorStaff},
	{From: models.StatusReady, To: models.StatusDelivered, Actor: ActorStaff},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: ActorStaff},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

type edge struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var transitionMap, edgeMap = func() (map[transitionKey]bool, map[edge]bool) {
	byActor := make(map[transitionKey]bool)
	edges := make(map[edge]bool)
	for _, t := range validTransitions {
		byActor[transitionKey{t.From, t.To, t.Actor}] = true
		edges[edge{t.From, t.To}] = true
	}
	return byActor, edges
}()

// IsTerminal reports whether no transition leaves the status
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// IsLegal reports whether any actor may move an order from one state to another
func IsLegal(from, to models.OrderStatus) bool {
	return edgeMap[edge{from, to}]
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move an order from one state to another
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	if actor == ActorSystem && IsLegal(from, to) {
		return nil
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return models.NewValidationError("status",
		"invalid transition: "+string(from)+" → "+string(to)+
			" is not allowed for actor '"+string(actor)+"'. "+
			"Valid transitions from "+string(from)+" are: "+describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return append([]Transition(nil), validTransitions...)
}
