package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Order errors

// OrderError is a per-order rejection. It never aborts a turn; the turn
// generator converts it into a player message.
type OrderError struct {
	*DomainError
	PlayerNum int
	Order     string
}

func NewOrderError(playerNum int, order, reason string) *OrderError {
	return &OrderError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s rejected: %s", order, reason)},
		PlayerNum:   playerNum,
		Order:       order,
	}
}

// Reference errors

type MissingReferenceError struct {
	*DomainError
	Kind string
	ID   string
}

func NewMissingReferenceError(kind, id string) *MissingReferenceError {
	return &MissingReferenceError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s %s does not exist", kind, id)},
		Kind:        kind,
		ID:          id,
	}
}

type NotFoundError struct {
	*DomainError
	Entity string
	Key    string
}

func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s not found: %s", entity, key)},
		Entity:      entity,
		Key:         key,
	}
}

// Game state errors

type GameLockedError struct {
	*DomainError
	GameID string
}

func NewGameLockedError(gameID string) *GameLockedError {
	return &GameLockedError{
		DomainError: &DomainError{Message: fmt.Sprintf("game %s is generating a turn and not accepting orders", gameID)},
		GameID:      gameID,
	}
}

type InvalidWorldError struct {
	*DomainError
}

func NewInvalidWorldError(message string) *InvalidWorldError {
	return &InvalidWorldError{DomainError: &DomainError{Message: message}}
}
