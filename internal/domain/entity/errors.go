package entity

import (
	"errors"
	"fmt"
)

// ErrMissingCollaborator is returned when an operation needs a collaborator
// (animator, shoot point, projectile template, spawner) that is not configured.
var ErrMissingCollaborator = errors.New("missing collaborator")

// MissingCollaboratorError names the actor and the absent collaborator.
type MissingCollaboratorError struct {
	Actor        ID
	Collaborator string
}

func (e *MissingCollaboratorError) Error() string {
	return fmt.Sprintf("actor %d: %s not configured", e.Actor, e.Collaborator)
}

func (e *MissingCollaboratorError) Unwrap() error {
	return ErrMissingCollaborator
}

// Missing builds a MissingCollaboratorError.
func Missing(actor ID, collaborator string) error {
	return &MissingCollaboratorError{Actor: actor, Collaborator: collaborator}
}
