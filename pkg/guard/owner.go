// Package guard holds the ownership check shared by every mutation on an owned entity.
package guard

import "VidTube.com/pkg/errno"

// Anonymous is the actor id of a request without a verified identity.
const Anonymous int64 = 0

// Owner returns nil only when actorID is a real user and owns the entity.
// action completes the sentence "You are not authorized to ...".
func Owner(ownerID, actorID int64, action string) error {
	if actorID == Anonymous || ownerID != actorID {
		return errno.UnauthorizedErr.WithMessage("You are not authorized to " + action)
	}
	return nil
}

// Authenticated rejects anonymous actors for operations that create owned entities.
func Authenticated(actorID int64) error {
	if actorID == Anonymous {
		return errno.UnauthorizedErr.WithMessage("Login required")
	}
	return nil
}
