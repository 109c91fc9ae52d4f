package directory

import "stays/pkg/domain"

// Authorization is expressed as small pure predicates over the actor and the
// owning identity of a resource. Methods call these before touching storage
// so denied operations never observe or mutate state.

// canManage reports whether the actor may mutate a resource owned by ownerID.
// Admins may mutate anything; everyone else only what they own.
func canManage(actor domain.Actor, ownerID domain.UserID) bool {
	return actor.IsAdmin || actor.ID == ownerID
}

// canCreatePlace reports whether the actor may create a place under the given
// policy. Anonymous actors never may.
func canCreatePlace(actor domain.Actor, policy PlaceCreatePolicy) bool {
	if actor.IsAnonymous() {
		return false
	}
	if policy == PlaceCreateAdmin {
		return actor.IsAdmin
	}

	return true
}

// canListUsers reports whether the actor may enumerate all users. Individual
// profiles are public; the full roster is not.
func canListUsers(actor domain.Actor) bool {
	return !actor.IsAnonymous()
}
