// Package policy holds the authorization rules as pure functions of the
// caller's identity and the target record. It has no knowledge of HTTP
// or the store; handlers resolve the target owner and ask.
package policy

import (
	"strconv"

	"github.com/carkeep/car-registry/internal/auth"
)

// FilterAll is the sentinel an admin passes to list every owner's cars.
const FilterAll = "all"

// CarScope describes which cars a caller may list.
type CarScope struct {
	OwnerID uint
	All     bool
}

// CarsVisibleTo resolves the listing scope. Non-admins are pinned to
// their own cars no matter what owner they request. Admins see all cars
// by default (or with the "all" sentinel), or a single owner's when a
// specific id is requested. An unparsable requested id yields a scope
// that matches nothing.
func CarsVisibleTo(caller auth.Identity, requestedOwner string) CarScope {
	if !caller.IsAdmin {
		return CarScope{OwnerID: caller.UserID}
	}
	if requestedOwner == "" || requestedOwner == FilterAll {
		return CarScope{All: true}
	}
	id, err := strconv.ParseUint(requestedOwner, 10, 64)
	if err != nil {
		return CarScope{}
	}
	return CarScope{OwnerID: uint(id)}
}

// CarOwnerForCreate resolves who a new car belongs to. Admins may create
// on behalf of any user; everyone else creates for themselves.
func CarOwnerForCreate(caller auth.Identity, requestedOwner uint) uint {
	if caller.IsAdmin && requestedOwner != 0 {
		return requestedOwner
	}
	return caller.UserID
}

// CanTouchCar reports whether the caller may mutate or delete a car
// owned by ownerID.
func CanTouchCar(caller auth.Identity, ownerID uint) bool {
	return caller.IsAdmin || caller.UserID == ownerID
}

// CanEditUser reports whether the caller may update the user record
// targetID.
func CanEditUser(caller auth.Identity, targetID uint) bool {
	return caller.IsAdmin || caller.UserID == targetID
}

// CanGrantAdmin reports whether the caller may change an is_admin flag.
// A non-admin's attempt is silently ignored by the handler, not
// rejected.
func CanGrantAdmin(caller auth.Identity) bool {
	return caller.IsAdmin
}

// CanDeleteUser reports whether the caller may delete user records.
func CanDeleteUser(caller auth.Identity) bool {
	return caller.IsAdmin
}
