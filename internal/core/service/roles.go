package service

import "github.com/eshopsolution/admin-api/internal/core/domain"

// roleDelta computes the minimal add/remove sets that bring the current role
// membership in line with the selection. It is a pure function kept apart
// from store I/O: deselected names already absent and selected names already
// held produce no work, which makes applying the delta idempotent. Roles not
// mentioned in the selection are untouched.
func roleDelta(current []string, selection []domain.RoleSelection) (toAdd, toRemove []string) {
	held := make(map[string]bool, len(current))
	for _, r := range current {
		held[r] = true
	}

	for _, sel := range selection {
		switch {
		case !sel.Selected && held[sel.Name]:
			toRemove = append(toRemove, sel.Name)
		case sel.Selected && !held[sel.Name]:
			toAdd = append(toAdd, sel.Name)
		}
	}
	return toAdd, toRemove
}
