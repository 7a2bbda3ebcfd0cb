// Package permission holds the display-layer permission predicates. These
// gate what the console offers; the authoritative checks live in the
// registry API.
package permission

import "github.com/inovacc/curatr/internal/model"

// CanDeleteModel reports whether user may delete a model owned by owner.
// Administrators and the owning user may delete.
func CanDeleteModel(user model.User, owner string) bool {
	if user.Admin {
		return true
	}

	return user.Username != "" && user.Username == owner
}

// CanDeleteVersion reports whether user may delete one version of a model.
// Administrators, the model owner and the version's own uploader may delete.
func CanDeleteVersion(user model.User, modelOwner, versionUploader string) bool {
	if CanDeleteModel(user, modelOwner) {
		return true
	}

	return user.Username != "" && user.Username == versionUploader
}

// CanEditModel reports whether user may edit a model's description, labels
// or metadata. Same rule as deletion of the model itself.
func CanEditModel(user model.User, owner string) bool {
	return CanDeleteModel(user, owner)
}
