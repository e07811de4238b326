package auth

import apperrors "github.com/libenaigi/CUHIRE/pkg/util"

// CheckOwnership allows the call only when subjectID matches the recorded owner.
func CheckOwnership(subjectID, ownerID string) error {
	if subjectID == "" || subjectID != ownerID {
		return apperrors.NewForbidden("user not authorized")
	}
	return nil
}
