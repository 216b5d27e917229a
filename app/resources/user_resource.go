// Package resources shapes models into their public API representations.
package resources

import (
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/resource"
)

// UserResource is the public view of a user. The password hash never
// leaves the model layer.
type UserResource struct{}

func (UserResource) ToArray(v interface{}) resource.Map {
	user, ok := v.(models.User)
	if !ok {
		if p, isPtr := v.(*models.User); isPtr {
			user = *p
		}
	}

	out := resource.Map{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
		"role":      user.Role,
	}
	if user.StudentID != nil {
		out["student_id"] = *user.StudentID
	}
	return out
}
