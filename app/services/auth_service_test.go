package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/app/services"
	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/auth"
	"github.com/ucqdev/cuahquick/pkg/testkit"
)

func validRegistration() services.RegisterInput {
	return services.RegisterInput{
		FullName:  "Ana Ruiz",
		Email:     "aruiz20045@ucq.edu.mx",
		Password:  "p@ss1234",
		Phone:     "4421234567",
		StudentID: "20045",
	}
}

func TestRegister(t *testing.T) {
	testkit.SetupDB(t, &models.User{})
	svc := services.NewAuthService()

	user, token, err := svc.Register(validRegistration())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ana Ruiz", user.FullName)
	assert.Equal(t, models.RoleClient, user.Role)
	require.NotNil(t, user.StudentID)
	assert.Equal(t, "20045", *user.StudentID)
	assert.NotEqual(t, "p@ss1234", user.Password, "password must be stored hashed")

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleClient, claims.Role)
	assert.Equal(t, user.Email, claims.Email)
}

func TestRegisterValidationOrder(t *testing.T) {
	testkit.SetupDB(t, &models.User{})
	svc := services.NewAuthService()

	tests := []struct {
		name   string
		mutate func(*services.RegisterInput)
		want   error
	}{
		{
			name:   "missing field wins over everything",
			mutate: func(in *services.RegisterInput) { in.Phone = "" },
			want:   apperr.ErrMissingFields,
		},
		{
			name:   "wrong domain",
			mutate: func(in *services.RegisterInput) { in.Email = "aruiz20045@gmail.com" },
			want:   apperr.ErrInvalidDomain,
		},
		{
			name:   "no trailing digits in local part",
			mutate: func(in *services.RegisterInput) { in.Email = "aruiz@ucq.edu.mx" },
			want:   apperr.ErrMissingStudentIDInEmail,
		},
		{
			name:   "digits differ from submitted student id",
			mutate: func(in *services.RegisterInput) { in.StudentID = "99999" },
			want:   apperr.ErrStudentIDMismatch,
		},
		{
			name: "no numeric coercion on the comparison",
			mutate: func(in *services.RegisterInput) {
				in.Email = "aruiz007@ucq.edu.mx"
				in.StudentID = "7"
			},
			want: apperr.ErrStudentIDMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			_, _, err := svc.Register(in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	testkit.SetupDB(t, &models.User{})
	svc := services.NewAuthService()

	_, _, err := svc.Register(validRegistration())
	require.NoError(t, err)

	_, _, err = svc.Register(validRegistration())
	assert.ErrorIs(t, err, apperr.ErrDuplicateUser)
}

func TestLogin(t *testing.T) {
	testkit.SetupDB(t, &models.User{})
	svc := services.NewAuthService()

	_, _, err := svc.Register(validRegistration())
	require.NoError(t, err)

	user, token, err := svc.Login("aruiz20045@ucq.edu.mx", "p@ss1234")
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", user.FullName)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login("aruiz20045@ucq.edu.mx", "wrong")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@ucq.edu.mx", "p@ss1234")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials,
		"unknown email and bad password must be indistinguishable")
}
