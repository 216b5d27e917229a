package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"nullable,digits=10"`
	StudentID string `json:"student_id" validate:"required"`
}

func TestStructPassesValidInput(t *testing.T) {
	errs := Struct(&registerInput{
		FullName:  "Ana Ruiz",
		Email:     "ana.ruiz240189@ucq.edu.mx",
		Password:  "hunter2hunter2",
		Phone:     "4421234567",
		StudentID: "240189",
	})
	assert.False(t, HasErrors(errs))
}

func TestRequiredFields(t *testing.T) {
	errs := Struct(&registerInput{})
	assert.True(t, HasErrors(errs))
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "student_id")
	// nullable phone is allowed to be empty
	assert.NotContains(t, errs, "phone")
}

func TestEmailRule(t *testing.T) {
	errs := Struct(&registerInput{
		FullName:  "Ana Ruiz",
		Email:     "not-an-email",
		Password:  "hunter2hunter2",
		StudentID: "240189",
	})
	assert.Contains(t, errs, "email")
}

func TestDigitsRule(t *testing.T) {
	errs := Struct(&registerInput{
		FullName:  "Ana Ruiz",
		Email:     "ana.ruiz240189@ucq.edu.mx",
		Password:  "hunter2hunter2",
		Phone:     "12345",
		StudentID: "240189",
	})
	assert.Contains(t, errs, "phone")
}

func TestInRuleKeepsMultiValueParams(t *testing.T) {
	type statusInput struct {
		Status string `json:"status" validate:"required,in=preparing,ready,delivered,cancelled"`
	}

	assert.False(t, HasErrors(Struct(&statusInput{Status: "ready"})))
	assert.True(t, HasErrors(Struct(&statusInput{Status: "pending"})))
	assert.True(t, HasErrors(Struct(&statusInput{Status: "eaten"})))
}

func TestMinAppliesToNumbers(t *testing.T) {
	type orderInput struct {
		Total float64 `json:"total" validate:"required,min=1"`
	}

	assert.True(t, HasErrors(Struct(&orderInput{Total: 0.5})))
	assert.False(t, HasErrors(Struct(&orderInput{Total: 45})))
}
