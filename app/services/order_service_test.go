package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/app/services"
	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/orm"
	"github.com/ucqdev/cuahquick/pkg/testkit"
)

func seedClient(t *testing.T, name, phone string) models.User {
	t.Helper()
	sid := phone // any unique value works for the index
	user := models.User{
		FullName:  name,
		Email:     name + "@ucq.edu.mx",
		Password:  "hash",
		Phone:     phone,
		Role:      models.RoleClient,
		StudentID: &sid,
	}
	require.NoError(t, orm.DB().Create(&user))
	return user
}

func validOrder() services.CreateOrderInput {
	return services.CreateOrderInput{
		ShopID:    1,
		Total:     85.50,
		Building:  "D",
		Classroom: "D-204",
		Notes:     "no onion",
	}
}

func TestCreateOrderForcesPending(t *testing.T) {
	testkit.SetupDB(t, &models.User{}, &models.Order{})
	svc := services.NewOrderService()
	user := seedClient(t, "ana", "4421111111")

	order, err := svc.Create(user.ID, validOrder())
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, user.ID, order.UserID, "owner comes from the token, not the body")
}

func TestCreateOrderMissingFields(t *testing.T) {
	testkit.SetupDB(t, &models.User{}, &models.Order{})
	svc := services.NewOrderService()

	tests := []struct {
		name   string
		mutate func(*services.CreateOrderInput)
	}{
		{"no shop", func(in *services.CreateOrderInput) { in.ShopID = 0 }},
		{"no total", func(in *services.CreateOrderInput) { in.Total = 0 }},
		{"no building", func(in *services.CreateOrderInput) { in.Building = "" }},
		{"no classroom", func(in *services.CreateOrderInput) { in.Classroom = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validOrder()
			tc.mutate(&in)
			_, err := svc.Create(1, in)
			assert.ErrorIs(t, err, apperr.ErrMissingFields)
		})
	}

	t.Run("notes are optional", func(t *testing.T) {
		in := validOrder()
		in.Notes = ""
		_, err := svc.Create(seedClient(t, "bob", "4422222222").ID, in)
		assert.NoError(t, err)
	})
}

func TestQueueIsFIFOWithClientContact(t *testing.T) {
	testkit.SetupDB(t, &models.User{}, &models.Order{})
	svc := services.NewOrderService()

	ana := seedClient(t, "ana", "4421111111")
	bob := seedClient(t, "bob", "4422222222")

	first, err := svc.Create(ana.ID, validOrder())
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond) // distinct created_at
	second, err := svc.Create(bob.ID, validOrder())
	require.NoError(t, err)

	// Terminal orders stay out of the queue.
	delivered, err := svc.Create(ana.ID, validOrder())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(delivered.ID, models.StatusDelivered)
	require.NoError(t, err)

	queue, err := svc.Queue()
	require.NoError(t, err)
	require.Len(t, queue, 2)

	assert.Equal(t, first.ID, queue[0].ID, "oldest order first")
	assert.Equal(t, "ana", queue[0].ClientName)
	assert.Equal(t, "4421111111", queue[0].ClientPhone)
	assert.Equal(t, second.ID, queue[1].ID)
	assert.Equal(t, "bob", queue[1].ClientName)
}

func TestUpdateStatus(t *testing.T) {
	testkit.SetupDB(t, &models.User{}, &models.Order{})
	svc := services.NewOrderService()
	user := seedClient(t, "ana", "4421111111")

	order, err := svc.Create(user.ID, validOrder())
	require.NoError(t, err)

	for _, status := range models.UpdatableStatuses {
		updated, err := svc.UpdateStatus(order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = svc.UpdateStatus(order.ID, "pending")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus, "pending is creation-only")

	_, err = svc.UpdateStatus(order.ID, "shipped")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)

	_, err = svc.UpdateStatus(99999, models.StatusReady)
	assert.ErrorIs(t, err, apperr.ErrOrderNotFound)
}
