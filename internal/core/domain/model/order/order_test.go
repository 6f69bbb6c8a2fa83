package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func validDetails() order.Details {
	return order.Details{
		Description:     "2 boxes of books",
		DeliveryAddress: "12 rue de la Paix, Paris",
		ReceiverPhone:   "+33600000000",
		Instructions:    "ring twice",
	}
}

func mustCode(t *testing.T, s string) order.DeliveryCode {
	t.Helper()
	code, err := order.DeliveryCodeFromString(s)
	require.NoError(t, err)
	return code
}

func newPendingOrder(t *testing.T, clientID *kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), clientID, validDetails(), kernel.NewGeoPoint(10, 20), mustCode(t, "123456"), t0)
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func newOrderIn(t *testing.T, status order.Status, clientID *kernel.UUID, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, clientID)
	if status == order.Pending {
		return o
	}
	require.NoError(t, o.Assign(courierID, kernel.NewUUID(), t0.Add(time.Minute)))
	if status == order.Assigned {
		o.PullEvents()
		return o
	}
	require.NoError(t, o.PickUp(t0.Add(2*time.Minute)))
	if status == order.InDelivery {
		o.PullEvents()
		return o
	}
	require.NoError(t, o.Deliver(t0.Add(3*time.Minute)))
	if status == order.Delivered {
		o.PullEvents()
		return o
	}
	require.NoError(t, o.CompleteWithCode("123456", t0.Add(4*time.Minute)))
	o.PullEvents()
	return o
}

func TestNewOrder(t *testing.T) {
	clientID := kernel.NewUUID()

	t.Run("should create pending order with a created event", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.NewOrder(id, &clientID, validDetails(), kernel.NewGeoPoint(10, 20), mustCode(t, "123456"), t0)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Courier())
		require.NotNil(t, o.Client())
		assert.True(t, o.Client().IsEqual(clientID))
		assert.Equal(t, t0, o.CreatedAt())
		assert.Nil(t, o.AssignedAt())
		assert.Nil(t, o.PickedUpAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Equal(t, "123456", o.DeliveryCode().String())

		events := o.PullEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(order.CreatedEvent)
		require.True(t, ok)
		assert.True(t, created.OrderID.IsEqual(id))
		assert.Equal(t, "2 boxes of books", created.Description)
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should store latitude and longitude longitude first", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), nil, validDetails(), kernel.NewGeoPoint(10, 20), mustCode(t, "123456"), t0)

		require.NoError(t, err)
		assert.Equal(t, []float64{20, 10}, o.Location().Coordinates())
	})

	t.Run("should allow anonymous orders", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), nil, validDetails(), kernel.NewGeoPoint(0, 0), mustCode(t, "123456"), t0)

		require.NoError(t, err)
		assert.Nil(t, o.Client())
		assert.False(t, o.IsOwnedBy(clientID))
	})

	t.Run("should collect every missing field", func(t *testing.T) {
		var id kernel.UUID
		var location kernel.GeoPoint
		var code order.DeliveryCode

		o, err := order.NewOrder(id, nil, order.Details{Description: "  "}, location, code, t0)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "description")
		assert.Contains(t, err.Error(), "deliveryAddress")
		assert.Contains(t, err.Error(), "receiverPhone")
		assert.Contains(t, err.Error(), "geo point must be created")
		assert.Contains(t, err.Error(), "delivery code must be created")
	})
}

func TestOrder_Assign(t *testing.T) {
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	adminID := kernel.NewUUID()

	t.Run("should bind courier and stamp assignedAt", func(t *testing.T) {
		o := newPendingOrder(t, &clientID)

		err := o.Assign(courierID, adminID, t0.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.IsAssignedTo(courierID))
		require.NotNil(t, o.AssignedAt())
		assert.Equal(t, t0.Add(time.Minute), *o.AssignedAt())

		events := o.PullEvents()
		require.Len(t, events, 1)
		assigned := events[0].(order.AssignedEvent)
		assert.True(t, assigned.CourierID.IsEqual(courierID))
		assert.True(t, assigned.ActorID.IsEqual(adminID))
		assert.False(t, assigned.SelfAccepted)
	})

	t.Run("should flag self acceptance", func(t *testing.T) {
		o := newPendingOrder(t, nil)

		require.NoError(t, o.Assign(courierID, courierID, t0.Add(time.Minute)))

		assigned := o.PullEvents()[0].(order.AssignedEvent)
		assert.True(t, assigned.SelfAccepted)
		assert.Nil(t, assigned.ClientID)
	})

	t.Run("should conflict on already assigned order and change nothing", func(t *testing.T) {
		o := newOrderIn(t, order.Assigned, &clientID, courierID)
		assignedAt := *o.AssignedAt()

		err := o.Assign(kernel.NewUUID(), adminID, t0.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.IsAssignedTo(courierID))
		assert.Equal(t, assignedAt, *o.AssignedAt())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject zero courier id", func(t *testing.T) {
		o := newPendingOrder(t, nil)

		err := o.Assign(kernel.UUID{}, adminID, t0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Courier())
	})

	t.Run("should not stamp assignedAt before createdAt", func(t *testing.T) {
		o := newPendingOrder(t, nil)

		require.NoError(t, o.Assign(courierID, adminID, t0.Add(-time.Hour)))

		assert.Equal(t, t0, *o.AssignedAt())
	})
}

func TestOrder_PickUpAndDeliver(t *testing.T) {
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	t.Run("should walk assigned to delivered", func(t *testing.T) {
		o := newOrderIn(t, order.Assigned, &clientID, courierID)

		require.NoError(t, o.PickUp(t0.Add(2*time.Minute)))
		assert.Equal(t, order.InDelivery, o.Status())
		require.NotNil(t, o.PickedUpAt())

		require.NoError(t, o.Deliver(t0.Add(3*time.Minute)))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, t0.Add(3*time.Minute), *o.DeliveredAt())

		events := o.PullEvents()
		require.Len(t, events, 2)
		assert.Equal(t, order.InDelivery, events[0].(order.StatusAdvancedEvent).Status)
		assert.Equal(t, order.Delivered, events[1].(order.StatusAdvancedEvent).Status)
	})

	t.Run("should not deliver from assigned", func(t *testing.T) {
		o := newOrderIn(t, order.Assigned, &clientID, courierID)

		err := o.Deliver(t0)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Assigned, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should not pick up a pending order", func(t *testing.T) {
		o := newPendingOrder(t, &clientID)

		require.ErrorIs(t, o.PickUp(t0), errs.ErrConflict)
		assert.Nil(t, o.PickedUpAt())
	})
}

func TestOrder_CompleteWithCode(t *testing.T) {
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	for _, from := range []order.Status{order.Assigned, order.InDelivery, order.Delivered} {
		t.Run("should complete from "+from.String(), func(t *testing.T) {
			o := newOrderIn(t, from, &clientID, courierID)
			at := t0.Add(time.Hour)

			err := o.CompleteWithCode("123456", at)

			require.NoError(t, err)
			assert.Equal(t, order.Received, o.Status())
			require.NotNil(t, o.DeliveredAt())
			assert.Equal(t, at, *o.DeliveredAt())
			assert.True(t, o.IsAssignedTo(courierID))

			events := o.PullEvents()
			require.Len(t, events, 1)
			_, ok := events[0].(order.CompletedEvent)
			assert.True(t, ok)
		})
	}

	t.Run("should reject wrong code without changing state", func(t *testing.T) {
		o := newOrderIn(t, order.Delivered, &clientID, courierID)
		deliveredAt := *o.DeliveredAt()

		err := o.CompleteWithCode("654321", t0.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should require a code", func(t *testing.T) {
		o := newOrderIn(t, order.Delivered, &clientID, courierID)

		require.ErrorIs(t, o.CompleteWithCode("   ", t0), errs.ErrValueIsRequired)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should conflict from pending", func(t *testing.T) {
		o := newPendingOrder(t, &clientID)

		require.ErrorIs(t, o.CompleteWithCode("123456", t0), errs.ErrConflict)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Courier())
	})

	t.Run("should conflict once received", func(t *testing.T) {
		o := newOrderIn(t, order.Received, &clientID, courierID)

		require.ErrorIs(t, o.CompleteWithCode("123456", t0.Add(time.Hour)), errs.ErrConflict)
	})

	t.Run("should keep deliveredAt after pickedUpAt", func(t *testing.T) {
		o := newOrderIn(t, order.InDelivery, &clientID, courierID)

		require.NoError(t, o.CompleteWithCode("123456", t0))

		assert.False(t, o.DeliveredAt().Before(*o.PickedUpAt()))
	})
}

func TestOrder_ConfirmReceipt(t *testing.T) {
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	t.Run("should close a delivered order", func(t *testing.T) {
		o := newOrderIn(t, order.Delivered, &clientID, courierID)

		require.NoError(t, o.ConfirmReceipt(clientID))

		assert.Equal(t, order.Received, o.Status())
		events := o.PullEvents()
		require.Len(t, events, 1)
		confirmed := events[0].(order.ReceiptConfirmedEvent)
		assert.True(t, confirmed.CourierID.IsEqual(courierID))
	})

	t.Run("should reject the second confirmation", func(t *testing.T) {
		o := newOrderIn(t, order.Delivered, &clientID, courierID)
		require.NoError(t, o.ConfirmReceipt(clientID))
		o.PullEvents()

		err := o.ConfirmReceipt(clientID)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Received, o.Status())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should deny another client", func(t *testing.T) {
		o := newOrderIn(t, order.Delivered, &clientID, courierID)

		require.ErrorIs(t, o.ConfirmReceipt(kernel.NewUUID()), errs.ErrAccessDenied)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should conflict before delivery", func(t *testing.T) {
		o := newOrderIn(t, order.InDelivery, &clientID, courierID)

		require.ErrorIs(t, o.ConfirmReceipt(clientID), errs.ErrConflict)
	})
}

func TestOrder_MoveTo(t *testing.T) {
	o := newOrderIn(t, order.InDelivery, nil, kernel.NewUUID())

	require.NoError(t, o.MoveTo(kernel.NewGeoPoint(0, 0)))
	assert.Equal(t, []float64{0, 0}, o.Location().Coordinates())

	require.NoError(t, o.MoveTo(kernel.NewGeoPoint(95, -200)))
	assert.Equal(t, 95.0, o.Location().Latitude())
	assert.Equal(t, -200.0, o.Location().Longitude())

	require.ErrorIs(t, o.MoveTo(kernel.GeoPoint{}), errs.ErrValueIsRequired)
	assert.Equal(t, 95.0, o.Location().Latitude())
	assert.Empty(t, o.PullEvents())
}

func TestOrder_CourierInvariant(t *testing.T) {
	for _, s := range order.AllStatuses() {
		o := newOrderIn(t, s, nil, kernel.NewUUID())
		assert.Equal(t, s != order.Pending, o.Courier() != nil, s.String())
	}
}

func TestRestoreOrder(t *testing.T) {
	courierID := kernel.NewUUID()
	assignedAt := t0.Add(time.Minute)
	snapshot := order.Snapshot{
		ID:           kernel.NewUUID(),
		CourierID:    &courierID,
		Details:      validDetails(),
		Location:     kernel.NewGeoPoint(1, 2),
		Status:       order.Assigned,
		DeliveryCode: mustCode(t, "999999"),
		CreatedAt:    t0,
		AssignedAt:   &assignedAt,
	}

	t.Run("should restore without events", func(t *testing.T) {
		o, err := order.RestoreOrder(snapshot)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.IsAssignedTo(courierID))
		assert.Equal(t, assignedAt, *o.AssignedAt())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject courier on a pending snapshot", func(t *testing.T) {
		s := snapshot
		s.Status = order.Pending

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		s := snapshot
		s.Status = order.Unknown

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order
	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	assert.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}
