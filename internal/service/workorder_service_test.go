package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/events"
	"github.com/prodline/workorder-tracker/internal/identity"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

func newWorkOrderFixture() (*WorkOrderService, *fakeWorkOrderRepo, *recordingDispatcher) {
	workOrderRepo := &fakeWorkOrderRepo{orders: map[string]*domain.WorkOrder{}}
	dispatcher := &recordingDispatcher{}
	svc := NewWorkOrderService(workOrderRepo, newFakeTicketRepo(), dispatcher)
	return svc, workOrderRepo, dispatcher
}

func adminCaller() *identity.Identity {
	return &identity.Identity{ID: "a1", Role: domain.RoleAdmin, AccessGranted: true}
}

func TestWorkOrderCreate_Defaults(t *testing.T) {
	svc, _, dispatcher := newWorkOrderFixture()

	order, err := svc.Create(context.Background(), adminCaller(), WorkOrderCreateInput{
		ASMNumber:   "ASM-18",
		Description: "rear axle batch",
	})

	require.NoError(t, err)
	assert.Equal(t, "WO-000001", order.WorkOrderNumber)
	assert.Equal(t, domain.WorkOrderStatusOpen, order.Status)
	assert.Equal(t, "a1", order.CreatedBy)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventWorkOrderCreated, dispatcher.published[0].Type)
}

func TestWorkOrderCreate_InvalidStatus(t *testing.T) {
	svc, _, _ := newWorkOrderFixture()

	_, err := svc.Create(context.Background(), adminCaller(), WorkOrderCreateInput{
		Description: "x",
		Status:      domain.WorkOrderStatus("Archived"),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestWorkOrderUpdate_StatusChangePublishesEvent(t *testing.T) {
	svc, _, dispatcher := newWorkOrderFixture()

	order, err := svc.Create(context.Background(), adminCaller(), WorkOrderCreateInput{Description: "batch"})
	require.NoError(t, err)

	completed := domain.WorkOrderStatusCompleted
	updated, err := svc.Update(context.Background(), adminCaller(), order.ID, WorkOrderUpdateInput{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, completed, updated.Status)

	require.Len(t, dispatcher.published, 2)
	assert.Equal(t, events.EventWorkOrderStatusChanged, dispatcher.published[1].Type)
	payload, ok := dispatcher.published[1].Payload.(events.WorkOrderStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.WorkOrderStatusOpen, payload.OldStatus)
	assert.Equal(t, completed, payload.NewStatus)
}

func TestWorkOrderUpdate_SameStatusNoEvent(t *testing.T) {
	svc, _, dispatcher := newWorkOrderFixture()

	order, err := svc.Create(context.Background(), adminCaller(), WorkOrderCreateInput{Description: "batch"})
	require.NoError(t, err)

	asm := "ASM-99"
	_, err = svc.Update(context.Background(), adminCaller(), order.ID, WorkOrderUpdateInput{ASMNumber: &asm})
	require.NoError(t, err)

	// Only the creation event.
	assert.Len(t, dispatcher.published, 1)
}

func TestWorkOrderGet_NotFound(t *testing.T) {
	svc, _, _ := newWorkOrderFixture()

	_, err := svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
