package attendees

import (
	"context"
	"errors"
	"testing"
	"time"

	"iftar/internal/notifications"
	"iftar/internal/shared/middleware"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	published []*notifications.RegistrationNotification
	err       error
}

func (p *recordingPublisher) PublishRegistration(_ context.Context, n *notifications.RegistrationNotification) error {
	p.published = append(p.published, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestService_RegisterSendsNormalizedRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)

	want := RegistrationRequest{Name: "Ahmed Khan", Address: "123 Main St", Message: ""}
	client.EXPECT().Register(gomock.Any(), want).Return(nil).Times(1)

	got, err := NewService(client).Register(context.Background(), RegistrationRequest{
		Name:    " Ahmed Khan ",
		Address: "123 Main St  ",
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_RegisterSendsMarkupUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)

	want := RegistrationRequest{Name: "Jo <Admin>", Address: "Flat 2 <rear> Main St", Message: "&lt;3 Sam"}
	client.EXPECT().Register(gomock.Any(), want).Return(nil).Times(1)

	got, err := NewService(client).Register(context.Background(), RegistrationRequest{
		Name:    " Jo <Admin>",
		Address: "Flat 2 <rear> Main St",
		Message: "&lt;3 Sam ",
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_RegisterInvalidNeverCallsClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

	_, err := NewService(client).Register(context.Background(), RegistrationRequest{Name: "A", Address: "123 Main St"})
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, MsgNameTooShort, ve["name"])
}

func TestService_RegisterPropagatesClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	boom := errors.New("connection refused")
	client.EXPECT().Register(gomock.Any(), gomock.Any()).Return(boom)

	pub := &recordingPublisher{}
	got, err := NewServiceWithPublisher(client, pub, "Iftar").Register(context.Background(), RegistrationRequest{
		Name:    "Ahmed Khan",
		Address: "123 Main St",
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Ahmed Khan", got.Name)
	assert.Empty(t, pub.published, "failed registrations are not announced")
}

func TestService_RegisterPublishesNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil)

	pub := &recordingPublisher{err: errors.New("broker down")}
	ctx := middleware.ContextWithRequestID(context.Background(), "req-9")

	_, err := NewServiceWithPublisher(client, pub, "Iftar Invitation").Register(ctx, RegistrationRequest{
		Name:    "Fatima Ali",
		Address: "456 Oak Ave",
		Message: "Vegetarian please",
	})
	require.NoError(t, err, "a publish failure must not fail the registration")
	require.Len(t, pub.published, 1)

	n := pub.published[0]
	assert.Equal(t, notifications.NotificationTypeRegistrationReceived, n.Type)
	assert.Equal(t, "Fatima Ali", n.Name)
	assert.Equal(t, "Vegetarian please", n.Message)
	assert.Equal(t, "Iftar Invitation", n.EventTitle)
	assert.Equal(t, "req-9", n.RequestID)
}

// stalledPublisher holds every publish until release is closed
type stalledPublisher struct {
	release chan struct{}
	sent    chan *notifications.RegistrationNotification
}

func (p *stalledPublisher) PublishRegistration(_ context.Context, n *notifications.RegistrationNotification) error {
	<-p.release
	p.sent <- n
	return nil
}

func (p *stalledPublisher) Close() error { return nil }

func TestService_RegisterDoesNotWaitOnSlowBroker(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil)

	pub := &stalledPublisher{
		release: make(chan struct{}),
		sent:    make(chan *notifications.RegistrationNotification, 1),
	}
	svc := NewServiceWithPublisher(client, pub, "Iftar")
	svc.(*service).notifyWait = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	_, err := svc.Register(ctx, RegistrationRequest{Name: "Yusuf Omar", Address: "654 Maple Dr"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	// The request ending must not cancel the pending publication
	cancel()
	close(pub.release)
	select {
	case n := <-pub.sent:
		assert.Equal(t, "Yusuf Omar", n.Name)
	case <-time.After(time.Second):
		t.Fatal("notification was never published")
	}
}

func TestService_NotificationsEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)

	assert.False(t, NewService(client).NotificationsEnabled())
	assert.True(t, NewServiceWithPublisher(client, &recordingPublisher{}, "Iftar").NotificationsEnabled())
}

func TestService_ListNeverReturnsNilSlice(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any()).Return(nil, nil)

	list, err := NewService(client).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_RosterFetchFailureIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any()).Return(nil, errors.New("network down"))

	roster := NewService(client).Roster(context.Background(), "")
	assert.Equal(t, DefaultViewer, roster.Viewer)
	assert.Equal(t, 0, roster.Count())
}

func TestService_RosterIsRefetchedAndStable(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockClient(ctrl)
	list := []Attendee{
		{ID: "1", Name: "Ahmed Khan", Address: "123 Main St"},
		{ID: "2", Name: "Fatima Ali", Address: "456 Oak Ave", Message: "Hi"},
	}
	client.EXPECT().List(gomock.Any()).Return(list, nil).Times(2)

	svc := NewService(client)
	first := svc.Roster(context.Background(), "Fatima Ali")
	second := svc.Roster(context.Background(), "Fatima Ali")

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("roster changed between fetches (-first +second):\n%s", diff)
	}
}

func TestBuildRoster(t *testing.T) {
	attendees := []Attendee{
		{ID: "1", Name: "Ahmed Khan", Address: "123 Main St", Message: ""},
		{ID: "2", Name: "Ahmed Khan", Address: "9 Other Rd", Message: "Second Ahmed"},
		{ID: "3", Name: "ahmed khan", Address: "1 Lower Ln", Message: "Looking forward!"},
	}

	got := BuildRoster("Ahmed Khan", attendees)

	want := Roster{
		Viewer: "Ahmed Khan",
		Cards: []Card{
			{ID: "1", Name: "Ahmed Khan", Address: "123 Main St", Initials: "AK", IsViewer: true},
			{ID: "2", Name: "Ahmed Khan", Address: "9 Other Rd", Message: "Second Ahmed", Initials: "AK", HasMessage: true},
			{ID: "3", Name: "ahmed khan", Address: "1 Lower Ln", Message: "Looking forward!", Initials: "AK", HasMessage: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildRoster mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRoster_NoAttendees(t *testing.T) {
	got := BuildRoster("Guest", nil)
	assert.Equal(t, "Guest", got.Viewer)
	assert.Empty(t, got.Cards)
}
