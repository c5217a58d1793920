package service

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notifModel "smartvisit_backend/internals/features/notifications/model"
)

/* ==========================
   Fake senders
========================== */

type fakeEmail struct {
	err   error
	calls int
}

func (f *fakeEmail) SendEmail(to, subject, body string) error {
	f.calls++
	return f.err
}

type fakeSMS struct {
	err   error
	calls int
}

func (f *fakeSMS) SendSMS(phone, message string) error {
	f.calls++
	return f.err
}

type panickingSMS struct{}

func (panickingSMS) SendSMS(phone, message string) error {
	panic("sms gateway exploded")
}

type fakeWhatsApp struct {
	err   error
	calls int
}

func (f *fakeWhatsApp) SendWhatsApp(phone, message string) error {
	f.calls++
	return f.err
}

type fakeRealtime struct {
	err      error
	channels []string
	events   []string
}

func (f *fakeRealtime) Trigger(channel, event string, payload map[string]any) error {
	f.channels = append(f.channels, channel)
	f.events = append(f.events, event)
	return f.err
}

/* ==========================
   Test wiring
========================== */

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func expectNotificationInserts(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectQuery(`INSERT INTO "notifications"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	}
}

func testContact() RecipientContact {
	uid := uuid.New()
	return RecipientContact{
		Name:   "Budi Santoso",
		Email:  "budi@example.com",
		Phone:  "0812345678",
		UserID: &uid,
	}
}

/* ==========================
   Tests
========================== */

func TestSend_AllExpandsToThreeChannels(t *testing.T) {
	db, mock := newMockDB(t)
	email := &fakeEmail{}
	sms := &fakeSMS{}
	rt := &fakeRealtime{}
	n := NewNotifier(db, email, sms, nil, rt)

	expectNotificationInserts(mock, 3)

	results := n.Send(testContact(), "Subject", "Hello", []string{notifModel.ChannelAll})

	require.Len(t, results, 3)
	assert.True(t, results[notifModel.ChannelEmail].OK)
	assert.True(t, results[notifModel.ChannelSMS].OK)
	assert.True(t, results[notifModel.ChannelApp].OK)
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, sms.calls)
	require.Len(t, rt.channels, 1)
	assert.Contains(t, rt.channels[0], "user_")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_FailingChannelDoesNotBlockOthers(t *testing.T) {
	db, mock := newMockDB(t)
	email := &fakeEmail{}
	sms := &fakeSMS{err: errors.New("gateway down")}
	rt := &fakeRealtime{}
	n := NewNotifier(db, email, sms, nil, rt)

	expectNotificationInserts(mock, 3)

	results := n.Send(testContact(), "Subject", "Hello", []string{notifModel.ChannelAll})

	require.Len(t, results, 3)
	assert.True(t, results[notifModel.ChannelEmail].OK)
	assert.False(t, results[notifModel.ChannelSMS].OK)
	assert.Equal(t, "gateway down", results[notifModel.ChannelSMS].Error)
	assert.True(t, results[notifModel.ChannelApp].OK)
	assert.Equal(t, 1, email.calls, "email must still be attempted")
	require.Len(t, rt.channels, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_PanickingSenderIsContained(t *testing.T) {
	db, mock := newMockDB(t)
	email := &fakeEmail{}
	n := NewNotifier(db, email, panickingSMS{}, nil, &fakeRealtime{})

	expectNotificationInserts(mock, 3)

	var results map[string]ChannelResult
	assert.NotPanics(t, func() {
		results = n.Send(testContact(), "Subject", "Hello", []string{notifModel.ChannelAll})
	})

	assert.False(t, results[notifModel.ChannelSMS].OK)
	assert.True(t, results[notifModel.ChannelEmail].OK)
	assert.True(t, results[notifModel.ChannelApp].OK)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_ChannelWithoutCoordinateIsOmitted(t *testing.T) {
	db, mock := newMockDB(t)
	n := NewNotifier(db, &fakeEmail{}, &fakeSMS{}, nil, &fakeRealtime{})

	// email only: no phone, no user id
	contact := RecipientContact{Name: "Visitor", Email: "v@example.com"}
	expectNotificationInserts(mock, 1)

	results := n.Send(contact, "Subject", "Hello", []string{notifModel.ChannelAll})

	require.Len(t, results, 1)
	assert.True(t, results[notifModel.ChannelEmail].OK)
	assert.NotContains(t, results, notifModel.ChannelSMS)
	assert.NotContains(t, results, notifModel.ChannelApp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_DuplicateAndUnknownChannels(t *testing.T) {
	db, mock := newMockDB(t)
	email := &fakeEmail{}
	n := NewNotifier(db, email, &fakeSMS{}, nil, nil)

	contact := RecipientContact{Name: "Visitor", Email: "v@example.com"}
	expectNotificationInserts(mock, 1)

	results := n.Send(contact, "Subject", "Hello", []string{"email", "email", "pigeon"})

	require.Len(t, results, 1)
	assert.Equal(t, 1, email.calls, "deduped channel must send once")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_NeverReachesWhatsAppSender(t *testing.T) {
	db, mock := newMockDB(t)
	wa := &fakeWhatsApp{}
	n := NewNotifier(db, &fakeEmail{}, &fakeSMS{}, wa, &fakeRealtime{})

	contact := testContact()
	contact.Whatsapp = "0812345678"
	expectNotificationInserts(mock, 3)

	results := n.Send(contact, "Subject", "Hello", []string{notifModel.ChannelAll})

	require.Len(t, results, 3)
	assert.NotContains(t, results, notifModel.ChannelWhatsApp)
	assert.Equal(t, 0, wa.calls, "whatsapp goes through SendWhatsApp, not the fan-out")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendWhatsApp_RecordsWhatsAppChannel(t *testing.T) {
	db, mock := newMockDB(t)
	wa := &fakeWhatsApp{}
	n := NewNotifier(db, nil, nil, wa, nil)

	contact := testContact()
	contact.Whatsapp = "0812345678"

	// columns: user_id, visitor_id, message, channel, status, sent_at, read_at, created_at
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Hello",
			notifModel.ChannelWhatsApp, notifModel.StatusSent,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	res := n.SendWhatsApp(contact, "Hello")

	assert.True(t, res.OK)
	assert.Equal(t, 1, wa.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendWhatsApp_NoNumberIsNotAttempted(t *testing.T) {
	db, mock := newMockDB(t)
	wa := &fakeWhatsApp{}
	n := NewNotifier(db, nil, nil, wa, nil)

	res := n.SendWhatsApp(RecipientContact{Name: "Visitor"}, "Hello")

	assert.False(t, res.OK)
	assert.Equal(t, 0, wa.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTriggerRealtime_NoNotificationRow(t *testing.T) {
	db, mock := newMockDB(t)
	rt := &fakeRealtime{}
	n := NewNotifier(db, nil, nil, nil, rt)

	require.NoError(t, n.TriggerRealtime("reception", "visitor_checked_in", map[string]any{"id": "x"}))
	assert.Equal(t, []string{"reception"}, rt.channels)
	assert.Equal(t, []string{"visitor_checked_in"}, rt.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpandChannels(t *testing.T) {
	assert.Equal(t,
		[]string{notifModel.ChannelEmail, notifModel.ChannelSMS, notifModel.ChannelApp},
		expandChannels([]string{notifModel.ChannelAll}))
	assert.Equal(t,
		[]string{notifModel.ChannelSMS},
		expandChannels([]string{"sms", "sms", "carrier-pigeon"}))
	assert.Empty(t, expandChannels(nil))
}
