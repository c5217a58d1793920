package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notifService "smartvisit_backend/internals/features/notifications/service"
	userModel "smartvisit_backend/internals/features/users/user/model"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
)

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

type fakeEmail struct{ calls int }

func (f *fakeEmail) SendEmail(to, subject, body string) error {
	f.calls++
	return nil
}

type fakeSMS struct{ calls int }

func (f *fakeSMS) SendSMS(phone, message string) error {
	f.calls++
	return nil
}

type fakeWhatsApp struct{ calls int }

func (f *fakeWhatsApp) SendWhatsApp(phone, message string) error {
	f.calls++
	return nil
}

type fakeRealtime struct{ channels []string }

func (f *fakeRealtime) Trigger(channel, event string, payload map[string]any) error {
	f.channels = append(f.channels, channel)
	return nil
}

func expectNotificationInserts(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectQuery(`INSERT INTO "notifications"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	}
}

/* ==========================
   Badge allocation
========================== */

// A concurrent badge collision aborts the insert inside the open
// transaction; the savepoint fences the failed statement off so the
// retry's SELECT and re-insert still run.
func TestCreateWithBadge_RetriesUnderSavepointAfterCollision(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &LifecycleService{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(badge_number\)`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1000))
	mock.ExpectExec(`^SAVEPOINT badge_alloc`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "visitors"`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectExec(`^ROLLBACK TO SAVEPOINT badge_alloc`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(badge_number\)`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1001))
	mock.ExpectExec(`^SAVEPOINT badge_alloc`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "visitors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	v := &visitorModel.VisitorModel{FirstName: "Budi", Status: visitorModel.StatusCheckedIn}
	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.createWithBadge(tx, v)
	})

	require.NoError(t, err)
	require.NotNil(t, v.BadgeNumber)
	assert.Equal(t, 1001, *v.BadgeNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithBadge_NonCollisionErrorIsNotRetried(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &LifecycleService{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(badge_number\)`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1000))
	mock.ExpectExec(`^SAVEPOINT badge_alloc`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "visitors"`).
		WillReturnError(&pq.Error{Code: "23502"})
	mock.ExpectRollback()

	v := &visitorModel.VisitorModel{FirstName: "Budi"}
	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.createWithBadge(tx, v)
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ==========================
   Check-in host alert
========================== */

func TestNotifyCheckIn_HostAlertCoversAllChannels(t *testing.T) {
	db, mock := newMockDB(t)
	email := &fakeEmail{}
	sms := &fakeSMS{}
	wa := &fakeWhatsApp{}
	rt := &fakeRealtime{}
	svc := &LifecycleService{DB: db, Notifier: notifService.NewNotifier(db, email, sms, wa, rt)}

	// app + email + sms rows from the fan-out, one whatsapp row
	expectNotificationInserts(mock, 4)

	host := &userModel.UserModel{
		ID:             uuid.New(),
		FirstName:      "Siti",
		Email:          "siti@example.com",
		Phone:          "0812345678",
		WhatsappNumber: "0812345678",
	}
	v := &visitorModel.VisitorModel{ID: uuid.New(), FirstName: "Budi", Purpose: "Audit"}

	svc.notifyCheckIn(v, host)

	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, 1, wa.calls)
	require.Len(t, rt.channels, 2)
	assert.Contains(t, rt.channels[0], "user_")
	assert.Equal(t, "reception", rt.channels[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifyCheckIn_SkipsWhatsAppWithoutNumber(t *testing.T) {
	db, mock := newMockDB(t)
	wa := &fakeWhatsApp{}
	svc := &LifecycleService{DB: db, Notifier: notifService.NewNotifier(db, &fakeEmail{}, &fakeSMS{}, wa, &fakeRealtime{})}

	expectNotificationInserts(mock, 3)

	host := &userModel.UserModel{
		ID:        uuid.New(),
		FirstName: "Siti",
		Email:     "siti@example.com",
		Phone:     "0812345678",
	}
	svc.notifyCheckIn(&visitorModel.VisitorModel{FirstName: "Budi"}, host)

	assert.Equal(t, 0, wa.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
