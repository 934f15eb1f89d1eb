package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/will-terra/teste-time-register/internal/core/database"
	"github.com/will-terra/teste-time-register/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: email}
	require.NoError(t, db.Create(u).Error)
	return u
}

func ts(day, hour int) time.Time {
	return time.Date(2025, 9, day, hour, 0, 0, 0, time.UTC)
}

func TestCreateClosedRegister(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ana", "ana@example.com")
	svc := NewTimeRegisterService(db)

	in, out := ts(1, 8), ts(1, 17)
	tr, err := svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &in, ClockOut: &out})
	require.NoError(t, err)
	assert.NotZero(t, tr.ID)
	assert.False(t, tr.Open())
	assert.Equal(t, 9*time.Hour, tr.Duration())
}

func TestCreateRequiresClockIn(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ana", "ana@example.com")
	svc := NewTimeRegisterService(db)

	_, err := svc.Create(TimeRegisterInput{UserID: u.ID})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeRegisterService(db)

	in := ts(1, 8)
	_, err := svc.Create(TimeRegisterInput{UserID: 999, ClockIn: &in})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestClockOutMustBeAfterClockIn(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ana", "ana@example.com")
	svc := NewTimeRegisterService(db)

	in := ts(1, 17)
	for _, out := range []time.Time{ts(1, 8), ts(1, 17)} { // before and equal
		_, err := svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &in, ClockOut: &out})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}

	var count int64
	require.NoError(t, db.Model(&domain.TimeRegister{}).Count(&count).Error)
	assert.Zero(t, count, "rejected writes must not persist")
}

func TestSingleOpenRegisterPerUser(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ana", "ana@example.com")
	other := createUser(t, db, "Bia", "bia@example.com")
	svc := NewTimeRegisterService(db)

	first := ts(1, 8)
	_, err := svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &first})
	require.NoError(t, err)

	second := ts(2, 8)
	_, err = svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &second})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "already has an open time register")

	// A different user is unaffected.
	_, err = svc.Create(TimeRegisterInput{UserID: other.ID, ClockIn: &second})
	require.NoError(t, err)

	var open []domain.TimeRegister
	require.NoError(t, db.Where("user_id = ? AND clock_out IS NULL", u.ID).Find(&open).Error)
	assert.Len(t, open, 1)
}

func TestUpdateOpenRegisterExcludesItself(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ana", "ana@example.com")
	svc := NewTimeRegisterService(db)

	in := ts(1, 8)
	tr, err := svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &in})
	require.NoError(t, err)

	// Editing the open register's clock_in must not conflict with itself.
	newIn := ts(1, 9)
	got, err := svc.Update(tr.ID, TimeRegisterInput{ClockIn: &newIn})
	require.NoError(t, err)
	assert.True(t, got.ClockIn.Equal(newIn))
	assert.True(t, got.Open())
}

func TestUpdateClosesRegister(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ana", "ana@example.com")
	svc := NewTimeRegisterService(db)

	in := ts(1, 8)
	tr, err := svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &in})
	require.NoError(t, err)

	out := ts(1, 17)
	got, err := svc.Update(tr.ID, TimeRegisterInput{ClockOut: &out})
	require.NoError(t, err)
	assert.False(t, got.Open())

	// Once closed, a new register may be opened.
	next := ts(2, 8)
	_, err = svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &next})
	require.NoError(t, err)
}

func TestDeleteRegister(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ana", "ana@example.com")
	svc := NewTimeRegisterService(db)

	in, out := ts(1, 8), ts(1, 17)
	tr, err := svc.Create(TimeRegisterInput{UserID: u.ID, ClockIn: &in, ClockOut: &out})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(tr.ID))
	err = svc.Delete(tr.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
