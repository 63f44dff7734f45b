package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cashlog/internal/common"
)

func newSessionService(t *testing.T, rm *fakeRepoManager, logger *fakeLogger) (*SessionService, func()) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewSessionService(db, rm, testConfig(), logger), func() { db.Close() }
}

func TestSessionCreate(t *testing.T) {
	rm := &fakeRepoManager{sessions: &fakeSessionsRepo{}}
	s, closeDB := newSessionService(t, rm, &fakeLogger{})
	defer closeDB()

	key, err := s.Create(context.Background(), 9)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(key)
	assert.NoError(t, parseErr, "session key should be a UUID")

	require.Len(t, rm.sessions.upserts, 1)
	assert.Equal(t, sessionRow{key: key, name: "account", value: "9"}, rm.sessions.upserts[0])
}

func TestResolveAccount_Known(t *testing.T) {
	rm := &fakeRepoManager{sessions: &fakeSessionsRepo{getOut: "17"}}
	s, closeDB := newSessionService(t, rm, &fakeLogger{})
	defer closeDB()

	id, ok, err := s.ResolveAccount(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)
}

func TestResolveAccount_UnknownKeyIsAnonymous(t *testing.T) {
	rm := &fakeRepoManager{sessions: &fakeSessionsRepo{getErr: common.ErrorNotFound}}
	s, closeDB := newSessionService(t, rm, &fakeLogger{})
	defer closeDB()

	_, ok, err := s.ResolveAccount(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveAccount_UnparseableValueIsAnonymousWithWarning(t *testing.T) {
	rm := &fakeRepoManager{sessions: &fakeSessionsRepo{getOut: "not-a-number"}}
	logger := &fakeLogger{}
	s, closeDB := newSessionService(t, rm, logger)
	defer closeDB()

	_, ok, err := s.ResolveAccount(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEmpty(t, logger.warns, "integrity anomaly should be logged")
}

func TestResolveAccount_InfraErrorPropagates(t *testing.T) {
	rm := &fakeRepoManager{sessions: &fakeSessionsRepo{getErr: errors.New("db down")}}
	s, closeDB := newSessionService(t, rm, &fakeLogger{})
	defer closeDB()

	_, ok, err := s.ResolveAccount(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestDestroy_NonexistentKeyIsNoop(t *testing.T) {
	rm := &fakeRepoManager{sessions: &fakeSessionsRepo{}}
	s, closeDB := newSessionService(t, rm, &fakeLogger{})
	defer closeDB()

	require.NoError(t, s.Destroy(context.Background(), "absent"))
	assert.Equal(t, []string{"absent"}, rm.sessions.deletes)
}
