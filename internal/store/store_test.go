package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

func TestReplaceClearsError(t *testing.T) {
	s := NewUserStore()
	s.Fail(errors.New("network down"))
	assert.Equal(t, "network down", s.LastError())

	s.Replace([]models.User{{ID: "u1"}})
	assert.Empty(t, s.LastError())
	assert.Equal(t, 1, s.Count())
}

func TestFailKeepsStaleList(t *testing.T) {
	s := NewUserStore()
	s.Replace([]models.User{{ID: "u1"}, {ID: "u2"}})

	s.SetLoading(true)
	s.Fail(errors.New("timeout"))

	assert.False(t, s.Loading())
	assert.Equal(t, "timeout", s.LastError())
	assert.Len(t, s.All(), 2, "stale data must survive a failed refresh")
}

func TestApplyCreatePrepends(t *testing.T) {
	s := NewUserStore()
	s.Replace([]models.User{{ID: "old"}})

	s.ApplyCreate(models.User{ID: "new"})

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[1].ID)
}

func TestUserApplyUpdateReplacesRecord(t *testing.T) {
	s := NewUserStore()
	s.Replace([]models.User{{ID: "u1", Email: "old@example.com"}})

	s.ApplyUpdate(models.User{ID: "u1", Email: "new@example.com", Credits: 5})

	u, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, float64(5), u.Credits)
}

func TestApplyDeleteFilters(t *testing.T) {
	s := NewUserStore()
	s.Replace([]models.User{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	s.ApplyDelete("b")

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[1].ID)
}

func TestDialogBeforeLoadIsNil(t *testing.T) {
	s := NewSessionStore()

	assert.Nil(t, s.OpenDialog("missing"))
	assert.Nil(t, s.Dialog())
	s.CloseDialog()
	assert.Nil(t, s.Dialog())
}

func TestDialogOpenAndClose(t *testing.T) {
	s := NewSessionStore()
	s.Replace([]models.Session{{ID: "s1", Subject: "Algebra"}})

	opened := s.OpenDialog("s1")
	require.NotNil(t, opened)
	assert.Equal(t, "Algebra", opened.Subject)

	s.CloseDialog()
	assert.Nil(t, s.Dialog())
}

func TestSessionApplyUpdateMergesPatch(t *testing.T) {
	s := NewSessionStore()
	s.Replace([]models.Session{{ID: "s1", Subject: "Algebra", Duration: 60, CreditsUsed: 1}})

	subject := "Geometry"
	duration := 90
	credits := 1.5
	s.ApplyUpdate("s1", models.UpdateSessionData{Subject: &subject, Duration: &duration, CreditsUsed: &credits})

	sess, ok := s.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "Geometry", sess.Subject)
	assert.Equal(t, 90, sess.Duration)
	assert.Equal(t, 1.5, sess.CreditsUsed)
}

func TestSessionApplyUpdateLeavesUnsetFields(t *testing.T) {
	s := NewSessionStore()
	s.Replace([]models.Session{{ID: "s1", Subject: "Algebra", Notes: "keep me"}})

	subject := "Geometry"
	s.ApplyUpdate("s1", models.UpdateSessionData{Subject: &subject})

	sess, _ := s.Get("s1")
	assert.Equal(t, "keep me", sess.Notes)
}

func TestPackageApplyUpdateMergesPatch(t *testing.T) {
	s := NewPackageStore()
	s.Replace([]models.Package{{ID: "p1", Status: models.PackageStatusApproved, Price: 5200}})

	status := models.PackageStatusScheduled
	link := "https://meet.example.com/p1"
	s.ApplyUpdate("p1", models.UpdatePackageData{Status: &status, MeetingLink: &link})

	p, ok := s.Get("p1")
	require.True(t, ok)
	assert.Equal(t, models.PackageStatusScheduled, p.Status)
	assert.Equal(t, "https://meet.example.com/p1", p.MeetingLink)
	assert.Equal(t, 5200, p.Price)
}

func TestPackageCountByStatus(t *testing.T) {
	s := NewPackageStore()
	s.Replace([]models.Package{
		{ID: "a", Status: models.PackageStatusApproved},
		{ID: "b", Status: models.PackageStatusApproved},
		{ID: "c", Status: models.PackageStatusCancelled},
	})

	assert.Equal(t, 2, s.CountByStatus(models.PackageStatusApproved))
	assert.Equal(t, 1, s.CountByStatus(models.PackageStatusCancelled))
	assert.Equal(t, 0, s.CountByStatus(models.PackageStatusCompleted))
}
