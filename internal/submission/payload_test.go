package submission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderbros/booking-platform/internal/form"
)

func snapshotForTuesday() form.Snapshot {
	date := time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC)
	return form.Snapshot{
		Name:                "Jane Doe",
		Phone:               "020000000",
		SelectedDate:        &date,
		SelectedTime:        "14:30",
		PhoneConfirmation:   form.PhoneConfirmed,
		ExistingProjectInfo: "loft conversion",
		JobDetails:          "need quote for rewiring",
		Prefill:             form.Prefill{Name: "Jane Doe", Phone: "020000000"},
	}
}

func TestBuildPayload(t *testing.T) {
	now := time.Date(2026, time.September, 2, 10, 30, 0, 0, time.UTC)
	p, err := BuildPayload(snapshotForTuesday(), now, "Trader Brothers Booking Form", "test-agent")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", p.ClientName)
	assert.Equal(t, "020000000", p.AutofilledPhone)
	assert.Equal(t, "020000000", p.PhoneNumber, "confirmed branch resolves to existing number")
	assert.True(t, p.PhoneNumberConfirmed)
	assert.Equal(t, "020000000", p.OriginalPhoneNumber)
	assert.Equal(t, "2026-09-08", p.ConsultationDate)
	assert.Equal(t, "14:30", p.ConsultationTime)
	assert.Equal(t, "Tuesday, 8 September 2026", p.FormattedDate)
	assert.Equal(t, "14:30", p.FormattedTime)
	assert.Equal(t, "2026-09-02T10:30:00Z", p.SubmissionTimestamp)
	assert.Equal(t, "Trader Brothers Booking Form", p.Source)
	assert.Equal(t, "test-agent", p.UserAgent)
	assert.Equal(t, "Jane Doe", p.URLParams.Name)
}

func TestBuildPayloadNewNumberBranch(t *testing.T) {
	snap := snapshotForTuesday()
	snap.PhoneConfirmation = form.PhoneNeedsNew
	snap.NewPhoneNumber = "07911123456"

	p, err := BuildPayload(snap, time.Now(), "src", "ua")
	require.NoError(t, err)

	assert.Equal(t, "07911123456", p.PhoneNumber)
	assert.False(t, p.PhoneNumberConfirmed)
	assert.Equal(t, "020000000", p.OriginalPhoneNumber, "original number is echoed verbatim")
}

func TestBuildPayloadIncomplete(t *testing.T) {
	snap := snapshotForTuesday()
	snap.SelectedDate = nil
	_, err := BuildPayload(snap, time.Now(), "src", "ua")
	assert.ErrorIs(t, err, ErrIncompleteForm)

	snap = snapshotForTuesday()
	snap.SelectedTime = ""
	_, err = BuildPayload(snap, time.Now(), "src", "ua")
	assert.ErrorIs(t, err, ErrIncompleteForm)
}

func TestConfirmationSummary(t *testing.T) {
	now := time.Date(2026, time.September, 2, 10, 30, 0, 0, time.UTC)
	p, err := BuildPayload(snapshotForTuesday(), now, "src", "ua")
	require.NoError(t, err)

	c := buildConfirmation(p, time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC), now)
	assert.Equal(t,
		"Can't wait Jane Doe, looking forward to our chat on 8 September at 14:30. Have a great rest of your day!",
		c.Message)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "020000000", c.Phone)
	assert.Equal(t, "Tuesday, 8 September 2026", c.Date)
	assert.Equal(t, "14:30", c.Time)
	assert.Equal(t, "loft conversion", c.ExistingProjectInfo)
	assert.Equal(t, "need quote for rewiring", c.JobDetails)
}
