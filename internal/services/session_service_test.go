package services

import (
	"strings"
	"testing"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
)

func TestResolveClosedStatusRequesterWithdrawsRequest(t *testing.T) {
	session := &models.Session{
		ProviderID:  7,
		RequesterID: 42,
		Status:      models.SessionStatusRequested,
	}

	status, err := resolveClosedStatus(session, 42)
	if err != nil {
		t.Fatalf("resolveClosedStatus: %v", err)
	}
	if status != models.SessionStatusCancelled {
		t.Fatalf("expected Cancelled, got %q", status)
	}
}

func TestResolveClosedStatusProviderDeniesRequest(t *testing.T) {
	session := &models.Session{
		ProviderID:  7,
		RequesterID: 42,
		Status:      models.SessionStatusRequested,
	}

	status, err := resolveClosedStatus(session, 7)
	if err != nil {
		t.Fatalf("resolveClosedStatus: %v", err)
	}
	if status != models.SessionStatusDenied {
		t.Fatalf("expected Denied, got %q", status)
	}
}

func TestResolveClosedStatusConfirmedCancelsForEitherSide(t *testing.T) {
	session := &models.Session{
		ProviderID:  7,
		RequesterID: 42,
		Status:      models.SessionStatusConfirmed,
	}

	for _, actorID := range []int64{7, 42} {
		status, err := resolveClosedStatus(session, actorID)
		if err != nil {
			t.Fatalf("resolveClosedStatus(%d): %v", actorID, err)
		}
		if status != models.SessionStatusCancelled {
			t.Fatalf("expected Cancelled for actor %d, got %q", actorID, status)
		}
	}
}

func TestResolveClosedStatusRejectsTerminalStates(t *testing.T) {
	for _, current := range []string{
		models.SessionStatusDenied,
		models.SessionStatusCancelled,
		models.SessionStatusCompleted,
	} {
		session := &models.Session{
			ProviderID:  7,
			RequesterID: 42,
			Status:      current,
		}
		if _, err := resolveClosedStatus(session, 42); err != ErrInvalidState {
			t.Fatalf("expected ErrInvalidState for %q, got %v", current, err)
		}
	}
}

func TestNormalizeMeetingURLTrimsAndDropsEmpty(t *testing.T) {
	padded := "  https://meet.example.com/abc  "
	url, err := normalizeMeetingURL(&padded)
	if err != nil {
		t.Fatalf("normalizeMeetingURL: %v", err)
	}
	if url == nil || *url != "https://meet.example.com/abc" {
		t.Fatalf("expected trimmed url, got %v", url)
	}

	blank := "   "
	url, err = normalizeMeetingURL(&blank)
	if err != nil {
		t.Fatalf("normalizeMeetingURL blank: %v", err)
	}
	if url != nil {
		t.Fatalf("expected nil for blank url, got %q", *url)
	}

	url, err = normalizeMeetingURL(nil)
	if err != nil {
		t.Fatalf("normalizeMeetingURL nil: %v", err)
	}
	if url != nil {
		t.Fatalf("expected nil for nil url, got %q", *url)
	}
}

func TestNormalizeMeetingURLRejectsOverlongValue(t *testing.T) {
	long := "https://meet.example.com/" + strings.Repeat("x", maxMeetingURLLength)
	if _, err := normalizeMeetingURL(&long); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSessionTerminalCoversClosedStatuses(t *testing.T) {
	cases := map[string]bool{
		models.SessionStatusRequested: false,
		models.SessionStatusConfirmed: false,
		models.SessionStatusDenied:    true,
		models.SessionStatusCancelled: true,
		models.SessionStatusCompleted: true,
	}
	for status, want := range cases {
		session := &models.Session{Status: status}
		if session.Terminal() != want {
			t.Fatalf("Terminal() for %q: expected %v", status, want)
		}
	}
}
