package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
)

func TestBatchReportErr(t *testing.T) {
	t.Parallel()

	var empty BatchReport
	if err := empty.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	report := BatchReport{
		Failures: []UserFailure{
			{UserID: "u2", Err: fantasy.ErrInvalidSquadInvariant},
			{UserID: "u1", Err: ErrDependencyUnavailable},
		},
	}
	report.sortFailures()
	if report.Failures[0].UserID != "u1" {
		t.Fatalf("failures not sorted: %+v", report.Failures)
	}

	err := report.Err()
	if err == nil {
		t.Fatalf("expected combined error")
	}
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected combined error to match first failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "user u1") {
		t.Fatalf("expected user id in error message, got %q", err.Error())
	}
	if report.Failed() != 2 {
		t.Fatalf("failed = %d, want 2", report.Failed())
	}
}
