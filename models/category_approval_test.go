package models

import (
	"testing"
	"time"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		fromStatus string
		want       bool
	}{
		{"approve pending", ActionApprove, StatusPending, true},
		{"approve approved", ActionApprove, StatusApproved, false},
		{"approve rejected", ActionApprove, StatusRejected, false},
		{"approve resubmission-required", ActionApprove, StatusResubmissionRequired, false},
		{"reject pending", ActionReject, StatusPending, true},
		{"reject rejected", ActionReject, StatusRejected, false},
		{"reject approved", ActionReject, StatusApproved, false},
		{"request resubmission on pending", ActionRequestResubmission, StatusPending, true},
		{"request resubmission on resubmission-required", ActionRequestResubmission, StatusResubmissionRequired, false},
		{"edit pending", ActionEdit, StatusPending, true},
		{"edit resubmission-required", ActionEdit, StatusResubmissionRequired, true},
		{"edit approved", ActionEdit, StatusApproved, false},
		{"edit rejected", ActionEdit, StatusRejected, false},
		{"unknown action", "archive", StatusPending, false},
		{"unknown status", ActionApprove, "draft", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTransition(tt.action, tt.fromStatus); got != tt.want {
				t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.action, tt.fromStatus, got, tt.want)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range []string{CategoryTourPackages, CategoryExcursions, CategoryAccommodation, CategoryTransportation} {
		if !ValidCategory(category) {
			t.Errorf("ValidCategory(%q) = false, want true", category)
		}
	}
	for _, category := range []string{"", "Tour-Packages", "car-rental", "tours"} {
		if ValidCategory(category) {
			t.Errorf("ValidCategory(%q) = true, want false", category)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusApproved, StatusRejected, StatusResubmissionRequired} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}
	if ValidStatus("in-review") {
		t.Error(`ValidStatus("in-review") = true, want false`)
	}
}

func TestBuildResubmissionSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := &CategoryApprovalRequest{
		Documents: []ApprovalDocument{
			{Name: "license.pdf", URL: "https://cdn.example.com/license.pdf", Type: DocumentTypeFile},
		},
	}

	t.Run("uses edited documents", func(t *testing.T) {
		edit := &UpdateApprovalRequest{
			Documents: []ApprovalDocument{
				{Name: "license-v2.pdf", URL: "https://cdn.example.com/license-v2.pdf", Type: DocumentTypeFile},
			},
			Notes: "updated license",
		}
		snap := BuildResubmissionSnapshot(current, edit, now)
		if !snap.SubmittedAt.Equal(now) {
			t.Errorf("SubmittedAt = %v, want %v", snap.SubmittedAt, now)
		}
		if len(snap.Documents) != 1 || snap.Documents[0].Name != "license-v2.pdf" {
			t.Errorf("Documents = %+v, want the edited document", snap.Documents)
		}
		if snap.Notes != "updated license" {
			t.Errorf("Notes = %q, want %q", snap.Notes, "updated license")
		}
	})

	t.Run("falls back to current documents", func(t *testing.T) {
		snap := BuildResubmissionSnapshot(current, &UpdateApprovalRequest{Notes: "same docs"}, now)
		if len(snap.Documents) != 1 || snap.Documents[0].Name != "license.pdf" {
			t.Errorf("Documents = %+v, want the current document", snap.Documents)
		}
	})

	t.Run("copies the slice", func(t *testing.T) {
		snap := BuildResubmissionSnapshot(current, &UpdateApprovalRequest{}, now)
		snap.Documents[0].Name = "mutated.pdf"
		if current.Documents[0].Name != "license.pdf" {
			t.Error("snapshot shares backing array with the request documents")
		}
	})
}
