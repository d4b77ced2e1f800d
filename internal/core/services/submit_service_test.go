package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"statup/internal/core/domain"
	"statup/internal/core/ports/mocks"
)

func newSubmitService(drive *mocks.MockDrive, collaborators []string) *SubmitService {
	return NewSubmitService(
		NewFolderService(drive),
		NewStatusService(drive),
		"status",
		collaborators,
	)
}

func dailyPeriod(t *testing.T, s string) domain.Period {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		t.Fatal(err)
	}
	p, err := domain.NewDailyPeriod(d)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSubmitServiceExecute_FirstDailySubmission(t *testing.T) {
	drive := mocks.NewMockDrive()
	service := newSubmitService(drive, nil)
	ctx := context.Background()

	resp, err := service.Execute(ctx, SubmitRequest{
		Profile: "acme",
		Period:  dailyPeriod(t, "2024-05-01"),
		Content: "shipped the widget",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if resp.FileName != "2024-05-01" {
		t.Errorf("Expected file name 2024-05-01, got %q", resp.FileName)
	}
	if !resp.CreatedDocument {
		t.Error("Expected a new document on first submission")
	}
	if !strings.Contains(resp.DocumentURL, resp.DocumentID) {
		t.Errorf("Expected URL to embed the document ID, got %q", resp.DocumentURL)
	}

	// Root folder, profile subfolder, and the document all exist.
	rootID, _ := drive.FindFolder(ctx, "status", "")
	if rootID == "" {
		t.Fatal("Expected root status folder")
	}
	profileID, _ := drive.FindFolder(ctx, "acme", rootID)
	if profileID == "" {
		t.Fatal("Expected profile subfolder")
	}
	if text := drive.DocumentText("2024-05-01", profileID); !strings.HasPrefix(text, "shipped the widget\n") {
		t.Errorf("Expected document body to start with content, got %q", text)
	}
}

func TestSubmitServiceExecute_SecondSubmissionAppends(t *testing.T) {
	drive := mocks.NewMockDrive()
	service := newSubmitService(drive, nil)
	ctx := context.Background()

	period := dailyPeriod(t, "2024-05-01")

	if _, err := service.Execute(ctx, SubmitRequest{Profile: "acme", Period: period, Content: "morning update"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	resp, err := service.Execute(ctx, SubmitRequest{Profile: "acme", Period: period, Content: "evening update"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.CreatedDocument {
		t.Error("Expected second submission to append, not create")
	}

	rootID, _ := drive.FindFolder(ctx, "status", "")
	profileID, _ := drive.FindFolder(ctx, "acme", rootID)
	text := drive.DocumentText("2024-05-01", profileID)

	morningAt := strings.Index(text, "morning update")
	eveningAt := strings.Index(text, "evening update")
	if morningAt == -1 || eveningAt == -1 || morningAt > eveningAt {
		t.Errorf("Expected original content before appended content, got %q", text)
	}
	if !strings.Contains(text, separatorLine) {
		t.Errorf("Expected separator between sections, got %q", text)
	}

	// Folders are reused, never duplicated, across sequential submissions.
	if n := drive.FolderCount("status", ""); n != 1 {
		t.Errorf("Expected 1 root folder, got %d", n)
	}
	if n := drive.FolderCount("acme", rootID); n != 1 {
		t.Errorf("Expected 1 profile folder, got %d", n)
	}
}

func TestSubmitServiceExecute_EmptyContentMakesNoRemoteCalls(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "whitespace only", content: "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drive := mocks.NewMockDrive()
			service := newSubmitService(drive, nil)

			_, err := service.Execute(context.Background(), SubmitRequest{
				Profile: "acme",
				Period:  dailyPeriod(t, "2024-05-01"),
				Content: tt.content,
			})
			if !errors.Is(err, domain.ErrEmptyContent) {
				t.Fatalf("Expected ErrEmptyContent, got %v", err)
			}
			if drive.WriteCalls != 0 {
				t.Errorf("Expected zero remote write calls, got %d", drive.WriteCalls)
			}
		})
	}
}

func TestSubmitServiceExecute_WeeklyFileName(t *testing.T) {
	drive := mocks.NewMockDrive()
	service := newSubmitService(drive, nil)

	start, _ := time.Parse(domain.DateFormat, "2024-01-01")
	end, _ := time.Parse(domain.DateFormat, "2024-01-07")
	period, err := domain.NewWeeklyPeriod(start, end)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := service.Execute(context.Background(), SubmitRequest{
		Profile: "acme",
		Period:  period,
		Content: "weekly summary",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.FileName != "Weekly_2024-01-01_2024-01-07" {
		t.Errorf("Expected Weekly_2024-01-01_2024-01-07, got %q", resp.FileName)
	}
}

func TestSubmitServiceExecute_CollaboratorGrantsOnFirstCreationOnly(t *testing.T) {
	drive := mocks.NewMockDrive()
	collaborators := []string{"lead@example.com", "pm@example.com"}
	service := newSubmitService(drive, collaborators)
	ctx := context.Background()

	if _, err := service.Execute(ctx, SubmitRequest{
		Profile: "acme",
		Period:  dailyPeriod(t, "2024-05-01"),
		Content: "first run",
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rootID, _ := drive.FindFolder(ctx, "status", "")
	if got := drive.Grants[rootID]; len(got) != 2 {
		t.Fatalf("Expected 2 grants on root folder, got %d", len(got))
	}

	// Profile subfolders never receive grants.
	profileID, _ := drive.FindFolder(ctx, "acme", rootID)
	if len(drive.Grants[profileID]) != 0 {
		t.Errorf("Expected no grants on profile folder, got %d", len(drive.Grants[profileID]))
	}

	// A second run finds the root folder and issues no further grants.
	if _, err := service.Execute(ctx, SubmitRequest{
		Profile: "other",
		Period:  dailyPeriod(t, "2024-05-02"),
		Content: "second run",
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := drive.Grants[rootID]; len(got) != 2 {
		t.Errorf("Expected grants to stay at 2 after second run, got %d", len(got))
	}
}

func TestSubmitServiceExecute_BatchUpdateFailurePropagates(t *testing.T) {
	drive := mocks.NewMockDrive()
	service := newSubmitService(drive, nil)
	ctx := context.Background()

	// Seed the folders and document, then make the batch update fail.
	rootID := drive.AddFolder("status", "")
	profileID := drive.AddFolder("acme", rootID)
	drive.AddDocument("2024-05-01", profileID, "first update\n")
	drive.FailInsert = true

	_, err := service.Execute(ctx, SubmitRequest{
		Profile: "acme",
		Period:  dailyPeriod(t, "2024-05-01"),
		Content: "second update",
	})

	var writeErr *domain.DocumentWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Expected DocumentWriteError, got %T: %v", err, err)
	}
	if text := drive.DocumentText("2024-05-01", profileID); text != "first update\n" {
		t.Errorf("Expected document unchanged after failed update, got %q", text)
	}
}

func TestSubmitServiceExecute_RootPersistsWhenProfileCreationFails(t *testing.T) {
	drive := mocks.NewMockDrive()
	service := newSubmitService(drive, nil)
	ctx := context.Background()

	// First run creates the root folder, then fails on the profile
	// subfolder create.
	drive.AddFolder("status", "")
	drive.FailCreateFolder = true

	if _, err := service.Execute(ctx, SubmitRequest{
		Profile: "acme",
		Period:  dailyPeriod(t, "2024-05-01"),
		Content: "update",
	}); err == nil {
		t.Fatal("Expected error from failing folder create")
	}

	// The root folder persists and is found, not recreated, on retry.
	drive.FailCreateFolder = false
	if _, err := service.Execute(ctx, SubmitRequest{
		Profile: "acme",
		Period:  dailyPeriod(t, "2024-05-01"),
		Content: "update",
	}); err != nil {
		t.Fatalf("Unexpected error on retry: %v", err)
	}
	if n := drive.FolderCount("status", ""); n != 1 {
		t.Errorf("Expected 1 root folder after retry, got %d", n)
	}
}
