package utils

import (
	"errors"
	"mime/multipart"
	"testing"
	"time"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	first, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp: %v", err)
	}
	if len(first) != 26 {
		t.Errorf("ULID length = %d, want 26", len(first))
	}

	second, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp: %v", err)
	}
	if first == second {
		t.Error("two generated ULIDs are identical")
	}
}

func TestImageExtension(t *testing.T) {
	u := New()

	tests := []struct {
		filename string
		wantExt  string
		wantOK   bool
	}{
		{filename: "photo.jpg", wantExt: ".jpg", wantOK: true},
		{filename: "PHOTO.JPEG", wantExt: ".jpeg", wantOK: true},
		{filename: "scan.heic", wantExt: ".heic", wantOK: true},
		{filename: "archive.zip", wantExt: ".zip", wantOK: false},
		{filename: "noextension", wantExt: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ext, ok := u.ImageExtension(tt.filename)
			if ext != tt.wantExt || ok != tt.wantOK {
				t.Errorf("ImageExtension(%q) = (%q, %v), want (%q, %v)",
					tt.filename, ext, ok, tt.wantExt, tt.wantOK)
			}
		})
	}
}

func TestValidateImageFile(t *testing.T) {
	u := New()

	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantErr error
	}{
		{
			name: "valid jpeg",
			file: &multipart.FileHeader{Filename: "tank.jpg", Size: 1024},
		},
		{
			name:    "wrong extension",
			file:    &multipart.FileHeader{Filename: "notes.txt", Size: 1024},
			wantErr: ErrInvalidFileType,
		},
		{
			name:    "oversized",
			file:    &multipart.FileHeader{Filename: "tank.png", Size: MaxImageSize + 1},
			wantErr: ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := u.ValidateImageFile(tt.file)
			if tt.wantErr == nil && err != nil {
				t.Errorf("ValidateImageFile = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateImageFile = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
