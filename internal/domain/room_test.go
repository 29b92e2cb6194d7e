package domain

import (
	"strings"
	"testing"
)

func TestParseVisibility(t *testing.T) {
	cases := []struct {
		in      string
		want    Visibility
		wantErr bool
	}{
		{"", VisibilityHostApproval, false},
		{"host-approval", VisibilityHostApproval, false},
		{"open", VisibilityOpen, false},
		{"public", VisibilityOpen, false},
		{"password", VisibilityPassword, false},
		{"private", VisibilityPassword, false},
		{" Open ", VisibilityOpen, false},
		{"vip", VisibilityOpen, true},
	}
	for _, tc := range cases {
		got, err := ParseVisibility(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseVisibility(%q) err=%v, wantErr=%v", tc.in, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseVisibility(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewRoom_Validation(t *testing.T) {
	if _, err := NewRoom("", VisibilityOpen, ""); err != ErrRoomIDEmpty {
		t.Fatalf("empty id err=%v, want ErrRoomIDEmpty", err)
	}
	if _, err := NewRoom(strings.Repeat("x", MaxRoomIDLen+1), VisibilityOpen, ""); err != ErrRoomIDTooLong {
		t.Fatalf("long id err=%v, want ErrRoomIDTooLong", err)
	}
	if _, err := NewRoom("r", VisibilityPassword, ""); err != ErrPasswordRequired {
		t.Fatalf("password room without password err=%v, want ErrPasswordRequired", err)
	}

	r, err := NewRoom("r", VisibilityOpen, "ignored")
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	if r.Password != "" {
		t.Fatalf("open room kept a password: %q", r.Password)
	}
}

func TestNewParticipant_FallbackName(t *testing.T) {
	p, err := NewParticipant(" alice ", "", "Guest")
	if err != nil {
		t.Fatalf("NewParticipant: %v", err)
	}
	if p.ID != "alice" || p.Name != "Guest" {
		t.Fatalf("got %+v, want trimmed id with fallback name", p)
	}

	if _, err := NewParticipant("", "n", "Guest"); err != ErrUserIDEmpty {
		t.Fatalf("empty id err=%v, want ErrUserIDEmpty", err)
	}
	if _, err := NewParticipant("u", strings.Repeat("n", MaxNameLen+1), "Guest"); err != ErrNameTooLong {
		t.Fatalf("long name err=%v, want ErrNameTooLong", err)
	}
}
