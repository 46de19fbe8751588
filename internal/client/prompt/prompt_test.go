package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/atinyakov/SixCities/internal/models"
)

func TestCredentials(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  a@b.com \nsecret1\n"), &out)

	creds, err := p.Credentials()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Email != "a@b.com" {
		t.Errorf("Email = %q; want %q", creds.Email, "a@b.com")
	}
	if creds.Password != "secret1" {
		t.Errorf("Password = %q; want %q", creds.Password, "secret1")
	}
	if !strings.Contains(out.String(), "Email: ") || !strings.Contains(out.String(), "Password: ") {
		t.Errorf("prompts not printed, got %q", out.String())
	}
}

func TestCredentials_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"bad email", "nobody\nsecret1\n", models.ErrInvalidEmail},
		{"weak password", "a@b.com\nsecret\n", models.ErrInvalidPassword},
		{"eof", "a@b.com\n", ErrNoInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(strings.NewReader(tt.input), &bytes.Buffer{})
			_, err := p.Credentials()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestReview(t *testing.T) {
	comment := strings.Repeat("a", models.MinCommentLength)
	p := New(strings.NewReader("4\n"+comment+"\n"), &bytes.Buffer{})

	review, err := p.Review("7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.OfferID != "7" || review.Rating != 4 || review.Comment != comment {
		t.Errorf("unexpected review: %+v", review)
	}
}

func TestReview_Invalid(t *testing.T) {
	long := strings.Repeat("b", models.MaxCommentLength+1)
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not a number", "five\n" + strings.Repeat("a", 60) + "\n", models.ErrInvalidRating},
		{"out of scale", "6\n" + strings.Repeat("a", 60) + "\n", models.ErrInvalidRating},
		{"short comment", "3\ntoo short\n", models.ErrInvalidComment},
		{"long comment", "3\n" + long + "\n", models.ErrInvalidComment},
		{"eof", "", ErrNoInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(strings.NewReader(tt.input), &bytes.Buffer{})
			_, err := p.Review("1")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v; want %v", err, tt.want)
			}
		})
	}
}
