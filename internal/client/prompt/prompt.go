// Package prompt reads interactive input for the six-cities shell.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/SixCities/internal/models"
)

// ErrNoInput is returned when the input ends before a prompt is answered.
var ErrNoInput = errors.New("no input")

// Prompter asks questions on out and reads the answers line by line from in.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Line prints label and returns the next trimmed input line.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Credentials asks for email and password and validates them with the
// login form rules.
func (p *Prompter) Credentials() (models.AuthData, error) {
	email, err := p.Line("Email: ")
	if err != nil {
		return models.AuthData{}, err
	}
	password, err := p.Line("Password: ")
	if err != nil {
		return models.AuthData{}, err
	}
	creds := models.AuthData{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return models.AuthData{}, err
	}
	return creds, nil
}

// Review asks for a rating and a comment for id and validates them.
func (p *Prompter) Review(id models.OfferID) (models.ReviewData, error) {
	label := fmt.Sprintf("Rating (%d-%d): ", models.MinReviewRating, models.MaxReviewRating)
	raw, err := p.Line(label)
	if err != nil {
		return models.ReviewData{}, err
	}
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return models.ReviewData{}, fmt.Errorf("%w: %q is not a number", models.ErrInvalidRating, raw)
	}

	comment, err := p.Line(fmt.Sprintf("Comment (%d-%d characters): ", models.MinCommentLength, models.MaxCommentLength))
	if err != nil {
		return models.ReviewData{}, err
	}

	review := models.ReviewData{OfferID: id, Comment: comment, Rating: rating}
	if err := review.Validate(); err != nil {
		return models.ReviewData{}, err
	}
	return review, nil
}
