package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatal("23505 must classify as a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("foreign key violations are not unique violations")
	}
	if isUniqueViolation(errors.New("plain")) {
		t.Fatal("plain errors are not unique violations")
	}
}
