package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateEntry(t *testing.T) {
	if !isDuplicateEntry(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '+77001234567' for key 'uq_users_phone'"}) {
		t.Error("error 1062 not recognized as a duplicate")
	}
	wrapped := fmt.Errorf("sign up: %w", &mysql.MySQLError{Number: 1062})
	if !isDuplicateEntry(wrapped) {
		t.Error("wrapped 1062 not recognized as a duplicate")
	}
	if isDuplicateEntry(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"}) {
		t.Error("unrelated MySQL error treated as a duplicate")
	}
	if isDuplicateEntry(errors.New("broken pipe")) {
		t.Error("generic error treated as a duplicate")
	}
	if isDuplicateEntry(nil) {
		t.Error("nil error treated as a duplicate")
	}
}
