package patient

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

// date_of_birth is a DATE column and the model holds it as a string. pgx
// cannot decode a binary-format DATE into a string, so the column list must
// cast it to text server-side. Guard both halves: the decode really does
// fail, and the column list really does the cast.
func TestPatientColsSelectDateOfBirthAsText(t *testing.T) {
	var dob *string
	m := pgtype.NewMap()
	plan := m.PlanScan(pgtype.DateOID, pgtype.BinaryFormatCode, &dob)
	if plan != nil {
		// 4 bytes: days since 2000-01-01.
		if err := plan.Scan([]byte{0, 0, 0, 0}, &dob); err == nil {
			t.Fatal("binary DATE scanned into *string; the to_char cast may be unnecessary now")
		}
	}

	if !strings.Contains(patientCols, "to_char(date_of_birth, 'YYYY-MM-DD')") {
		t.Fatalf("patientCols must select date_of_birth as text, got %q", patientCols)
	}
}
