package iso8601

import (
	"errors"
	"testing"
	"time"

	"github.com/curtisnewbie/datecodec/util/errs"
)

func TestParse(t *testing.T) {
	cet := time.FixedZone("", 3600)
	cases := []struct {
		text string
		want time.Time
	}{
		{"2023-07-04", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"20230704", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"2023-07-04T10:15Z", time.Date(2023, 7, 4, 10, 15, 0, 0, time.UTC)},
		{"2023-07-04T10:15:30+01:00", time.Date(2023, 7, 4, 10, 15, 30, 0, cet)},
		{"2023-07-04T10:15:30.123+0100", time.Date(2023, 7, 4, 10, 15, 30, 123_000_000, cet)},
		{"2023-07-04T10:15:30+01", time.Date(2023, 7, 4, 10, 15, 30, 0, cet)},
		{"20230704T101530Z", time.Date(2023, 7, 4, 10, 15, 30, 0, time.UTC)},
	}
	for _, c := range cases {
		v, err := Parse(c.text, 0, nil)
		if err != nil {
			t.Fatalf("%q: %v", c.text, err)
		}
		if !v.Equal(c.want) {
			t.Fatalf("%q: got %v, want %v", c.text, v, c.want)
		}
	}
}

func TestParsePos(t *testing.T) {
	v, err := Parse("date=2023-07-04", 5, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatal(v)
	}
}

func TestParseFailure(t *testing.T) {
	for _, text := range []string{"04/07/2023", "2023-07-04T10:15:30", "", "2023-07-04 10:15:30Z", "July 4, 2023"} {
		_, err := Parse(text, 0, nil)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected ParseError, got %v", text, err)
		}
		if pe.Text != text {
			t.Fatalf("text: %q", pe.Text)
		}
		if !errors.Is(err, errs.ErrIllegalDate) {
			t.Fatalf("%q: should be ErrIllegalDate", text)
		}
		t.Log(err)
	}
	if _, err := Parse("2023", 10, nil); err == nil {
		t.Fatal("should fail")
	}
}

func TestParseDateOnlyInLocation(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatal(err)
	}
	v, err := Parse("2023-07-04", 0, shanghai)
	if err != nil {
		t.Fatal(err)
	}
	t.Log(v)
	if !v.Equal(time.Date(2023, 7, 3, 16, 0, 0, 0, time.UTC)) || v.Location() != shanghai {
		t.Fatal(v)
	}

	// explicit zones win over loc
	v, err = Parse("2023-07-04T10:15:30Z", 0, shanghai)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(time.Date(2023, 7, 4, 10, 15, 30, 0, time.UTC)) {
		t.Fatal(v)
	}
}
