package json

import (
	"testing"
	"time"
)

func TestLowercaseNamingStrategy(t *testing.T) {
	for in, want := range map[string]string{"CreatedAt": "createdAt", "ID": "iD", "": "", "Ärger": "ärger"} {
		if got := LowercaseNamingStrategy(in); got != want {
			t.Fatalf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestNamingStrategyTags(t *testing.T) {
	type dummy struct {
		Name     string
		Nick     string `json:"alias"`
		Secret   string `json:"-"`
		Optional string `json:",omitempty"`
		internal string
	}
	api := newTestAPI(t)
	b, err := api.Marshal(dummy{Name: "aha", Nick: "a", Secret: "s", internal: "i"})
	if err != nil {
		t.Fatal(err)
	}
	t.Log(string(b))
	if string(b) != `{"name":"aha","alias":"a"}` {
		t.Fatal(string(b))
	}

	var d dummy
	if err := api.Unmarshal([]byte(`{"name":"yes","alias":"y","optional":"o"}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Name != "yes" || d.Nick != "y" || d.Optional != "o" {
		t.Fatalf("%#v", d)
	}
}

func TestSWriteIndent(t *testing.T) {
	type event struct {
		Name string
		At   time.Time
	}
	s, err := newTestAPI(t).SWriteIndent(event{Name: "shipped", At: time.Date(2023, 7, 4, 10, 15, 30, 0, time.UTC)})
	if err != nil {
		t.Fatal(err)
	}
	t.Log(s)
	want := "{\n  \"name\": \"shipped\",\n  \"at\": \"2023-07-04 10:15:30\"\n}"
	if s != want {
		t.Fatalf("got %q, want %q", s, want)
	}
}
