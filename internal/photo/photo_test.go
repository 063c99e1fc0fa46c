package photo

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalize_Fallbacks(t *testing.T) {
	got := Normalize(Photo{ID: "a"})
	if got.Title != "Untitled" {
		t.Fatalf("Title = %q, want Untitled", got.Title)
	}
	if got.Author != "Unknown" {
		t.Fatalf("Author = %q, want Unknown", got.Author)
	}
	if !reflect.DeepEqual(got.Palette, []string{DefaultColor}) {
		t.Fatalf("Palette = %#v, want default", got.Palette)
	}

	got = Normalize(Photo{ID: "b", Author: "Ada"})
	if got.Title != "Ada" {
		t.Fatalf("Title = %q, want author fallback Ada", got.Title)
	}
}

func TestColor(t *testing.T) {
	if got := (Photo{}).Color(); got != DefaultColor {
		t.Fatalf("Color empty = %q, want %q", got, DefaultColor)
	}
	if got := (Photo{Palette: []string{" ", "#112233"}}).Color(); got != "#112233" {
		t.Fatalf("Color = %q, want #112233", got)
	}
}

func TestValid(t *testing.T) {
	if (Photo{ID: "  "}).Valid() {
		t.Fatalf("blank id should be invalid")
	}
	if !(Photo{ID: "img-1"}).Valid() {
		t.Fatalf("img-1 should be valid")
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Photo{ID: "img-1", Title: "t", Src: "s", Author: "a", Palette: []string{"red"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":"img-1","title":"t","src":"s","author":"a","palette":["red"]}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}
