// pattern: Functional Core

package discovery

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTransformName(t *testing.T) {
	tests := []struct {
		path  string
		token string
		want  string
	}{
		{"/src/space_game", "_game", "space"},
		{"/src/game_game_lab", "_game", "game_lab"},
		{"/src/my_game_v2", "_game", "my_v2"},
		{"/src/MyGameDir", "_game", "MyGameDir"},
		{"/src/bar_GAME", "_game", "bar"},
		{"/src/Space_Game_game", "_game", "Space_game"},
		{"/src/_game", "_game", "_game"},
		{"/src/.._game", "_game", ".._game"},
		{"/src/._game", "_game", "._game"},
		{"/src/a/_game", "_game", "_game"},
		{"/src/space_game", "", "space_game"},
		{"relative/racer_game", "_game", "racer"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := TransformName(tt.path, tt.token); got != tt.want {
				t.Errorf("TransformName(%q, %q) = %q, want %q", tt.path, tt.token, got, tt.want)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	for name, want := range map[string]bool{
		"space":  true,
		"..x":    true,
		"":       false,
		".":      false,
		"..":     false,
		"a/b":    false,
		"/space": false,
	} {
		if got := ValidName(name); got != want {
			t.Errorf("ValidName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTransformNames_PreservesLengthAndOrder(t *testing.T) {
	paths := []string{"/s/zeta_game", "/s/alpha_game", "/s/GAME", "/s/mid_game_x"}
	got := TransformNames(paths, "_game")
	want := []string{"zeta", "alpha", "GAME", "mid_x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TransformNames() = %v, want %v", got, want)
	}

	if got := TransformNames(nil, "_game"); len(got) != 0 {
		t.Errorf("TransformNames(nil) = %v, want empty", got)
	}
}

func TestNames(t *testing.T) {
	dirs := []GameDir{{Path: "/s/a_game", Name: "a"}, {Path: "/s/b_game", Name: "b"}}
	if got := Names(dirs); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestResolveCollisions_NoDuplicates(t *testing.T) {
	dirs := []GameDir{{Path: "/s/a_game", Name: "a"}, {Path: "/s/b_game", Name: "b"}}
	got, err := ResolveCollisions(dirs, CollisionFail)
	if err != nil {
		t.Fatalf("ResolveCollisions() error = %v", err)
	}
	if !reflect.DeepEqual(got, dirs) {
		t.Errorf("got %v, want %v", got, dirs)
	}
}

func TestResolveCollisions_Fail(t *testing.T) {
	dirs := []GameDir{
		{Path: "/s/space_game", Name: "space"},
		{Path: "/s/space", Name: "space"},
	}
	_, err := ResolveCollisions(dirs, CollisionFail)
	if !errors.Is(err, ErrNameCollision) {
		t.Fatalf("expected ErrNameCollision, got %v", err)
	}
	if !strings.Contains(err.Error(), "/s/space_game") || !strings.Contains(err.Error(), "/s/space") {
		t.Errorf("error should name both sources: %v", err)
	}
}

func TestResolveCollisions_ReservedFail(t *testing.T) {
	dirs := []GameDir{
		{Path: "/s/a_game", Name: "a"},
		{Path: "/s/metadata.json_game", Name: "metadata.json"},
	}
	_, err := ResolveCollisions(dirs, CollisionFail, "metadata.json")
	if !errors.Is(err, ErrNameCollision) {
		t.Fatalf("expected ErrNameCollision, got %v", err)
	}
	if !strings.Contains(err.Error(), "/s/metadata.json_game") || !strings.Contains(err.Error(), "reserved") {
		t.Errorf("error should name the source and the reserved name: %v", err)
	}
}

func TestResolveCollisions_ReservedSuffix(t *testing.T) {
	dirs := []GameDir{{Path: "/s/metadata.json_game", Name: "metadata.json"}}
	got, err := ResolveCollisions(dirs, CollisionSuffix, "metadata.json")
	if err != nil {
		t.Fatalf("ResolveCollisions() error = %v", err)
	}
	if want := []string{"metadata.json-2"}; !reflect.DeepEqual(Names(got), want) {
		t.Errorf("names = %v, want %v", Names(got), want)
	}
}

func TestResolveCollisions_Suffix(t *testing.T) {
	dirs := []GameDir{
		{Path: "/s/x_game", Name: "x"},
		{Path: "/s/x_game_game", Name: "x"},
		{Path: "/s/x-2_game", Name: "x-2"},
		{Path: "/s/xgame", Name: "x"},
	}
	got, err := ResolveCollisions(dirs, CollisionSuffix)
	if err != nil {
		t.Fatalf("ResolveCollisions() error = %v", err)
	}

	want := []string{"x", "x-3", "x-2", "x-4"}
	if !reflect.DeepEqual(Names(got), want) {
		t.Errorf("names = %v, want %v", Names(got), want)
	}
	for i := range dirs {
		if got[i].Path != dirs[i].Path {
			t.Errorf("got[%d].Path = %q, want %q", i, got[i].Path, dirs[i].Path)
		}
	}
	if dirs[1].Name != "x" {
		t.Error("input slice must not be modified")
	}
}
