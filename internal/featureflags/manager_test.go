package featureflags

import (
	"fmt"
	"testing"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", "x", false) || !m.Enabled("c", "x", false) || !m.Enabled("e", "x", false) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", "x", true) || m.Enabled("d", "x", true) || m.Enabled("f", "x", true) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
}

func TestEnabled_DefaultForUnknown(t *testing.T) {
	m := NewManager("")
	if !m.Enabled(BoardJitter, "", true) {
		t.Fatal("unknown flag should return the default")
	}
	var nilManager *Manager
	if nilManager.Enabled(FriendSearch, "", false) {
		t.Fatal("nil manager should return the default")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	if !m.Enabled("always", "10.0.0.1", false) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", "10.0.0.1", true) {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", "10.0.0.7", false)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", "10.0.0.7", false); got != first {
			t.Fatal("rollout evaluation must be deterministic per subject")
		}
	}
	if m.Enabled("canary", "", true) {
		t.Fatal("percentage rollout requires a subject")
	}

	on := 0
	for i := 0; i < 1000; i++ {
		if m.Enabled("canary", fmt.Sprintf("client-%d", i), false) {
			on++
		}
	}
	if on < 150 || on > 350 {
		t.Fatalf("25%% rollout enabled %d of 1000 subjects", on)
	}
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,X=on, y = 20% ,z=off,=on,w= ")

	names := m.Names()
	if len(names) != 3 || names[0] != "x" || names[1] != "y" || names[2] != "z" {
		t.Fatalf("unexpected names: %v", names)
	}

	snap := m.Snapshot("")
	if !snap["x"] || snap["y"] || snap["z"] {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
}
