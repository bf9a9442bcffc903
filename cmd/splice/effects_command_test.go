package main

import (
	"encoding/json"
	"testing"
)

func TestEffectsListsCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"effects"}, env.configPath)
	if err != nil {
		t.Fatalf("effects: %v", err)
	}
	requireContains(t, out, "transform")
	requireContains(t, out, "scale=100 [1..1000]")
	requireContains(t, out, "Cross Dissolve")
}

func TestEffectsEmitsCatalogJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"effects", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("effects --json: %v", err)
	}
	var entries []effectCatalogEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected a non-empty catalog")
	}

	var scale *effectCatalogEntry
	for i := range entries {
		if entries[i].ID == "scale" {
			scale = &entries[i]
			break
		}
	}
	if scale == nil {
		t.Fatal("expected scale in the catalog")
	}
	if scale.Category != "transform" {
		t.Fatalf("scale category = %q, want transform", scale.Category)
	}
	if len(scale.Parameters) != 1 || scale.Parameters[0].Name != "scale" || !scale.Parameters[0].Clamped {
		t.Fatalf("unexpected scale parameters: %+v", scale.Parameters)
	}
}
