package presets

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"TerrainVision/shared/noise"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "presets.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t)

	cfg := noise.Config{Kind: noise.KindRidged, Seed: 1234, Octaves: 5, Persistence: 0.45, Lacunarity: 2.1, Scale: 0.15, HeightScale: 3}
	if err := s.Save(Preset{Name: "montanhas", Noise: cfg, GridSize: 64}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("montanhas")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Noise != cfg || got.GridSize != 64 || got.Name != "montanhas" {
		t.Errorf("Load = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt não preenchido")
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTemp(t)

	cfg := noise.DefaultConfig()
	if err := s.Save(Preset{Name: "ultimo", Noise: cfg, GridSize: 25}); err != nil {
		t.Fatal(err)
	}
	cfg.Kind = noise.KindVoronoi
	cfg.Seed = 77
	if err := s.Save(Preset{Name: "ultimo", Noise: cfg, GridSize: 30}); err != nil {
		t.Fatal(err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("List() = %d presets, esperado 1", len(list))
	}
	if list[0].Noise != cfg || list[0].GridSize != 30 {
		t.Errorf("preset não atualizado: %+v", list[0])
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Load("nada"); !errors.Is(err, ErrNotFound) {
		t.Errorf("erro = %v, esperado ErrNotFound", err)
	}
	if err := s.Delete("nada"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: erro = %v, esperado ErrNotFound", err)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := openTemp(t)

	bad := noise.DefaultConfig()
	bad.Octaves = 0
	tests := []struct {
		name string
		p    Preset
	}{
		{"nome vazio", Preset{Name: "  ", Noise: noise.DefaultConfig(), GridSize: 25}},
		{"config inválida", Preset{Name: "x", Noise: bad, GridSize: 25}},
		{"grade negativa", Preset{Name: "y", Noise: noise.DefaultConfig(), GridSize: -1}},
	}
	for _, tt := range tests {
		if err := s.Save(tt.p); err == nil {
			t.Errorf("%s: Save aceitou preset inválido", tt.name)
		}
	}
	list, _ := s.List()
	if len(list) != 0 {
		t.Errorf("List() = %d presets após saves inválidos", len(list))
	}
}

func TestListSortedAndDelete(t *testing.T) {
	s := openTemp(t)
	for _, name := range []string{"vales", "dunas", "ilhas"} {
		if err := s.Save(Preset{Name: name, Noise: noise.DefaultConfig(), GridSize: 25}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"dunas", "ilhas", "vales"}
	for k, p := range list {
		if p.Name != want[k] {
			t.Errorf("List()[%d] = %q, esperado %q", k, p.Name, want[k])
		}
	}

	if err := s.Delete("ilhas"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("ilhas"); !errors.Is(err, ErrNotFound) {
		t.Errorf("preset removido ainda carregável: %v", err)
	}
}

func TestOpenWritesFormatVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.db")

	// Reabrir o mesmo banco regrava os metadados sem conflito
	for round := 1; round <= 2; round++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open (rodada %d): %v", round, err)
		}
		var meta Metadata
		if err := s.DB.First(&meta, "key = ?", "FormatVersion").Error; err != nil {
			t.Fatalf("metadados ausentes (rodada %d): %v", round, err)
		}
		if meta.Value != fmt.Sprint(CurrentFormatVersion) {
			t.Errorf("FormatVersion = %q, esperado %d", meta.Value, CurrentFormatVersion)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("Close (rodada %d): %v", round, err)
		}
	}
}

func TestOpenFailsOnDirectory(t *testing.T) {
	if s, err := Open(t.TempDir()); err == nil {
		s.Close()
		t.Fatal("Open de um diretório deveria falhar")
	}
}
