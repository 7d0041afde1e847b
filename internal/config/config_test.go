package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/hexgrid/pkg/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexgrid.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MapSettings() != models.DefaultSettings() {
		t.Fatalf("expected default map settings, got %+v", cfg.MapSettings())
	}
	if !cfg.Render.ScaleDown || cfg.Render.FontSize != 24 || cfg.Workspace.MaxRecent != 10 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
map:
  width: 8
  name: dungeon
render:
  scale_down: false
  line_color: "#333333"
workspace:
  max_recent: 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.MapSettings{Width: 8, Height: models.DefaultHeight, Radius: models.DefaultRadius, Name: "dungeon"}
	if cfg.MapSettings() != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.MapSettings())
	}
	if cfg.Render.ScaleDown {
		t.Fatalf("expected scale_down=false to be kept")
	}
	if cfg.Render.LineColor != "#333333" || cfg.Render.Background != "#FFFFFF" {
		t.Fatalf("unexpected render colors %+v", cfg.Render)
	}
	if cfg.Workspace.MaxRecent != 3 || cfg.Workspace.AppName != "hexgrid" {
		t.Fatalf("unexpected workspace %+v", cfg.Workspace)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"map: [not, a, mapping]",
		"render:\n  background: red\n",
		"render:\n  item_alpha: 300\n",
		"map:\n  radius: -4\n",
	} {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("expected error for config %q", body)
		}
	}
}

func TestLoadKeepsZeroAlpha(t *testing.T) {
	path := writeConfig(t, `
render:
  item_alpha: 0
  player_alpha: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Render.ItemAlpha != 0 || cfg.Render.PlayerAlpha != 0 {
		t.Fatalf("expected explicit zero alphas, got item=%d player=%d", cfg.Render.ItemAlpha, cfg.Render.PlayerAlpha)
	}

	cfg, err = Load(writeConfig(t, "render:\n  item_alpha: 40\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Render.ItemAlpha != 40 || cfg.Render.PlayerAlpha != 0xff {
		t.Fatalf("expected item=40 player=255, got item=%d player=%d", cfg.Render.ItemAlpha, cfg.Render.PlayerAlpha)
	}
}
