package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"estlint/internal/diagfmt"
)

// lintManifest привязывает разобранный estlint.toml к директории проекта.
// Все секции и поля необязательны: манифест задаёт умолчания, флаги
// командной строки всегда сильнее.
type lintManifest struct {
	Path   string
	Root   string
	Config lintConfig
}

type lintConfig struct {
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
	Lint   lintSection  `toml:"lint"`
}

type outputConfig struct {
	Format string `toml:"format"` // pretty|json|short
	Color  string `toml:"color"`  // auto|on|off
	Paths  string `toml:"paths"`  // auto|absolute|relative|basename
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type lintSection struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

// findEstlintToml ищет estlint.toml, поднимаясь от startDir к корню.
func findEstlintToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "estlint.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadLintManifest(startDir string) (*lintManifest, bool, error) {
	manifestPath, ok, err := findEstlintToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadLintConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &lintManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadLintConfig(path string) (lintConfig, error) {
	var cfg lintConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return lintConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if v := strings.TrimSpace(cfg.Output.Format); v != "" {
		switch v {
		case "pretty", "json", "short":
		default:
			return lintConfig{}, fmt.Errorf("%s: invalid [output].format %q (expected pretty|json|short)", path, v)
		}
	}
	if v := strings.TrimSpace(cfg.Output.Color); v != "" {
		switch v {
		case "auto", "on", "off":
		default:
			return lintConfig{}, fmt.Errorf("%s: invalid [output].color %q (expected auto|on|off)", path, v)
		}
	}
	if v := strings.TrimSpace(cfg.Output.Paths); v != "" {
		if _, ok := diagfmt.ParsePathMode(v); !ok {
			return lintConfig{}, fmt.Errorf("%s: invalid [output].paths %q (expected auto|absolute|relative|basename)", path, v)
		}
	}
	if cfg.Lint.MaxDiagnostics < 0 {
		return lintConfig{}, fmt.Errorf("%s: [lint].max_diagnostics must be non-negative", path)
	}
	if cfg.Lint.Jobs < 0 {
		return lintConfig{}, fmt.Errorf("%s: [lint].jobs must be non-negative", path)
	}
	return cfg, nil
}

// manifestPathMode переводит [output].paths в режим диагностического
// вывода. Пустая строка и мусор дают автоматический режим: значения
// валидируются раньше, при загрузке манифеста.
func manifestPathMode(value string) diagfmt.PathMode {
	mode, _ := diagfmt.ParsePathMode(strings.TrimSpace(value))
	return mode
}

// cacheDirFor возвращает директорию кэша из манифеста. Относительный путь
// считается от корня проекта, не от текущей директории.
func cacheDirFor(manifest *lintManifest) string {
	if manifest == nil {
		return ""
	}
	dir := strings.TrimSpace(manifest.Config.Cache.Dir)
	if dir == "" {
		return ""
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(manifest.Root, dir)
	}
	return dir
}
