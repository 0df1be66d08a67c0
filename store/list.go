package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ListModules scans the migrated priority tree of a store and returns one
// record per module name, keeping the highest-priority instance when a
// name appears in several buckets. Results are sorted by name.
//
// Directories that do not look like priority buckets are ignored, as are
// records that fail Validate; a module directory missing its sidecars
// yields defaults rather than an error, since a partially migrated tree
// must still be inspectable.
func ListModules(l Layout, storeName string) ([]ModuleInfo, error) {
	modsDir := l.NewModules(storeName)
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}

	byName := make(map[string]ModuleInfo)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		priority, err := strconv.Atoi(e.Name())
		if err != nil || ValidatePriority(priority) != nil {
			continue
		}
		mods, err := os.ReadDir(filepath.Join(modsDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("list modules: %w", err)
		}
		for _, m := range mods {
			if !m.IsDir() {
				continue
			}
			name := m.Name()
			if prev, ok := byName[name]; ok && prev.Priority >= priority {
				continue
			}
			info := readModuleInfo(l, storeName, name, priority)
			if info.Validate() != nil {
				continue
			}
			byName[name] = info
		}
	}

	out := make([]ModuleInfo, 0, len(byName))
	for _, m := range byName {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func readModuleInfo(l Layout, storeName, name string, priority int) ModuleInfo {
	info := ModuleInfo{
		Name:     name,
		Priority: priority,
		Version:  "1.0.0",
		LangExt:  PackageLang,
		Enabled:  EnabledOn,
	}
	dir := filepath.Join(l.NewModules(storeName), strconv.Itoa(priority), name)
	if b, err := os.ReadFile(filepath.Join(dir, VersionFile)); err == nil {
		if v := strings.TrimSpace(string(b)); v != "" {
			info.Version = v
		}
	}
	if b, err := os.ReadFile(filepath.Join(dir, LangExtFile)); err == nil {
		if v := strings.TrimSpace(string(b)); v != "" {
			info.LangExt = v
		}
	}
	if marker, err := info.ModulePath(l, storeName, PathDisabled); err == nil {
		if _, err := os.Lstat(marker); err == nil {
			info.Enabled = EnabledOff
		}
	}
	return info
}
