package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads translations from YAML files in an fs.FS.
// File convention: {lang}/{namespace}.yaml or {lang}/{namespace}.yml
//
// Example structure:
//
//	en/Navigation.yaml
//	de/Navigation.yaml
func WithYAMLDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		if fsys == nil {
			return nil
		}
		return loadDir(i, fsys)
	}
}

func loadDir(i *I18n, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(filePath))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		dir := path.Dir(filePath)
		if dir == "." || dir == "" {
			return fmt.Errorf("%w: file %q must be inside a language directory", ErrInvalidFile, filePath)
		}

		lang := path.Base(dir)
		namespace := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var translations map[string]any
		if err := yaml.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		i.add(lang, namespace, translations)
		return nil
	})
}
