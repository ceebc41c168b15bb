package download

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	suffixOngoingDownload = ".download"
	suffixPreviousVersion = ".previous"
)

// validateOptions checks every required field and fills in defaults.
// It returns a copy so the caller's slice is never shared.
func validateOptions(opts Options) (Options, error) {
	if opts.Mode == "" {
		opts.Mode = ModeDefault
	}
	if !slices.Contains(Modes, opts.Mode) {
		return opts, &ConfigurationError{
			Field:  "mode",
			Reason: fmt.Sprintf("%s is not a valid setting, available modes are %s", opts.Mode, joinModes()),
		}
	}

	if strings.TrimSpace(opts.Project) == "" {
		return opts, &ConfigurationError{Field: "project", Reason: "you must specify a project"}
	}
	if strings.TrimSpace(opts.Resource) == "" {
		return opts, &ConfigurationError{Field: "resource", Reason: "you must specify a resource"}
	}
	if strings.TrimSpace(opts.Dest) == "" {
		return opts, &ConfigurationError{Field: "dest", Reason: "you must specify a destination directory"}
	}
	if opts.Credentials.User == "" || opts.Credentials.Pass == "" {
		return opts, &ConfigurationError{Field: "credentials", Reason: "both user and pass are required"}
	}

	opts.Locales = slices.Clone(opts.Locales)
	if isWildcard(opts.Locales) {
		return opts, nil
	}
	for _, locale := range opts.Locales {
		if err := checkLocaleCode(locale); err != nil {
			return opts, &ConfigurationError{Field: "locales", Reason: err.Error()}
		}
	}

	return opts, nil
}

func joinModes() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// isWildcard reports whether the selector means every available locale.
func isWildcard(locales []string) bool {
	return len(locales) == 0 || (len(locales) == 1 && locales[0] == AllLocales)
}

// checkLocaleCode rejects codes that cannot be used as a file name.
func checkLocaleCode(locale string) error {
	if locale == "" || locale == AllLocales {
		return errors.Errorf("invalid locale code %q", locale)
	}
	if locale == "." || locale == ".." || strings.ContainsAny(locale, `/\`) {
		return errors.Errorf("locale code %q cannot be used as a file name", locale)
	}
	return nil
}

func resourcePath(project, resource string) string {
	return "/project/" + url.PathEscape(project) + "/resource/" + url.PathEscape(resource)
}

// writeLocaleFiles writes every locale to a temporary file next to its
// destination and renames them into place only once all writes succeeded.
// Files replaced by the batch are kept aside until every rename went through
// and are put back if one fails, so a batch is either fully visible or not at all.
func writeLocaleFiles(dest string, contents []localeContent, logger *zap.SugaredLogger) ([]string, error) {
	tmpPaths := make([]string, 0, len(contents))
	cleanup := func() {
		for _, p := range tmpPaths {
			os.Remove(p)
		}
	}

	filePaths := make([]string, len(contents))
	for i, lc := range contents {
		filePaths[i] = filepath.Join(dest, lc.locale+".json")

		tmpPath := filePaths[i] + suffixOngoingDownload
		if err := os.WriteFile(tmpPath, []byte(lc.content), 0o644); err != nil {
			cleanup()
			return nil, &FilesystemError{Op: "write", Path: tmpPath, Err: err}
		}
		tmpPaths = append(tmpPaths, tmpPath)
	}

	for _, path := range filePaths {
		info, err := os.Lstat(path)
		if err == nil && !info.Mode().IsRegular() {
			cleanup()
			return nil, &FilesystemError{Op: "replace", Path: path, Err: errors.New("not a regular file")}
		}
	}

	backups, err := backupExisting(filePaths)
	if err != nil {
		cleanup()
		return nil, err
	}

	for i, tmpPath := range tmpPaths {
		if err := os.Rename(tmpPath, filePaths[i]); err != nil {
			for _, placed := range filePaths[:i] {
				os.Remove(placed)
			}
			restoreBackups(backups)
			cleanup()
			return nil, &FilesystemError{Op: "rename", Path: filePaths[i], Err: err}
		}
	}

	for _, backup := range backups {
		os.Remove(backup)
	}
	for i, path := range filePaths {
		logger.Infof("Created file: %s (%d bytes)", path, len(contents[i].content))
	}

	return filePaths, nil
}

// backupExisting moves every existing file aside and returns the backup
// path of each, keyed by the original path.
func backupExisting(paths []string) (map[string]string, error) {
	backups := make(map[string]string)
	for _, path := range paths {
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			continue
		}

		backup := path + suffixPreviousVersion
		if err := os.Rename(path, backup); err != nil {
			restoreBackups(backups)
			return nil, &FilesystemError{Op: "backup", Path: path, Err: err}
		}
		backups[path] = backup
	}
	return backups, nil
}

func restoreBackups(backups map[string]string) {
	for path, backup := range backups {
		os.Rename(backup, path)
	}
}

// uniqueLocales drops repeated codes while keeping first-seen order.
func uniqueLocales(locales []string) []string {
	seen := make(map[string]struct{}, len(locales))
	unique := make([]string, 0, len(locales))
	for _, locale := range locales {
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}
		unique = append(unique, locale)
	}
	return unique
}

// ParseLocales splits a comma-separated selector such as "en,es" into codes.
// A bare code becomes a one-element list and "*" stays the wildcard.
func ParseLocales(selector string) []string {
	var locales []string
	for _, locale := range strings.Split(selector, ",") {
		if locale = strings.TrimSpace(locale); locale != "" {
			locales = append(locales, locale)
		}
	}
	return locales
}
