// Package credentials supplies the username/password pair used to talk to
// Transifex, either from the environment or from a .transifexrc file.
package credentials

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/gruntjs-updater/transifex-keyvaluejson/config"
	"github.com/gruntjs-updater/transifex-keyvaluejson/transifex"
)

// RCFileName is the name of the Transifex client configuration file.
const RCFileName = ".transifexrc"

var ErrNotFound = errors.New("no Transifex credentials found")

// Resolve returns the credentials from the environment when both parts are
// set, and otherwise from the rc file entry matching env.BaseURL.
func Resolve(env config.Env) (transifex.Credentials, error) {
	if env.Username != "" && env.Password != "" {
		return transifex.Credentials{User: env.Username, Pass: env.Password}, nil
	}

	path := env.RCFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return transifex.Credentials{}, errors.Wrap(err, "failed to locate home directory")
		}
		path = filepath.Join(home, RCFileName)
	}

	return ReadRCFile(path, env.BaseURL)
}

// ReadRCFile reads the section of an rc file whose name or hostname key
// matches the origin of baseURL.
//
//	[https://www.transifex.com]
//	hostname = https://www.transifex.com
//	username = user
//	password = secret
func ReadRCFile(path, baseURL string) (transifex.Credentials, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return transifex.Credentials{}, errors.Wrapf(ErrNotFound, "%s does not exist", path)
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return transifex.Credentials{}, errors.Wrapf(err, "failed to read %s", path)
	}

	host := origin(baseURL)
	for _, section := range cfg.Sections() {
		if origin(section.Name()) != host && origin(section.Key("hostname").String()) != host {
			continue
		}

		creds := transifex.Credentials{
			User: section.Key("username").String(),
			Pass: section.Key("password").String(),
		}
		if creds.User == "" || creds.Pass == "" {
			return transifex.Credentials{}, errors.Wrapf(ErrNotFound, "incomplete entry for %s in %s", host, path)
		}
		return creds, nil
	}

	return transifex.Credentials{}, errors.Wrapf(ErrNotFound, "no entry for %s in %s", host, path)
}

// origin reduces a URL to scheme://host, lower-cased.
func origin(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
