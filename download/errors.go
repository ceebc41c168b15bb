package download

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrFilesystem           = errors.New("filesystem failure")
)

// ConfigurationError reports the option that made NewService fail.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid option `%s`: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// FilesystemError reports a failed directory creation or file write.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}
