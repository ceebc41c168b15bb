package download

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gruntjs-updater/transifex-keyvaluejson/transifex"
)

// Transport performs a single GET against the translation API.
type Transport interface {
	Get(ctx context.Context, relPath string) (map[string]any, error)
	GetList(ctx context.Context, relPath string) ([]map[string]any, error)
}

// Service is the service layer that turns a locale selector into files on disk.
type Service struct {
	opts      Options
	transport Transport
	logger    *zap.SugaredLogger
}

// NewService validates opts and returns a ready service. It neither touches
// the network nor the filesystem. A nil logger discards all output.
func NewService(opts Options, logger *zap.SugaredLogger) (*Service, error) {
	opts, err := validateOptions(opts)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	httpClient := &http.Client{
		Timeout: time.Second * time.Duration(opts.Timeout),
	}

	return &Service{
		opts:      opts,
		transport: transifex.NewClient(opts.BaseURL, opts.Credentials, httpClient),
		logger:    logger.With("project", opts.Project, "resource", opts.Resource),
	}, nil
}

// Options returns a copy of the configuration the service was built with.
func (s *Service) Options() Options {
	opts := s.opts
	opts.Locales = slices.Clone(s.opts.Locales)
	return opts
}

// ListLocales returns the codes of every language available on the
// resource, in the order the service reports them.
func (s *Service) ListLocales(ctx context.Context) ([]string, error) {
	path := resourcePath(s.opts.Project, s.opts.Resource) + "?details"

	details, err := s.transport.Get(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available locales")
	}

	languages, ok := details["available_languages"].([]any)
	if !ok {
		return nil, &transifex.TransportError{
			Kind: transifex.KindMalformedResponse,
			Path: path,
			Err:  errors.New("missing available_languages"),
		}
	}

	locales := make([]string, 0, len(languages))
	for _, lang := range languages {
		entry, _ := lang.(map[string]any)
		code, _ := entry["code"].(string)
		if err := checkLocaleCode(code); err != nil {
			return nil, &transifex.TransportError{Kind: transifex.KindMalformedResponse, Path: path, Err: err}
		}
		locales = append(locales, code)
	}

	return locales, nil
}

// ListResources returns the slugs of every resource in the configured project.
func (s *Service) ListResources(ctx context.Context) ([]string, error) {
	return ListResources(ctx, s.transport, s.opts.Project)
}

// ListResources returns the slugs of every resource in project. It needs no
// resource or destination, so it takes a bare transport.
func ListResources(ctx context.Context, transport Transport, project string) ([]string, error) {
	path := "/project/" + url.PathEscape(project) + "/resources/"

	resources, err := transport.GetList(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list resources")
	}

	slugs := make([]string, 0, len(resources))
	for _, resource := range resources {
		slug, ok := resource["slug"].(string)
		if !ok {
			return nil, &transifex.TransportError{
				Kind: transifex.KindMalformedResponse,
				Path: path,
				Err:  errors.New("resource without slug"),
			}
		}
		slugs = append(slugs, slug)
	}

	return slugs, nil
}

// FetchLocale returns the serialized translation payload of one locale as
// the service sent it.
func (s *Service) FetchLocale(ctx context.Context, locale string) (string, error) {
	path := resourcePath(s.opts.Project, s.opts.Resource) +
		"/translation/" + url.PathEscape(locale) +
		"?" + url.Values{"mode": {string(s.opts.Mode)}}.Encode()

	translation, err := s.transport.Get(ctx, path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch locale %s", locale)
	}

	content, ok := translation["content"].(string)
	if !ok {
		return "", &transifex.TransportError{
			Kind: transifex.KindMalformedResponse,
			Path: path,
			Err:  errors.New("missing content"),
		}
	}

	return content, nil
}

// Download fetches every selected locale concurrently and, only once all of
// them arrived, writes each to <dest>/<locale>.json. Nothing is written when
// any fetch fails.
func (s *Service) Download(ctx context.Context) (*Result, error) {
	locales := s.opts.Locales
	if isWildcard(locales) {
		var err error
		if locales, err = s.ListLocales(ctx); err != nil {
			return nil, err
		}
		s.logger.Debugw("resolved available locales", "locales", locales)
	}
	locales = uniqueLocales(locales)

	dest, err := filepath.Abs(s.opts.Dest)
	if err != nil {
		return nil, &FilesystemError{Op: "resolve", Path: s.opts.Dest, Err: err}
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, &FilesystemError{Op: "mkdir", Path: dest, Err: err}
	}

	contents, err := s.fetchLocales(ctx, locales)
	if err != nil {
		return nil, err
	}

	files, err := writeLocaleFiles(dest, contents, s.logger)
	if err != nil {
		return nil, err
	}

	return &Result{Locales: locales, Files: files}, nil
}

// fetchLocales issues one request per locale without waiting on the others
// and returns once all completed, or with the first error encountered.
func (s *Service) fetchLocales(ctx context.Context, locales []string) ([]localeContent, error) {
	contents := make([]localeContent, len(locales))

	eg, ctx := errgroup.WithContext(ctx)

	for i, locale := range locales {
		eg.Go(func() error {
			content, err := s.FetchLocale(ctx, locale)
			if err != nil {
				return err
			}

			s.logger.Debugw("locale downloaded", "locale", locale, "bytes", len(content))
			contents[i] = localeContent{locale: locale, content: content}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return contents, nil
}
