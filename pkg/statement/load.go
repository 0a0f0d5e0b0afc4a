package statement

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/focusim/statement-go/pkg/statement/parser"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// maxWorkbookSize is the default bound on a remote response.
const maxWorkbookSize = 32 << 20

// Loader acquires catalog workbooks from files or URLs and parses them.
type Loader struct {
	// Cache, when set, is consulted before parsing.
	Cache *Cache
	// Client fetches remote sources. If nil, NewHTTPClient is used.
	Client *retryablehttp.Client
	// Layout maps catalog columns. If nil, it is detected from the header row.
	Layout *parser.Layout
	// MaxSize bounds remote responses in bytes. Zero means 32 MiB.
	MaxSize int64
}

// Open loads a catalog without caching.
func Open(ctx context.Context, source string, layout *parser.Layout) (*models.Catalog, error) {
	l := &Loader{Layout: layout}
	return l.Load(ctx, source)
}

// IsRemote reports whether the source is fetched over HTTP.
func IsRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load returns the catalog for source, from the cache when its identity is known.
// Acquisition failures are returned as *SourceError.
func (l *Loader) Load(ctx context.Context, source string) (*models.Catalog, error) {
	logger := zerolog.Ctx(ctx)

	var (
		data []byte
		key  string
		err  error
	)
	if IsRemote(source) {
		key = URLKey(source)
		if catalog, ok := l.cached(key); ok {
			logger.Debug().Str("source", source).Msg("catalog cache hit")
			return catalog, nil
		}
		if data, err = l.fetch(ctx, source); err != nil {
			return nil, err
		}
	} else {
		if data, err = readFile(source); err != nil {
			return nil, err
		}
		key = ContentKey(data)
		if catalog, ok := l.cached(key); ok {
			logger.Debug().Str("source", source).Msg("catalog cache hit")
			return catalog, nil
		}
	}

	catalog, err := ParseWorkbook(ctx, bytes.NewReader(data), sourceName(source), l.Layout)
	if err != nil {
		return nil, err
	}
	if l.Cache != nil {
		l.Cache.Put(key, catalog)
	}
	return catalog, nil
}

func (l *Loader) cached(key string) (*models.Catalog, bool) {
	if l.Cache == nil {
		return nil, false
	}
	return l.Cache.Get(key)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = NewHTTPClient(*zerolog.Ctx(ctx))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewSourceError(url, "fetch", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, NewSourceError(url, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode == http.StatusNotFound {
			err = fmt.Errorf("%w: %s", ErrSourceNotFound, resp.Status)
		}
		return nil, NewSourceError(url, "fetch", err)
	}

	limit := l.MaxSize
	if limit <= 0 {
		limit = maxWorkbookSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, NewSourceError(url, "fetch", err)
	}
	if int64(len(data)) > limit {
		return nil, NewSourceError(url, "fetch", fmt.Errorf("%w: more than %d bytes", ErrSourceTooLarge, limit))
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, NewSourceError(path, "read", ErrSourceNotFound)
	}
	if err != nil {
		return nil, NewSourceError(path, "read", err)
	}
	return data, nil
}

func sourceName(source string) string {
	if IsRemote(source) {
		return source
	}
	return filepath.Base(source)
}

// ParseWorkbook reads a workbook and parses its catalog sheet.
// When layout is nil the header row decides the column mapping.
func ParseWorkbook(ctx context.Context, r io.Reader, source string, layout *parser.Layout) (*models.Catalog, error) {
	logger := zerolog.Ctx(ctx)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewSourceError(source, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	sheetName := ""
	if layout != nil {
		sheetName = layout.Sheet
	}
	sheet, err := parser.ResolveSheet(f, sheetName)
	if err != nil {
		return nil, NewSourceError(source, "open", err)
	}

	rows, err := parser.ExtractRows(f, sheet)
	if err != nil {
		return nil, NewSourceError(source, "read", err)
	}

	resolved := resolveLayout(ctx, rows, layout)
	if resolved.UsePrintArea {
		if area, ok := parser.PrintAreaFor(f, sheet); ok {
			rows = parser.ClipToArea(rows, area)
		}
	}

	records, err := parser.Parse(ctx, rows, resolved)
	if err != nil {
		return nil, NewSourceError(source, "parse", err)
	}

	catalog := &models.Catalog{Source: source, Sheet: sheet, Records: records}
	logger.Info().
		Str("source", source).
		Str("sheet", sheet).
		Int("rows", len(rows)).
		Int("instruments", len(catalog.Instruments())).
		Int("groups", len(catalog.Groups())).
		Msg("catalog loaded")
	return catalog, nil
}

// resolveLayout returns the configured layout, or detects one from the header row.
func resolveLayout(ctx context.Context, rows []models.RawRow, layout *parser.Layout) parser.Layout {
	if layout != nil {
		return *layout
	}
	detected, err := parser.DetectLayout(rows, parser.DefaultDetectionParams())
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("using default layout")
		return parser.DefaultLayout()
	}
	return detected
}

// NewHTTPClient returns a retrying HTTP client that logs through logger.
func NewHTTPClient(logger zerolog.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = retryLogger{logger: logger}
	return client
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger.
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, kv ...interface{}) { l.logger.Error().Fields(kv).Msg(msg) }
func (l retryLogger) Info(msg string, kv ...interface{})  { l.logger.Debug().Fields(kv).Msg(msg) }
func (l retryLogger) Debug(msg string, kv ...interface{}) { l.logger.Trace().Fields(kv).Msg(msg) }
func (l retryLogger) Warn(msg string, kv ...interface{})  { l.logger.Warn().Fields(kv).Msg(msg) }
