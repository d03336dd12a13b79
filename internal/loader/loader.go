package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlayers/pkg/source"
)

// Loader implements source.Loader by delegating to file, fs.FS or HTTP
// strategies.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
	maxBody int64
	logger  *zap.Logger
}

var _ source.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options source.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	maxBody := options.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = source.DefaultMaxBodyBytes
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    client,
		timeout: timeout,
		maxBody: maxBody,
		logger:  logger.Named("loader"),
	}
}

// Load fetches the payload behind src.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case source.KindFile:
		data, err = loadFile(ctx, src.Location())
	case source.KindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case source.KindURL:
		if l.http == nil {
			return source.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxBody)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		l.logger.Debug("load failed",
			zap.String("kind", string(src.Kind())),
			zap.String("location", src.Location()),
			zap.Error(err))
		return source.Document{}, err
	}

	l.logger.Debug("loaded document",
		zap.String("kind", string(src.Kind())),
		zap.String("location", src.Location()),
		zap.Int("bytes", len(data)))
	return source.NewDocument(src, data)
}
