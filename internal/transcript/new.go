package transcript

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

const (
	KindYouTube = "youtube"
	KindYtDlp   = "ytdlp"

	defaultTimeout = 30 * time.Second
	defaultYtDlp   = "yt-dlp"
)

// Options configures a Source.
type Options struct {
	Kind      string
	Languages []string
	Timeout   time.Duration

	// youtube
	BaseURL    string
	HTTPClient *http.Client

	// ytdlp
	YtDlpPath string
	Executor  executor.Executor
}

// New creates the Source selected by opts.Kind.
func New(opts Options, log logger.Logger) (Source, error) {
	langs := opts.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}

	switch strings.ToLower(opts.Kind) {
	case KindYouTube, "":
		client := opts.HTTPClient
		if client == nil {
			timeout := opts.Timeout
			if timeout <= 0 {
				timeout = defaultTimeout
			}
			client = &http.Client{Timeout: timeout}
		}
		baseURL := strings.TrimRight(opts.BaseURL, "/")
		if baseURL == "" {
			baseURL = defaultBaseURL
		}
		return &youtubeSource{
			baseURL:      baseURL,
			client:       client,
			languages:    langs,
			captionLimit: maxCaptionBytes,
			logger:       log,
		}, nil

	case KindYtDlp:
		ex := opts.Executor
		if ex == nil {
			ex = executor.New()
		}
		binary := opts.YtDlpPath
		if binary == "" {
			binary = defaultYtDlp
		}
		return &ytdlpSource{
			binary:    binary,
			executor:  ex,
			languages: langs,
			logger:    log,
		}, nil

	default:
		return nil, fmt.Errorf("unknown transcript source %q", opts.Kind)
	}
}
