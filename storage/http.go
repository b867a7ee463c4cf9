package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"sync"

	"github.com/go-resty/resty/v2"
)

var (
	httpClient     *resty.Client
	httpClientOnce sync.Once
)

func getHttpClient() *resty.Client {
	httpClientOnce.Do(func() {
		httpClient = resty.New()
		httpClient.SetHeader("Accept", "application/octet-stream")

		if trace, _ := strconv.ParseBool(os.Getenv("API_TRACE")); trace {
			httpClient.SetDebug(true)
		}
	})

	return httpClient
}

// HTTPBackend loads images over HTTP(S),
// it can't store them.
type HTTPBackend struct{}

func (*HTTPBackend) Load(ctx context.Context, loc *url.URL) ([]byte, error) {
	req := getHttpClient().NewRequest()
	req.SetContext(ctx)

	resp, err := req.Get(loc.String())
	switch {
	case err == nil && resp.IsError():
		err = fmt.Errorf("http error %d", resp.StatusCode())
		fallthrough

	case err != nil:
		return nil, fmt.Errorf("download image: %w", err)

	default:
		return resp.Body(), nil
	}
}

func (*HTTPBackend) Store(context.Context, *url.URL, []byte) error {
	return ErrReadOnly
}
