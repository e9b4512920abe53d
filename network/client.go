// Package network builds the HTTP clients used by every site adapter.
package network

import (
	"crypto/tls"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/anisan-cli/mirai/constant"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/log"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"
)

const defaultRetryWait = 100 * time.Millisecond

// Options tune a client. The zero value is usable but has no timeout.
type Options struct {
	Timeout     time.Duration
	Retries     int
	RetryWait   time.Duration
	UserAgent   string
	Fingerprint bool
	Cloudflare  bool
	// InsecureTLS skips certificate verification, needed for sites served from a bare IP.
	InsecureTLS bool
	// NoCookieJar disables the automatic jar so callers can manage cookies explicitly.
	NoCookieJar bool
}

// DefaultOptions reads the network section of the config.
func DefaultOptions() Options {
	return Options{
		Timeout:     time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second,
		Retries:     viper.GetInt(key.NetworkRetries),
		RetryWait:   time.Duration(viper.GetInt(key.NetworkRetryWait)) * time.Millisecond,
		UserAgent:   viper.GetString(key.NetworkUserAgent),
		Fingerprint: viper.GetBool(key.NetworkFingerprint),
		Cloudflare:  viper.GetBool(key.NetworkCloudflare),
	}
}

// New returns a resty client configured from opts.
//
// Non-2xx responses are not errors at this level; use Check or the Document helpers.
func New(opts Options) *resty.Client {
	client := resty.New()

	if opts.Fingerprint {
		client.SetTransport(newFingerprintTransport(opts.InsecureTLS))
	}

	// nil for the fingerprint transport, which handles InsecureTLS itself
	plain, _ := client.Transport()

	if opts.Cloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	// after the bypass, which installs its own TLS config on a plain transport
	if opts.InsecureTLS && plain != nil {
		skipVerify(plain)
	}

	if opts.NoCookieJar {
		client.SetCookieJar(nil)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = constant.UserAgent
	}
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", constant.AcceptHTML)

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.Retries > 0 {
		wait := opts.RetryWait
		if wait <= 0 {
			wait = defaultRetryWait
		}

		client.
			SetRetryCount(opts.Retries).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(wait).
			AddRetryCondition(func(res *resty.Response, err error) bool {
				return err != nil || res.StatusCode() >= 500
			})
	}

	client.SetLogger(restyLogger{})
	instrument(client)
	return client
}

// skipVerify disables certificate checks and keeps the rest of the TLS config.
func skipVerify(transport *http.Transport) {
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = true
}

// restyLogger sends resty's own retry and error lines to the log file.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { log.Errorf("resty: "+format, v...) }
func (restyLogger) Warnf(format string, v ...any)  { log.Warnf("resty: "+format, v...) }
func (restyLogger) Debugf(format string, v ...any) { log.Debugf("resty: "+format, v...) }

// instrument logs every exchange at debug level and transport failures as warnings.
func instrument(client *resty.Client) {
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		log.Debugf("http %s %s -> %d in %s", res.Request.Method, res.Request.URL, res.StatusCode(), res.Time())
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		log.Warnf("http %s %s failed: %v", req.Method, req.URL, err)
	})
}
