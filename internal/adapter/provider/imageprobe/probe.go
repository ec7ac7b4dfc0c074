// Package imageprobe checks whether a URL serves an image, for the preview
// in the project submission form.
package imageprobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"
)

const maxRedirects = 3

// errBlockedAddr is returned by the dialer for addresses the prober must not
// reach: loopback, private, link-local, CGNAT, multicast and unspecified.
var errBlockedAddr = errors.New("imageprobe: destination address not allowed")

var sharedAddrSpace = netip.MustParsePrefix("100.64.0.0/10")

// Prober fetches a URL and inspects status and content type.
type Prober struct {
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Prober whose requests give up after timeout. The prober only
// connects to public addresses; the check runs on the resolved IP of every
// connection, redirects included.
func New(timeout time.Duration, logger *slog.Logger) *Prober {
	return newProber(timeout, logger, publicOnly)
}

func newProber(timeout time.Duration, logger *slog.Logger, control func(network, address string, c syscall.RawConn) error) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	dialer := &net.Dialer{Timeout: timeout, Control: control}
	transport := &http.Transport{
		// No proxy: the dial guard must see the target address.
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}
	return &Prober{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("imageprobe: stopped after %d redirects", maxRedirects)
				}
				if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
					return fmt.Errorf("imageprobe: redirect to %q scheme", req.URL.Scheme)
				}
				return nil
			},
		},
		log: logger.With("adapter", "imageprobe"),
	}
}

// publicOnly is a net.Dialer Control hook. It sees the address after DNS
// resolution, so hostnames pointing at internal addresses are rejected too.
func publicOnly(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", errBlockedAddr, address)
	}
	if !isPublic(ap.Addr()) {
		return fmt.Errorf("%w: %s", errBlockedAddr, ap.Addr())
	}
	return nil
}

func isPublic(a netip.Addr) bool {
	a = a.Unmap()
	switch {
	case !a.IsValid(),
		a.IsUnspecified(),
		a.IsLoopback(),
		a.IsPrivate(),
		a.IsLinkLocalUnicast(),
		a.IsLinkLocalMulticast(),
		a.IsInterfaceLocalMulticast(),
		a.IsMulticast(),
		sharedAddrSpace.Contains(a):
		return false
	}
	return a.IsGlobalUnicast()
}

// Probe reports whether rawURL answers 2xx with an image/* content type.
// Any failure counts as not an image; errors are only returned for URLs that
// cannot be requested at all.
func (p *Prober) Probe(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false, fmt.Errorf("imageprobe: unsupported url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, fmt.Errorf("imageprobe: create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		lvl := slog.LevelDebug
		if errors.Is(err, errBlockedAddr) {
			lvl = slog.LevelWarn
		}
		p.log.Log(ctx, lvl, "image probe failed", slog.String("url", rawURL), slog.String("error", err.Error()))
		return false, nil
	}
	defer resp.Body.Close()
	_, _ = io.CopyN(io.Discard, resp.Body, 512)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 &&
		strings.HasPrefix(strings.ToLower(resp.Header.Get("Content-Type")), "image/")

	p.log.DebugContext(ctx, "image probe",
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		slog.Bool("image", ok),
	)
	return ok, nil
}
