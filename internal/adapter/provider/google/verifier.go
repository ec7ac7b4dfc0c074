// Package google signs users in with a Google OAuth authorization code.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/heartmarshall/makerlab-backend/internal/auth"
)

// Endpoints are the two OAuth URLs a sign-in touches.
type Endpoints struct {
	TokenURL    string
	UserinfoURL string
}

var DefaultEndpoints = Endpoints{
	TokenURL:    googleoauth.Endpoint.TokenURL,
	UserinfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
}

var (
	ErrInvalidCode      = errors.New("oauth: invalid or expired code")
	ErrEmailNotVerified = errors.New("oauth: email not verified")
	ErrUnavailable      = errors.New("oauth: google unavailable")
	errBadResponse      = errors.New("oauth: malformed response")
)

const (
	maxAttempts  = 2
	retryBackoff = 500 * time.Millisecond
)

// Verifier turns a one-time authorization code into the signed-in identity.
type Verifier struct {
	oauth       *oauth2.Config
	userinfoURL string
	httpClient  *http.Client
	log         *slog.Logger
}

func NewVerifier(clientID, clientSecret, redirectURI string, logger *slog.Logger) *Verifier {
	return NewVerifierWithEndpoints(clientID, clientSecret, redirectURI, DefaultEndpoints, logger)
}

// NewVerifierWithEndpoints is NewVerifier against arbitrary endpoints, used
// by tests and self-hosted proxies.
func NewVerifierWithEndpoints(clientID, clientSecret, redirectURI string, ep Endpoints, logger *slog.Logger) *Verifier {
	return &Verifier{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   googleoauth.Endpoint.AuthURL,
				TokenURL:  ep.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"openid", "email", "profile"},
		},
		userinfoURL: ep.UserinfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         logger.With("adapter", "google_oauth"),
	}
}

type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (u userinfoResponse) identity() *auth.OAuthIdentity {
	id := &auth.OAuthIdentity{Email: u.Email, ProviderID: u.ID}
	if u.Name != "" {
		id.Name = &u.Name
	}
	if u.Picture != "" {
		id.AvatarURL = &u.Picture
	}
	return id
}

// VerifyCode exchanges code for an access token and reads the account it
// belongs to. Only accounts with a verified email are accepted.
func (v *Verifier) VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error) {
	tok, err := v.exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	var user userinfoResponse
	client := v.oauth.Client(ctx, tok)
	client.Timeout = v.httpClient.Timeout
	err = v.retry(ctx, "userinfo", func() (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userinfoURL, nil)
		if err != nil {
			return false, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return true, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return true, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			v.log.ErrorContext(ctx, "google userinfo failed", slog.Int("status", resp.StatusCode))
			return false, fmt.Errorf("userinfo: status %d: %w", resp.StatusCode, errBadResponse)
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&user) != nil || user.ID == "" || user.Email == "" {
			return false, fmt.Errorf("userinfo: %w", errBadResponse)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if !user.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}

	v.log.DebugContext(ctx, "google sign-in verified", slog.String("subject", user.ID))
	return user.identity(), nil
}

// exchange trades the code for a token. Google answers 400 or 401 for a code
// that is unknown, used or expired.
func (v *Verifier) exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	var tok *oauth2.Token
	err := v.retry(ctx, "token exchange", func() (bool, error) {
		var err error
		tok, err = v.oauth.Exchange(context.WithValue(ctx, oauth2.HTTPClient, v.httpClient), code)
		var rerr *oauth2.RetrieveError
		switch {
		case err == nil:
			return false, nil
		case errors.As(err, &rerr) && rerr.Response != nil:
			status := rerr.Response.StatusCode
			if status == http.StatusBadRequest || status == http.StatusUnauthorized {
				v.log.WarnContext(ctx, "google rejected authorization code",
					slog.Int("status", status), slog.String("error", rerr.ErrorCode))
				return false, ErrInvalidCode
			}
			return status >= 500, err
		default:
			return true, err
		}
	})
	return tok, err
}

// retry runs attempt up to maxAttempts times while it reports a retryable
// failure. Exhausted retries surface as ErrUnavailable; a cancelled ctx is
// returned as is.
func (v *Verifier) retry(ctx context.Context, op string, attempt func() (retryable bool, err error)) error {
	var lastErr error
	for i := 1; i <= maxAttempts; i++ {
		if i > 1 {
			v.log.WarnContext(ctx, "retrying google request", slog.String("op", op), slog.Any("cause", lastErr))
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		retryable, err := attempt()
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	v.log.ErrorContext(ctx, "google request failed", slog.String("op", op), slog.Any("error", lastErr))
	return ErrUnavailable
}
