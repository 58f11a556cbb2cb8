// Package registrar fetches the academic calendar from a registrar HTTP
// endpoint, optionally authenticated with OAuth2 client credentials.
package registrar

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/kilianp07/sectionplanner/core/calendar"
	"github.com/kilianp07/sectionplanner/core/factory"
	"github.com/kilianp07/sectionplanner/core/model"
)

func init() {
	_ = calendar.RegisterSource("http", func(conf map[string]any) (calendar.Source, error) {
		var c Conf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSource(c)
	})
}

// Source implements calendar.Source over HTTP.
type Source struct {
	conf Conf
	base *http.Client
}

// NewSource validates conf and builds a Source.
func NewSource(conf Conf) (*Source, error) {
	conf.SetDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Source{conf: conf, base: &http.Client{Timeout: conf.timeout()}}, nil
}

func (s *Source) client(ctx context.Context) *http.Client {
	if s.conf.AuthURL == "" {
		return s.base
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.base)
	return s.conf.toOauth2Config().Client(ctx)
}

// Terms fetches and decodes the calendar document.
func (s *Source) Terms(ctx context.Context) ([]model.AcademicTerm, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.conf.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client(ctx).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch calendar: status %d: %s", resp.StatusCode, body)
	}
	return calendar.Decode(resp.Body, s.conf.Format)
}
