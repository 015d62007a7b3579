// Package headhunter fetches vacancies from the hh.ru API and turns them into
// job postings.
package headhunter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/job"
	"github.com/spigell/resume-lens/internal/logger"
)

const (
	apiURL           = "https://api.hh.ru"
	DefaultUserAgent = "spigell/resume-lens (spigelly@gmail.com)"

	contentType     = "application/json"
	contentEncoding = "gzip"
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a client. The token is optional: public vacancies can be read
// anonymously.
func New(log *zap.Logger, token string) *Client {
	return &Client{
		token:  strings.TrimSpace(token),
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger.WithFields(log),
		UserAgent: DefaultUserAgent,
	}
}

// GetVacancy loads a single vacancy and converts it into a posting.
func (c *Client) GetVacancy(ctx context.Context, id string) (*job.Posting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	var raw map[string]any
	if err := c.getJSON(ctx, c.APIURL+"/vacancies/"+url.PathEscape(id), &raw); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	var vacancy Vacancy
	cfg := &mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &vacancy,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode vacancy %s: %w", id, err)
	}

	c.logger.Debug("got vacancy from HH.ru",
		zap.String("vacancy_id", vacancy.ID),
		zap.String("name", vacancy.Name),
		zap.Int("key_skills", len(vacancy.KeySkills)),
	)

	posting := vacancy.ToPosting()
	return &posting, nil
}

func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	c.setHeaders(req)

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return json.Unmarshal(data, target)
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
}
