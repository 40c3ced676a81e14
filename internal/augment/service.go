package augment

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/riubs/rental-service/internal/model"
	"github.com/riubs/rental-service/pkg/circuit_breaker"
)

type Config struct {
	URL     string        `yaml:"url" envconfig:"OPEN_LIBRARY_URL" default:"https://openlibrary.org"`
	Query   string        `yaml:"query" envconfig:"OPEN_LIBRARY_QUERY" default:"classic literature"`
	Limit   int           `yaml:"limit" envconfig:"OPEN_LIBRARY_LIMIT" default:"24"`
	Timeout time.Duration `yaml:"timeout" envconfig:"OPEN_LIBRARY_TIMEOUT" default:"5s"`
}

const (
	priceMin = 120
	priceMax = 300
	stockMin = 1
	stockMax = 10
)

type doc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	Subject    []string `json:"subject"`
	ISBN       []string `json:"isbn"`
	CoverID    int      `json:"cover_i"`
}

type searchResponse struct {
	Docs []doc `json:"docs"`
}

// Service fetches book candidates from an Open Library-compatible search
// endpoint when the catalog runs short. Price and stock defaults are
// assigned here since the external source carries neither.
type Service struct {
	client *http.Client
	cfg    Config
	cb     circuit_breaker.CircuitBreaker
	log    *zap.Logger
}

func NewService(cfg Config, log *zap.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		cb:     circuit_breaker.New(100, time.Second, 0.2, 2),
		log:    log.Named("augment"),
	}
}

func (s *Service) Limit() int {
	return s.cfg.Limit
}

func (s *Service) Fetch(ctx context.Context) ([]model.NewBook, error) {
	var resp searchResponse
	if err := s.cb.Call(func() error {
		return s.search(ctx, &resp)
	}); err != nil {
		return nil, err
	}

	books := make([]model.NewBook, 0, len(resp.Docs))
	for _, d := range resp.Docs {
		nb := model.NewBook{
			Title:    "Untitled",
			Author:   "Unknown",
			Category: "General",
			Price:    float64(priceMin + rand.Intn(priceMax-priceMin)),
			Stock:    stockMin + rand.Intn(stockMax-stockMin+1),
			CoverURL: pickCover(d),
		}
		if d.Title != "" {
			nb.Title = d.Title
		}
		if len(d.AuthorName) > 0 {
			nb.Author = d.AuthorName[0]
		}
		if len(d.Subject) > 0 {
			nb.Category = d.Subject[0]
		}
		books = append(books, nb)
	}
	return books, nil
}

func (s *Service) search(ctx context.Context, out *searchResponse) error {
	u, err := url.Parse(s.cfg.URL + "/search.json")
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("q", s.cfg.Query)
	q.Set("limit", strconv.Itoa(s.cfg.Limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "open library search")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("open library search: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func pickCover(d doc) *string {
	if len(d.ISBN) > 0 {
		u := fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-M.jpg", d.ISBN[0])
		return &u
	}
	if d.CoverID != 0 {
		u := fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", d.CoverID)
		return &u
	}
	return nil
}
