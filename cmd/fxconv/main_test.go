package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amirasaad/fxconv/infra/initializer"
	"github.com/amirasaad/fxconv/internal/fixtures/currency"
	"github.com/amirasaad/fxconv/pkg/config"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
	"github.com/fatih/color"
	"github.com/stretchr/testify/suite"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	color.NoColor = true

	os.Exit(m.Run())
}

var pln = map[string]float64{"EUR": 0.2, "USD": 0.25, "JPY": 30.5, "GBP": 0.19}

// rateServer fakes the remote rate service and records the requests it sees.
type rateServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []*http.Request
}

func newRateServer() *rateServer {
	rs := &rateServer{}
	dir := currency.MustDirectory()
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, r.Clone(context.Background()))
		rs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/currencies":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": dir})
		case "/v1/latest":
			if r.URL.Query().Get("base_currency") != "PLN" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_ = json.NewEncoder(w).Encode(exchange.APIError{
					Message: "Validation error",
					Errors:  map[string][]string{"base_currency": {"not supported"}},
				})
				return
			}
			data := map[string]float64{}
			wanted := r.URL.Query().Get("currencies")
			for _, code := range strings.Split(wanted, ",") {
				if rate, ok := pln[code]; ok {
					data[code] = rate
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
		default:
			http.NotFound(w, r)
		}
	}))
	return rs
}

func (rs *rateServer) latestCalls() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	var out []string
	for _, r := range rs.requests {
		if r.URL.Path == "/v1/latest" {
			out = append(out, r.URL.Query().Get("currencies"))
		}
	}
	return out
}

func (rs *rateServer) count() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.requests)
}

type CLITestSuite struct {
	suite.Suite
	server *rateServer
	cfg    *config.App
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.server = newRateServer()
	s.T().Cleanup(s.server.Close)
	s.cfg = &config.App{
		Env:     "test",
		Log:     &config.Log{Level: "error", Format: "text"},
		API:     &config.FreeCurrencyAPI{ApiKey: "test-key", ApiUrl: s.server.URL + "/v1"},
		Cache:   &config.Cache{Driver: config.CacheDriverFile, Dir: s.T().TempDir()},
		Redis:   &config.Redis{},
		Metrics: &config.Metrics{},
	}
}

func (s *CLITestSuite) execute(args ...string) (string, error) {
	load := func() (*initializer.Deps, error) {
		return initializer.InitializeDependencies(s.cfg)
	}
	cmd := newRootCmd(load)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *CLITestSuite) TestConvert() {
	out, err := s.execute("-s", "pln", "-t", "EUR,JPY", "-a", "-12.5")
	s.Require().NoError(err)
	s.Contains(out, "12.50 PLN is equal to 2.50 EUR (rate: 0.2)")
	s.Contains(out, "12.50 PLN is equal to 381 JPY (rate: 30.5)")
	s.Equal([]string{"EUR,JPY"}, s.server.latestCalls())
}

func (s *CLITestSuite) TestSecondRunIsServedFromCache() {
	_, err := s.execute("-s", "PLN", "-t", "EUR,USD", "-a", "1")
	s.Require().NoError(err)
	requests := s.server.count()

	out, err := s.execute("-s", "PLN", "-t", "USD", "-a", "4")
	s.Require().NoError(err)
	s.Contains(out, "4.00 PLN is equal to 1.00 USD")
	s.Equal(requests, s.server.count(), "no remote call when everything is cached")
}

func (s *CLITestSuite) TestPartialHitFetchesOnlyMissingTargets() {
	_, err := s.execute("-s", "PLN", "-t", "EUR", "-a", "1")
	s.Require().NoError(err)
	_, err = s.execute("-s", "PLN", "-t", "EUR,GBP,USD", "-a", "1")
	s.Require().NoError(err)

	s.Equal([]string{"EUR", "GBP,USD"}, s.server.latestCalls())
}

func (s *CLITestSuite) TestUnresolvedTarget() {
	out, err := s.execute("-s", "PLN", "-t", "EUR,CHF", "-a", "1")
	s.Require().Error(err)
	s.ErrorIs(err, exchange.ErrUnresolvedTarget)
	s.Contains(err.Error(), "'PLN' - 'CHF'")
	s.Contains(out, "EUR", "resolved targets are still printed")
}

func (s *CLITestSuite) TestRemoteRejectionIsSurfaced() {
	_, err := s.execute("-s", "USD", "-t", "EUR", "-a", "1")
	s.Require().Error(err)
	s.ErrorIs(err, exchange.ErrRemoteRejected)
	s.Contains(err.Error(), "not supported")
}

func (s *CLITestSuite) TestInvalidCodes() {
	_, err := s.execute("-s", "AAA", "-t", "EUR", "-a", "1")
	s.Require().Error(err)
	s.Equal("'AAA' is not a valid currency code", err.Error())

	_, err = s.execute("-s", "PLN", "-t", "EUR,QQQ", "-a", "1")
	s.Require().Error(err)
	s.Contains(err.Error(), "'QQQ'")
	s.Empty(s.server.latestCalls())
}

func (s *CLITestSuite) TestMissingCredential() {
	s.cfg.API.ApiKey = ""

	_, err := s.execute("-s", "PLN", "-t", "EUR", "-a", "1")
	s.Require().ErrorIs(err, exchange.ErrInvalidCredential)
	s.Zero(s.server.count())
}

func (s *CLITestSuite) TestMissingFlags() {
	_, err := s.execute("-t", "EUR")
	s.Require().Error(err)
	s.Contains(err.Error(), "-s")

	_, err = s.execute("-s", "PLN")
	s.Require().Error(err)
	s.Contains(err.Error(), "-t")
	s.Zero(s.server.count())
}

func (s *CLITestSuite) TestList() {
	out, err := s.execute("-s", "PLN", "--list")
	s.Require().NoError(err)
	s.Contains(out, "Source currency: 'PLN'")
	s.Contains(out, "Euro")
	s.Contains(out, "No rate for:")
}

func (s *CLITestSuite) TestCorruptedCacheMustBeCleared() {
	_, err := s.execute("-s", "PLN", "-t", "EUR", "-a", "1")
	s.Require().NoError(err)

	files, err := filepath.Glob(filepath.Join(s.cfg.Cache.Dir, "rates", "PLN*.json"))
	s.Require().NoError(err)
	s.Require().Len(files, 1)
	s.Require().NoError(os.WriteFile(files[0], nil, 0o644))

	_, err = s.execute("-s", "PLN", "-t", "EUR", "-a", "1")
	s.Require().Error(err)
	s.Contains(err.Error(), "fxconv cache clear")

	out, err := s.execute("cache", "clear", "rates")
	s.Require().NoError(err)
	s.Contains(out, "Cleared rates cached records")
	s.NoFileExists(files[0])

	_, err = s.execute("-s", "PLN", "-t", "EUR", "-a", "1")
	s.Require().NoError(err)
}

func (s *CLITestSuite) TestCacheClearRejectsUnknownNamespace() {
	_, err := s.execute("cache", "clear", "everything")
	s.Require().Error(err)
}
