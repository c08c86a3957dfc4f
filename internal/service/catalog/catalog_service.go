package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/pkg/logger"
)

const constantsPath = "constants"

type response struct {
	Atributs struct {
		Combustibles     []domain.EnergySystemOption `json:"combustibles"`
		RendimientoCalef []domain.EnergySystemOption `json:"rendimiento_calef"`
		DistribucionHVAC []domain.EnergySystemOption `json:"distribucion_hvac"`
		ControlHVAC      []domain.EnergySystemOption `json:"control_hvac"`
		RendimientoRef   []domain.EnergySystemOption `json:"rendimiento_ref"`
	} `json:"atributs"`
}

// Service fetches the energy-system catalogs from the configuration store and
// keeps the last successfully loaded set.
type Service struct {
	client     *http.Client
	baseURL    string
	maxRetries uint64
	backOff    func() backoff.BackOff

	current atomic.Pointer[domain.Catalogs]
}

func NewCatalogService(baseURL string, timeout time.Duration, maxRetries uint64) *Service {
	return &Service{
		client:     &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRetries: maxRetries,
		backOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
	}
}

// Current returns the loaded catalogs or nil if none were ever loaded.
func (s *Service) Current() *domain.Catalogs {
	return s.current.Load()
}

// Load fetches the catalogs, retrying transient failures. On failure the
// previously loaded catalogs stay in place.
func (s *Service) Load(ctx context.Context) (*domain.Catalogs, error) {
	endpoint, err := s.endpoint()
	if err != nil {
		return nil, fmt.Errorf("build catalog url: %w", err)
	}

	var body []byte
	err = backoff.Retry(
		func() error {
			var fetchErr error
			body, fetchErr = s.fetch(ctx, endpoint)
			if fetchErr != nil {
				logger.Warnf(ctx, "catalog fetch: %s", fetchErr.Error())
			}
			return fetchErr
		},
		backoff.WithContext(backoff.WithMaxRetries(s.backOff(), s.maxRetries), ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrCatalogUnavailable, err)
	}

	cat, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrCatalogUnavailable, err)
	}

	s.current.Store(cat)
	logger.Infof(ctx, "energy catalogs loaded: %d fuels, %d heating, %d distribution, %d control, %d cooling",
		len(cat.Fuel.Options), len(cat.HeatingPerformance.Options), len(cat.Distribution.Options),
		len(cat.Control.Options), len(cat.CoolingPerformance.Options))

	return cat, nil
}

func (s *Service) endpoint() (string, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", err
	}
	endpoint := base.JoinPath(constantsPath)

	query := endpoint.Query()
	query.Set("type", "energy_systems")
	query.Set("name", "general")
	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}

func (s *Service) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create catalog request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call catalog store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("catalog store status: %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(statusErr)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	return body, nil
}

// decode maps the configuration-store payload; absent lists become empty catalogs.
func decode(body []byte) (*domain.Catalogs, error) {
	var resp response
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	a := resp.Atributs
	return domain.NewCatalogs(a.Combustibles, a.RendimientoCalef, a.DistribucionHVAC, a.ControlHVAC, a.RendimientoRef), nil
}
