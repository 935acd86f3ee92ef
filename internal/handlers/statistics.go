// internal/handlers/statistics.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/handlers/middleware"
)

// StatisticsHandler handles the aggregation endpoints. Every response is
// memoized in Redis under a per-caller key; entries expire by TTL only.
type StatisticsHandler struct {
	service ports.StatisticsService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(service ports.StatisticsService, cache ports.CacheRepository, logger *slog.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "statistics")),
	}
}

// TopProductsSales handles GET /api/v1/statistics/top-products-sales
func (h *StatisticsHandler) TopProductsSales(w http.ResponseWriter, r *http.Request) {
	h.top(w, r, "top-products-sales", domain.KindProduct, domain.DirectionExit)
}

// TopProductsEntries handles GET /api/v1/statistics/top-products-entries
func (h *StatisticsHandler) TopProductsEntries(w http.ResponseWriter, r *http.Request) {
	h.top(w, r, "top-products-entries", domain.KindProduct, domain.DirectionEntry)
}

// TopSuppliesEntries handles GET /api/v1/statistics/top-supplies-entries
func (h *StatisticsHandler) TopSuppliesEntries(w http.ResponseWriter, r *http.Request) {
	h.top(w, r, "top-supplies-entries", domain.KindSupply, domain.DirectionEntry)
}

// TopSuppliesExits handles GET /api/v1/statistics/top-supplies-exits
func (h *StatisticsHandler) TopSuppliesExits(w http.ResponseWriter, r *http.Request) {
	h.top(w, r, "top-supplies-exits", domain.KindSupply, domain.DirectionExit)
}

func (h *StatisticsHandler) top(w http.ResponseWriter, r *http.Request, query string,
	kind domain.EntityKind, direction domain.MovementDirection) {

	ctx := r.Context()
	q := r.URL.Query()

	period := ports.Period(q.Get("period"))
	if period == "" {
		period = ports.DefaultPeriod
	}
	limit := ports.DefaultTopLimit
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	// Key on the resolved parameters so omitted and explicit defaults share
	// one cache entry.
	key := redis_a.StatsKey(query, middleware.UserID(ctx), string(period), strconv.Itoa(limit))

	var result ports.TopResult
	err := h.cache.GetOrSet(ctx, key, &result, func() (interface{}, error) {
		return h.service.TopByQuantity(ctx, kind, direction, period, limit)
	}, redis_a.StatsTTLShort)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// ProductsVolume handles GET /api/v1/statistics/products-volume
func (h *StatisticsHandler) ProductsVolume(w http.ResponseWriter, r *http.Request) {
	h.volume(w, r, "products-volume", domain.KindProduct)
}

// SuppliesVolume handles GET /api/v1/statistics/supplies-volume
func (h *StatisticsHandler) SuppliesVolume(w http.ResponseWriter, r *http.Request) {
	h.volume(w, r, "supplies-volume", domain.KindSupply)
}

func (h *StatisticsHandler) volume(w http.ResponseWriter, r *http.Request, query string, kind domain.EntityKind) {
	ctx := r.Context()
	period := ports.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = ports.DefaultPeriod
	}

	key := redis_a.StatsKey(query, middleware.UserID(ctx), string(period))

	var result ports.VolumeResult
	err := h.cache.GetOrSet(ctx, key, &result, func() (interface{}, error) {
		return h.service.Volume(ctx, kind, period)
	}, redis_a.StatsTTLShort)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// MonthlyMovements handles GET /api/v1/statistics/monthly-movements
func (h *StatisticsHandler) MonthlyMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	year := 0
	if raw := q.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "year must be an integer")
			return
		}
		year = parsed
	}
	kind := ports.SeriesKind(entityTypeParam(r))
	if kind == "" {
		kind = ports.DefaultSeries
	}

	key := redis_a.StatsKey("monthly-movements", middleware.UserID(ctx), strconv.Itoa(year), string(kind))

	var result ports.MonthlySeriesResult
	err := h.cache.GetOrSet(ctx, key, &result, func() (interface{}, error) {
		return h.service.MonthlySeries(ctx, year, kind)
	}, redis_a.StatsTTLLong)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// CategoryDistribution handles GET /api/v1/statistics/category-distribution
func (h *StatisticsHandler) CategoryDistribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	kind := domain.KindProduct
	if raw := entityTypeParam(r); raw != "" {
		parsed, err := domain.ParseEntityKind(raw)
		if err != nil {
			respondDomainError(w, r, h.logger, err)
			return
		}
		kind = parsed
	}
	metric := ports.DistributionMetric(q.Get("metric"))
	if metric == "" {
		metric = ports.DefaultMetric
	}

	key := redis_a.StatsKey("category-distribution", middleware.UserID(ctx), string(kind), string(metric))

	var result ports.CategoryDistributionResult
	err := h.cache.GetOrSet(ctx, key, &result, func() (interface{}, error) {
		return h.service.CategoryDistribution(ctx, kind, metric)
	}, redis_a.StatsTTLLong)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// entityTypeParam reads the entity selector. The public parameter is "type";
// "kind" is accepted as an alias to match the movements listing.
func entityTypeParam(r *http.Request) string {
	if raw := r.URL.Query().Get("type"); raw != "" {
		return raw
	}
	return r.URL.Query().Get("kind")
}

// TotalStock handles GET /api/v1/statistics/total-stock
func (h *StatisticsHandler) TotalStock(w http.ResponseWriter, r *http.Request) {
	h.totals(w, r, "total-stock")
}

// TotalValue handles GET /api/v1/statistics/total-value
func (h *StatisticsHandler) TotalValue(w http.ResponseWriter, r *http.Request) {
	h.totals(w, r, "total-value")
}

func (h *StatisticsHandler) totals(w http.ResponseWriter, r *http.Request, query string) {
	ctx := r.Context()

	kind := domain.KindProduct
	if raw := entityTypeParam(r); raw != "" {
		parsed, err := domain.ParseEntityKind(raw)
		if err != nil {
			respondDomainError(w, r, h.logger, err)
			return
		}
		kind = parsed
	}

	key := redis_a.StatsKey(query, middleware.UserID(ctx), string(kind))

	var result ports.TotalsResult
	err := h.cache.GetOrSet(ctx, key, &result, func() (interface{}, error) {
		return h.service.Totals(ctx, kind)
	}, redis_a.StatsTTLShort)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
