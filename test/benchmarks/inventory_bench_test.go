// test/benchmarks/inventory_bench_test.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/workers"
	"github.com/Sheimsito/picm-server/test/helpers"
)

func benchmarkMovements(n int) []*domain.Movement {
	rows := make([]*domain.Movement, n)
	for i := 0; i < n; i++ {
		idx := i
		rows[i] = helpers.CreateTestMovement(func(m *domain.Movement) {
			m.EntityName = fmt.Sprintf("Producto %04d", idx)
			m.ModifiedStock = idx % 500
			if idx%2 == 1 {
				m.MovementType = domain.ProductExit
			}
		})
	}
	return rows
}

func BenchmarkBuildMovementsWorkbook(b *testing.B) {
	sizes := []int{100, 1000, 5000}

	for _, size := range sizes {
		rows := benchmarkMovements(size)

		b.Run(fmt.Sprintf("rows_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				data, err := workers.BuildMovementsWorkbook(rows)
				if err != nil {
					b.Fatal(err)
				}
				if len(data) == 0 {
					b.Fatal("empty workbook")
				}
			}
		})
	}
}

func BenchmarkStatsKey(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = redis_a.StatsKey("top-products-sales", "7e7f9f6e-8f7f-4d2a-9a52-111111111111", "30d", "10")
	}
}

func BenchmarkCacheGetOrSet(b *testing.B) {
	mr, err := miniredis.Run()
	if err != nil {
		b.Fatal(err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := redis_a.NewCache(client, time.Hour, helpers.TestLogger())
	ctx := context.Background()

	payload := map[string]int64{"total_stock": 1234}
	fetch := func() (interface{}, error) { return payload, nil }

	b.Run("cold", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			mr.FlushAll()
			var dest map[string]int64
			if err := cache.GetOrSet(ctx, "bench:cold", &dest, fetch, time.Minute); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("warm", func(b *testing.B) {
		var dest map[string]int64
		if err := cache.GetOrSet(ctx, "bench:warm", &dest, fetch, time.Minute); err != nil {
			b.Fatal(err)
		}

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var hit map[string]int64
			if err := cache.GetOrSet(ctx, "bench:warm", &hit, fetch, time.Minute); err != nil {
				b.Fatal(err)
			}
		}
	})
}
