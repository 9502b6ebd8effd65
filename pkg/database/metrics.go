package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPoolMetrics exports connection pool gauges for pool on reg.
func RegisterPoolMetrics(reg prometheus.Registerer, pool *pgxpool.Pool) error {
	gauges := []struct {
		name, help string
		value      func(*pgxpool.Stat) float64
	}{
		{"db_pool_acquired_connections", "Connections currently in use", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }},
		{"db_pool_idle_connections", "Connections currently idle", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }},
		{"db_pool_total_connections", "Connections currently open", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }},
		{"db_pool_max_connections", "Configured connection limit", func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }},
	}

	for _, g := range gauges {
		value := g.value
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: g.name,
			Help: g.help,
		}, func() float64 { return value(pool.Stat()) })
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
