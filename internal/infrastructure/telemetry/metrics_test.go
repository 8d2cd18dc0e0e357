package telemetry

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestStorefrontMetrics_CountsEventsByType(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zap.NewNop())
	defer mp.Shutdown(context.Background())

	m, err := NewStorefrontMetrics(mp.Meter("storefront-test"))
	require.NoError(t, err)

	ctx := context.Background()
	userID, productID := uuid.New(), uuid.New()
	require.NoError(t, m.Handle(ctx, shopping.NewCartItemRemovedEvent(userID, productID)))
	require.NoError(t, m.Handle(ctx, shopping.NewCartItemRemovedEvent(userID, productID)))
	require.NoError(t, m.Handle(ctx, shopping.NewProductLikeToggledEvent(userID, productID, shopping.LikeResult{Liked: true, LikesCount: 1})))
	m.RecordLogin(ctx, "mismatch")
	assert.Error(t, m.Handle(ctx, nil))

	metrics := collect(t, reader)

	events, ok := metrics["storefront.events"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byType := map[string]int64{}
	for _, dp := range events.DataPoints {
		v, _ := dp.Attributes.Value(AttrEventType)
		byType[v.AsString()] = dp.Value
	}
	assert.Equal(t, int64(2), byType[shopping.EventTypeCartItemRemoved])
	assert.Equal(t, int64(1), byType[shopping.EventTypeProductLiked])

	logins, ok := metrics["storefront.logins"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, logins.DataPoints, 1)
	assert.Equal(t, int64(1), logins.DataPoints[0].Value)
}

func TestRegisterDBPoolMetrics(t *testing.T) {
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(3)

	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zap.NewNop())
	defer mp.Shutdown(context.Background())

	reg, err := RegisterDBPoolMetrics(mp.Meter("storefront-test"), sqlDB)
	require.NoError(t, err)
	defer reg.Unregister()

	metrics := collect(t, reader)

	maxOpen, ok := metrics["db.pool.max_open"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, maxOpen.DataPoints, 1)
	assert.Equal(t, int64(3), maxOpen.DataPoints[0].Value)

	conns, ok := metrics["db.pool.connections"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, conns.DataPoints, 2)
}

func TestHistogram_RecordDuration(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zap.NewNop())
	defer mp.Shutdown(context.Background())

	h, err := NewHistogram(mp.Meter("storefront-test"), "http.server.duration", "Request latency", "s", HTTPDurationBuckets)
	require.NoError(t, err)
	h.RecordDuration(context.Background(), 30_000_000, AttrHTTPRoute.String("/home/"))

	hist, ok := collect(t, reader)["http.server.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.InDelta(t, 0.03, hist.DataPoints[0].Sum, 1e-9)
}
