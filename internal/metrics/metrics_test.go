// internal/metrics/metrics_test.go
package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("arinc")

	m.Received("bus-a", OutcomeOK, 3)
	m.Received("bus-a", OutcomeParity, 1)
	m.Received("bus-a", OutcomeInvalid, 0)
	m.Transmitted("bus-a", OutcomeSent, 2)
	m.DeliveryError("bus-a", "modbus")

	assert.Equal(t, 3.0, testutil.ToFloat64(m.WordsReceived.WithLabelValues("bus-a", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WordsReceived.WithLabelValues("bus-a", OutcomeParity)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.WordsTransmitted.WithLabelValues("bus-a", OutcomeSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveryErrors.WithLabelValues("bus-a", "modbus")))
}

func TestMetrics_SetBus(t *testing.T) {
	m := New("arinc")

	m.SetBus("bus-a", true, 31, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BusFailed.WithLabelValues("bus-a")))
	assert.Equal(t, 31.0, testutil.ToFloat64(m.FailureCount.WithLabelValues("bus-a")))

	m.SetBus("bus-a", false, 0, 4)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BusFailed.WithLabelValues("bus-a")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.LabelsValid.WithLabelValues("bus-a")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Received("bus", OutcomeOK, 1)
		m.Transmitted("bus", OutcomeSent, 1)
		m.DeliveryError("bus", "nats")
		m.SetBus("bus", true, 1, 1)
	})
}

func TestRegisterAndServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("arinc")
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg), "double registration")

	m.Received("bus-a", OutcomeOK, 1)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `arinc_rx_words_total{bus="bus-a",outcome="ok"} 1`)
}
