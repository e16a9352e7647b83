package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if ReviewsUpsertedTotal == nil {
		t.Error("ReviewsUpsertedTotal未初始化")
	}
	if CatalogFetchesTotal == nil {
		t.Error("CatalogFetchesTotal未初始化")
	}
	if CircuitBreakerState == nil {
		t.Error("CircuitBreakerState未初始化")
	}

	// 重复调用不应panic（promauto重复注册会panic，靠initialized挡住）
	InitMetrics()
}

// TestHelpers_NilSafe 未初始化时辅助函数为空操作
func TestHelpers_NilSafe(t *testing.T) {
	IncCounter(nil)
	IncCounterVec(nil, map[string]string{"result": "success"})
	IncGauge(nil)
	DecGauge(nil)
	SetGaugeVec(nil, map[string]string{"name": "x"}, 1)
	ObserveHistogram(nil, 0.1)
	ObserveHistogramVec(nil, map[string]string{"method": "GET"}, 0.1)
}

// TestCounter 书评写入计数
func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, ReviewsUpsertedTotal)

	IncCounter(ReviewsUpsertedTotal)
	IncCounter(ReviewsUpsertedTotal)

	after := getCounterValue(t, ReviewsUpsertedTotal)
	if after-before != 2 {
		t.Errorf("Counter增量错误: expected=2, got=%f", after-before)
	}
}

// TestCounterVec 拉取结果分标签计数
func TestCounterVec(t *testing.T) {
	InitMetrics()

	successLabels := map[string]string{"result": "success"}
	before := getCounterVecValue(t, CatalogFetchesTotal, successLabels)

	IncCounterVec(CatalogFetchesTotal, successLabels)
	IncCounterVec(CatalogFetchesTotal, map[string]string{"result": "failure"})
	IncCounterVec(CatalogFetchesTotal, successLabels)

	after := getCounterVecValue(t, CatalogFetchesTotal, successLabels)
	if after-before != 2 {
		t.Errorf("CounterVec增量错误: expected=2, got=%f", after-before)
	}
}

// TestGaugeVec 熔断器状态
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "catalog-loopback"}, 1) // OPEN

	value := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "catalog-loopback"})
	if value != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", value)
	}
}

// TestHistogram 拉取耗时观测
func TestHistogram(t *testing.T) {
	InitMetrics()

	beforeCount := getHistogramCount(t, CatalogFetchDuration)

	ObserveHistogram(CatalogFetchDuration, 0.05)
	ObserveHistogram(CatalogFetchDuration, 0.2)

	afterCount := getHistogramCount(t, CatalogFetchDuration)
	if afterCount-beforeCount != 2 {
		t.Errorf("Histogram观测次数增量错误: expected=2, got=%d", afterCount-beforeCount)
	}
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := counterVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := gaugeVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
