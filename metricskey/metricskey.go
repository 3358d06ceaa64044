package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfCryptoOperation is perf metric
	PerfCryptoOperation = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_crypto",
		Help:         "perf_crypto provides the sample metrics of crypto operations",
		RequiredTags: []string{"algorithm", "action"},
	}
)

// Stats
var (
	// StatsContainerCreated counts secure container allocations
	StatsContainerCreated = metrics.Describe{
		Type: metrics.TypeCounter,
		Name: "stats_secmem_created",
		Help: "stats_secmem_created provides the count of allocated secure containers",
	}

	// StatsContainerClosed counts secure container close operations
	StatsContainerClosed = metrics.Describe{
		Type: metrics.TypeCounter,
		Name: "stats_secmem_closed",
		Help: "stats_secmem_closed provides the count of closed secure containers",
	}

	// StatsWipeFallback counts software zeroing fallbacks
	StatsWipeFallback = metrics.Describe{
		Type: metrics.TypeCounter,
		Name: "stats_secmem_wipe_fallback",
		Help: "stats_secmem_wipe_fallback provides the count of wipes that used the software fallback",
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfCryptoOperation,
	&StatsContainerCreated,
	&StatsContainerClosed,
	&StatsWipeFallback,
}
