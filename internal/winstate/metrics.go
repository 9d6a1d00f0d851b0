package winstate

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts Store activity. A nil *Metrics records nothing.
type Metrics struct {
	loads     *prometheus.CounterVec
	discarded prometheus.Counter
	clamps    *prometheus.CounterVec
	updates   *prometheus.CounterVec
	saves     *prometheus.CounterVec
}

// NewMetrics creates the Store counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "winstate_loads_total",
			Help: "Persisted state loads by result (ok, missing, malformed).",
		}, []string{"result"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "winstate_records_discarded_total",
			Help: "Loaded records dropped for lacking bounds and window flags.",
		}),
		clamps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "winstate_clamps_total",
			Help: "Geometry fields repaired against a smaller display.",
		}, []string{"field"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "winstate_updates_total",
			Help: "Record refreshes from the live window by result (applied, skipped).",
		}, []string{"result"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "winstate_saves_total",
			Help: "Record writes to storage by result (ok, error).",
		}, []string{"result"}),
	}
	reg.MustRegister(m.loads, m.discarded, m.clamps, m.updates, m.saves)
	return m
}

func (m *Metrics) load(result string) {
	if m != nil {
		m.loads.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) repaired(r Repair) {
	if m == nil {
		return
	}
	if r.Discarded {
		m.discarded.Inc()
	}
	for field, hit := range map[string]bool{
		"x":      r.ResetX,
		"width":  r.ClampWidth,
		"y":      r.ResetY,
		"height": r.ClampHeight,
	} {
		if hit {
			m.clamps.WithLabelValues(field).Inc()
		}
	}
}

func (m *Metrics) update(applied bool) {
	if m == nil {
		return
	}
	if applied {
		m.updates.WithLabelValues("applied").Inc()
	} else {
		m.updates.WithLabelValues("skipped").Inc()
	}
}

func (m *Metrics) save(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.saves.WithLabelValues("error").Inc()
	} else {
		m.saves.WithLabelValues("ok").Inc()
	}
}
