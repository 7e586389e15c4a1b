package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	instancesCreated prometheus.Counter
	fieldsAdded      prometheus.Counter
	fieldsRemoved    prometheus.Counter
	submissions      *prometheus.CounterVec
}

const (
	outcomeValid        = "valid"
	outcomeInvalid      = "invalid"
	outcomeDisplayError = "display_error"
)

func NewMetrics(registerer prometheus.Registerer, active func() float64) *Metrics {
	factory := promauto.With(registerer)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "formbuilder",
		Name:      "instances_active",
		Help:      "Number of form instances currently held in memory.",
	}, active)

	return &Metrics{
		instancesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "formbuilder",
			Name:      "instances_created_total",
			Help:      "Total number of form instances created.",
		}),
		fieldsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "formbuilder",
			Name:      "fields_added_total",
			Help:      "Total number of fields added to forms.",
		}),
		fieldsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "formbuilder",
			Name:      "fields_removed_total",
			Help:      "Total number of fields removed from forms.",
		}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbuilder",
			Name:      "submissions_total",
			Help:      "Total number of submit attempts broken down by outcome.",
		}, []string{"outcome"}),
	}
}
