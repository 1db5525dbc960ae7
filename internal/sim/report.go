package sim

import "github.com/sirupsen/logrus"

// LogReporter writes run progress through logrus.
type LogReporter struct {
	log logrus.FieldLogger
}

func NewLogReporter(log logrus.FieldLogger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) Start(initialPairEnergy float64) {
	r.log.WithField("pair_energy", initialPairEnergy).Info("total initial pair energy")
}

func (r *LogReporter) Progress(step int, totalEnergy float64) {
	r.log.WithFields(logrus.Fields{
		"step":   step,
		"energy": totalEnergy,
	}).Info("progress")
}
