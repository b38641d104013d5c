// Package telemetry records what a DLA run did, one row per walk outcome of
// interest, and summarises the grown aggregate.
package telemetry

import (
	"fmt"
	"io"

	"dla/internal/sims/dla"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// Record is one attachment.
type Record struct {
	Iteration int     `csv:"iteration"`
	X         int     `csv:"x"`
	Y         int     `csv:"y"`
	Steps     int     `csv:"steps"`
	DistSq    int     `csv:"dist_sq"`
	Encircled bool    `csv:"encircled"`
	Drift     float64 `csv:"drift"`
}

// Collector accumulates attachment records and walk counters for one run.
type Collector struct {
	runID   uuid.UUID
	records []Record

	walks     int
	rejected  int
	encircled int
	steps     int
}

// NewCollector starts a collector with a fresh run identifier.
func NewCollector() *Collector {
	return &Collector{runID: uuid.New()}
}

// RunID identifies the run in logs and exported files.
func (c *Collector) RunID() uuid.UUID { return c.runID }

// Observe records one walk outcome. drift is the field's drift after the walk.
func (c *Collector) Observe(out dla.Outcome, drift float64) {
	c.walks++
	c.steps += out.Steps
	switch out.State {
	case dla.Rejected:
		c.rejected++
		return
	case dla.Encircled:
		c.encircled++
	}
	c.records = append(c.records, Record{
		Iteration: out.Iteration,
		X:         out.Point.X,
		Y:         out.Point.Y,
		Steps:     out.Steps,
		DistSq:    out.DistSq,
		Encircled: out.State == dla.Encircled,
		Drift:     drift,
	})
}

// Records returns the attachments observed so far.
func (c *Collector) Records() []Record { return c.records }

// Walks returns the number of walks observed, rejected ones included.
func (c *Collector) Walks() int { return c.walks }

// WriteCSV writes every attachment record with a header row.
func (c *Collector) WriteCSV(w io.Writer) error {
	if len(c.records) == 0 {
		// gocsv needs at least one row to derive the header.
		_, err := io.WriteString(w, "iteration,x,y,steps,dist_sq,encircled,drift\n")
		return err
	}
	if err := gocsv.Marshal(c.records, w); err != nil {
		return fmt.Errorf("writing attachment records: %w", err)
	}
	return nil
}

// Summary summarises the records observed so far.
func (c *Collector) Summary() Summary {
	s := Summarize(c.records)
	s.RunID = c.runID.String()
	s.Walks = c.walks
	s.Rejected = c.rejected
	s.Encircled = c.encircled
	s.TotalSteps = c.steps
	return s
}
