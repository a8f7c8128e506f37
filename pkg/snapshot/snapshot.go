// Package snapshot wraps a manifest in the envelope accepted by the GitHub
// dependency submission API.
//
// All CI metadata comes from a validated [config.Config]; the only other
// input is the scan time, passed explicitly so callers and tests control
// the clock.
package snapshot

import (
	"time"

	"github.com/matzehuels/condadeps/pkg/config"
	"github.com/matzehuels/condadeps/pkg/manifest"
)

// Version is the snapshot format version. The API currently accepts only 0.
const Version = 0

// scannedLayout renders the scan time in UTC. The literal zone suffix is
// appended by FormatScanned.
const scannedLayout = "2006-01-02T15:04:05"

// Job identifies the CI job that produced the snapshot.
type Job struct {
	Correlator string `json:"correlator"`
	ID         string `json:"id"`
}

// Detector describes the tool that produced the snapshot.
type Detector struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Snapshot is the dependency submission payload.
type Snapshot struct {
	Version   int                           `json:"version"`
	Sha       string                        `json:"sha"`
	Ref       string                        `json:"ref"`
	Job       Job                           `json:"job"`
	Detector  Detector                      `json:"detector"`
	Scanned   string                        `json:"scanned"`
	Manifests map[string]*manifest.Manifest `json:"manifests"`
}

// New builds a snapshot holding the single manifest m, keyed by its name.
func New(cfg config.Config, m *manifest.Manifest, now time.Time) *Snapshot {
	manifests := make(map[string]*manifest.Manifest, 1)
	if m != nil {
		manifests[m.Name] = m
	}
	return &Snapshot{
		Version: Version,
		Sha:     cfg.CommitSHA,
		Ref:     cfg.Ref,
		Job: Job{
			Correlator: Correlator(cfg.Workflow, cfg.Job),
			ID:         cfg.Job,
		},
		Detector: Detector{
			Name:    cfg.DetectorName,
			Version: cfg.DetectorVersion,
			URL:     cfg.ServerURL + "/" + cfg.Repository,
		},
		Scanned:   FormatScanned(now),
		Manifests: manifests,
	}
}

// Correlator joins workflow and job into the key GitHub uses to replace
// earlier snapshots from the same job.
func Correlator(workflow, job string) string {
	return workflow + "_" + job
}

// FormatScanned renders t in UTC as "2006-01-02T15:04:05z".
func FormatScanned(t time.Time) string {
	return t.UTC().Format(scannedLayout) + "z"
}

// EntryCount returns the number of resolved entries across all manifests.
func (s *Snapshot) EntryCount() int {
	n := 0
	for _, m := range s.Manifests {
		n += m.Len()
	}
	return n
}
