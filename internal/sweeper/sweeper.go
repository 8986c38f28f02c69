// Package sweeper removes stored files whose report rows are gone. Report
// deletion releases the file best-effort after the transaction commits, so
// a crash in between can leave orphaned bytes behind; the nightly sweep
// closes that gap.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// RefLister yields the storage references still referenced by report rows.
type RefLister interface {
	ListStorageRefs(ctx context.Context) (map[string]struct{}, error)
}

// FileLister walks the stored files and deletes by reference.
type FileLister interface {
	List(ctx context.Context, fn func(ref string) error) error
	Delete(ctx context.Context, ref string) error
}

type Sweeper struct {
	reports RefLister
	files   FileLister
}

func New(reports RefLister, files FileLister) *Sweeper {
	return &Sweeper{reports: reports, files: files}
}

// Start schedules the nightly sweep at 12:00 AM and returns the cron so the
// caller can stop it on shutdown.
func (s *Sweeper) Start() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		removed, err := s.Sweep(ctx)
		if err != nil {
			log.Printf("[error] op=sweep err=%v", err)
			return
		}
		log.Printf("[info] op=sweep removed=%d", removed)
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return c
	}

	log.Println("Sweeper started (running nightly at 12:00AM)")
	c.Start()
	return c
}

// Sweep deletes every stored file no report references and reports how many
// were removed. Individual delete failures are logged and skipped so one bad
// object does not stall the rest.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	live, err := s.reports.ListStorageRefs(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	err = s.files.List(ctx, func(ref string) error {
		if _, ok := live[ref]; ok {
			return nil
		}
		if err := s.files.Delete(ctx, ref); err != nil {
			log.Printf("[warn] op=sweep ref=%s err=%v", ref, err)
			return nil
		}
		removed++
		return nil
	})
	return removed, err
}
