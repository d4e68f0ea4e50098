package sweep

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cave-ca/internal/core"
)

func TestJobsOrder(t *testing.T) {
	jobs := Jobs([]int{4, 5}, []int64{1, 2, 3})
	if len(jobs) != 6 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	if jobs[0] != (Job{Thresh: 4, Seed: 1}) || jobs[5] != (Job{Thresh: 5, Seed: 3}) {
		t.Fatalf("unexpected order: %+v", jobs)
	}
}

func TestRunKeepsJobOrder(t *testing.T) {
	jobs := Jobs([]int{4, 5}, []int64{1, 2})
	outcomes, err := Run(context.Background(), Options{Width: 32, Height: 24, Workers: 3}, jobs)
	if err != nil {
		t.Fatal(err)
	}
	for i, o := range outcomes {
		if o.Job != jobs[i] {
			t.Fatalf("outcome %d is for %+v, want %+v", i, o.Job, jobs[i])
		}
		if !o.Converged() {
			t.Fatalf("job %+v: %v", o.Job, o.Err)
		}
		if o.Report.Seed != o.Seed || o.Report.StepThresh != o.Thresh {
			t.Fatalf("report %+v does not match job %+v", o.Report, o.Job)
		}
		if o.RockShare <= 0 || o.RockShare >= 1 {
			t.Fatalf("rock share %.2f", o.RockShare)
		}
	}

	again, _ := Run(context.Background(), Options{Width: 32, Height: 24, Workers: 1}, jobs)
	for i := range outcomes {
		if again[i].Report.Filename() != outcomes[i].Report.Filename() || again[i].Trees != outcomes[i].Trees {
			t.Fatalf("job %+v is not reproducible across worker counts", jobs[i])
		}
	}
}

func TestRunRecordsBudgetFailures(t *testing.T) {
	outcomes, err := Run(context.Background(), Options{Width: 32, Height: 24, MaxSteps: 1}, Jobs([]int{5}, []int64{1}))
	if err != nil {
		t.Fatalf("budget failures are per job, got %v", err)
	}
	if !errors.Is(outcomes[0].Err, core.ErrStepBudgetExceeded) {
		t.Fatalf("err=%v, want ErrStepBudgetExceeded", outcomes[0].Err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Options{Width: 32, Height: 24}, Jobs([]int{5}, []int64{1})); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestRank(t *testing.T) {
	outcomes := []Outcome{
		{Job: Job{Thresh: 1}, Err: errors.New("budget")},
		{Job: Job{Thresh: 2}},
		{Job: Job{Thresh: 3}},
	}
	outcomes[1].Report.CaveSteps = 9
	outcomes[2].Report.CaveSteps = 4
	Rank(outcomes)
	if outcomes[0].Thresh != 3 || outcomes[1].Thresh != 2 || outcomes[2].Thresh != 1 {
		t.Fatalf("rank order %d,%d,%d", outcomes[0].Thresh, outcomes[1].Thresh, outcomes[2].Thresh)
	}
}

func TestFailedJobNamesItsSeed(t *testing.T) {
	outcomes, err := Run(context.Background(), Options{Width: 0, Height: 10, Workers: 1}, []Job{{Thresh: 5, Seed: 42}})
	if err != nil {
		t.Fatal(err)
	}
	o := outcomes[0]
	if o.Converged() {
		t.Fatal("a zero-width run must fail")
	}
	if line := o.String(); !strings.Contains(line, "seed=42") {
		t.Fatalf("summary %q does not name the job seed", line)
	}
}
