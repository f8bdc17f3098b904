package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/adityarawat/prepometer/internal/constants"
	"github.com/adityarawat/prepometer/internal/models"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: local storage reachable
	if err := checkStorage(ctx); err != nil {
		fmt.Printf("❌ Local storage: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Local storage: OK (%s)\n", ctx.Store.GetPath())
	}

	// Check 2: data validation
	if err := checkData(ctx); err != nil {
		fmt.Printf("❌ Data validation: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data validation: OK\n")
	}

	// Check 3: remote backend reachable (only when configured)
	if ctx.RemoteDB == nil {
		fmt.Printf("⊘ Remote backend: SKIPPED (not configured)\n")
	} else if err := ctx.RemoteDB.Ping(); err != nil {
		fmt.Printf("❌ Remote backend: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Remote backend: OK\n")
	}

	// Check 4: concurrent instances (warning only). Two processes mutating
	// the same local files are last-write-wins; the second one to save
	// silently overwrites the first.
	if n, err := countInstances(); err != nil {
		fmt.Printf("⊘ Concurrent instances: SKIPPED (%v)\n", err)
	} else if n > 1 {
		fmt.Printf("⚠ Concurrent instances: WARNING\n")
		fmt.Printf("   %d prepometer processes are running; concurrent edits overwrite each other\n", n)
	} else {
		fmt.Printf("✓ Concurrent instances: OK\n")
	}

	// Check 5: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorage(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}

func checkData(ctx *Context) error {
	items := ctx.Store.LoadChecklist()
	seen := make(map[models.RecordID]bool)
	for _, item := range items {
		if item.ID.IsZero() {
			return fmt.Errorf("checklist item %q has no id", item.Topic)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate checklist id: %s", item.ID)
		}
		seen[item.ID] = true
		if _, ok := models.ParseSubject(string(item.Subject)); !ok {
			return fmt.Errorf("checklist item %q has unknown subject %q", item.Topic, item.Subject)
		}
	}

	for _, entry := range ctx.Store.LoadDailyLog() {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("daily log entry %s: %w", entry.Date, err)
		}
	}
	return nil
}

func countInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, fmt.Errorf("cannot list processes: %w", err)
	}

	self := os.Getpid()
	n := 1
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			n++
		}
	}
	return n, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
