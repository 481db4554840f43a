// Command seed สร้าง daily goals เริ่มต้นของวันที่กำหนด (ค่า default คือวันนี้)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tasktracker/domain/models"
	"tasktracker/pkg/di"
)

func main() {
	dateFlag := flag.String("date", "", "date to seed in YYYY-MM-DD format (default: today)")
	flag.Parse()

	if err := run(*dateFlag); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(dateFlag string) error {
	container := di.NewContainer()
	if err := container.InitCore(); err != nil {
		return fmt.Errorf("initialize container: %w", err)
	}
	defer container.Cleanup()

	date := container.TaskService.Today()
	if dateFlag != "" {
		d, err := models.ParseDate(dateFlag)
		if err != nil {
			return err
		}
		date = d
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := container.SeedDailyGoals(ctx, date)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d daily goal(s) for %s\n", created, date)
	return nil
}
