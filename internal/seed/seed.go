package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool
}

// DefaultOptions is the preset used by the built-in demo seeding.
var DefaultOptions = Options{
	NumUsers: 25,
	NumSwaps: 60,
}

// DemoData seeds a small demo dataset. Used at startup when demo
// seeding is enabled.
func DemoData(db *gorm.DB) error {
	return Seed(db, DefaultOptions)
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d swaps...", opts.NumUsers, opts.NumSwaps)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	swaps, err := createSwaps(factory, users, opts.NumSwaps)
	if err != nil {
		return fmt.Errorf("failed to create swap requests: %w", err)
	}
	log.Printf("✓ %d swap requests created", len(swaps))

	feedbackCount, err := createFeedback(factory, swaps)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	log.Printf("✓ %d feedback entries created", feedbackCount)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE activity_logs, feedback, swap_requests, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createSwaps pairs random distinct users and spreads swaps across the
// lifecycle statuses so lists and stats have something to show.
func createSwaps(factory *Factory, users []*models.User, count int) ([]*models.SwapRequest, error) {
	if len(users) < 2 {
		return nil, fmt.Errorf("need at least 2 users to create swaps, have %d", len(users))
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	statuses := []models.SwapStatus{
		models.SwapStatusPending,
		models.SwapStatusPending,
		models.SwapStatusAccepted,
		models.SwapStatusAccepted,
		models.SwapStatusAccepted,
		models.SwapStatusRejected,
		models.SwapStatusCancelled,
	}

	swaps := make([]*models.SwapRequest, 0, count)
	for i := 0; i < count; i++ {
		from := users[r.Intn(len(users))]
		to := users[r.Intn(len(users))]
		if from.ID == to.ID {
			continue
		}

		status := statuses[r.Intn(len(statuses))]
		swap, err := factory.CreateSwap(from, to, status)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)

		details := fmt.Sprintf("Swap request created for %s in exchange for %s", swap.SkillOffered, swap.SkillWanted)
		if err := factory.CreateActivity(from.ID, models.ActionSwapCreated, &to.ID, details); err != nil {
			return nil, err
		}
		switch status {
		case models.SwapStatusAccepted:
			err = factory.CreateActivity(to.ID, models.ActionSwapAccepted, &from.ID, "Swap request accepted")
		case models.SwapStatusRejected:
			err = factory.CreateActivity(to.ID, models.ActionSwapRejected, &from.ID, "Swap request rejected")
		case models.SwapStatusCancelled:
			err = factory.CreateActivity(from.ID, models.ActionSwapCancelled, &to.ID, "Swap request cancelled")
		}
		if err != nil {
			return nil, err
		}
	}
	return swaps, nil
}

// createFeedback leaves feedback on most accepted swaps, sometimes from
// both parties.
func createFeedback(factory *Factory, swaps []*models.SwapRequest) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	count := 0
	for _, swap := range swaps {
		if swap.Status != models.SwapStatusAccepted {
			continue
		}
		if r.Intn(10) < 2 {
			continue // some accepted swaps never get rated
		}

		if _, err := factory.CreateFeedback(swap, swap.FromUserID); err != nil {
			return count, err
		}
		count++

		if r.Intn(2) == 0 {
			if _, err := factory.CreateFeedback(swap, swap.ToUserID); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
