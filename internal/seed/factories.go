// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var skillPool = []string{
	"Guitar", "Piano", "Photography", "Cooking", "Baking", "Spanish", "French",
	"German", "Yoga", "Chess", "Drawing", "Painting", "Woodworking", "Gardening",
	"Go", "Python", "JavaScript", "Public Speaking", "Creative Writing",
	"Video Editing", "Knitting", "Pottery", "Salsa Dancing", "Swimming",
	"Rock Climbing", "Calligraphy", "Origami", "Juggling", "First Aid",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// randomSkills picks n distinct skills from the pool.
func (f *Factory) randomSkills(n int) []string {
	picked := f.rand.Perm(len(skillPool))[:n]
	skills := make([]string, 0, n)
	for _, i := range picked {
		skills = append(skills, skillPool[i])
	}
	return skills
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:          gofakeit.Name(),
		Email:         gofakeit.Email(),
		Password:      string(hashedPassword),
		Location:      gofakeit.City(),
		ProfilePhoto:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		SkillsOffered: f.randomSkills(1 + f.rand.Intn(3)),
		SkillsWanted:  f.randomSkills(1 + f.rand.Intn(3)),
		Availability:  []string{"weekends", "evenings", "weekdays", "flexible"}[f.rand.Intn(4)],
		IsPublic:      f.rand.Intn(10) > 0, // most profiles public
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSwap persists a swap request between two users with the given status.
func (f *Factory) CreateSwap(from, to *models.User, status models.SwapStatus, overrides ...func(*models.SwapRequest)) (*models.SwapRequest, error) {
	offered := from.SkillsOffered
	if len(offered) == 0 {
		offered = f.randomSkills(1)
	}
	wanted := to.SkillsOffered
	if len(wanted) == 0 {
		wanted = f.randomSkills(1)
	}

	swap := &models.SwapRequest{
		FromUserID:   from.ID,
		ToUserID:     to.ID,
		SkillOffered: offered[f.rand.Intn(len(offered))],
		SkillWanted:  wanted[f.rand.Intn(len(wanted))],
		Status:       status,
		CreatedAt:    time.Now().Add(-time.Duration(f.rand.Intn(60*24)) * time.Hour),
	}

	for _, override := range overrides {
		override(swap)
	}

	if err := f.db.Create(swap).Error; err != nil {
		return nil, err
	}
	return swap, nil
}

// CreateFeedback persists feedback from one party of the swap for the other.
func (f *Factory) CreateFeedback(swap *models.SwapRequest, authorID uint, overrides ...func(*models.Feedback)) (*models.Feedback, error) {
	recipientID := swap.ToUserID
	if authorID == swap.ToUserID {
		recipientID = swap.FromUserID
	}

	feedback := &models.Feedback{
		SwapID:     swap.ID,
		FromUserID: authorID,
		ToUserID:   recipientID,
		Rating:     3 + f.rand.Intn(3),
		Comment:    gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(feedback)
	}

	if err := f.db.Create(feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

// CreateActivity persists an audit trail entry.
func (f *Factory) CreateActivity(userID uint, action string, targetUserID *uint, details string) error {
	entry := &models.ActivityLog{
		UserID:       userID,
		Action:       action,
		TargetUserID: targetUserID,
		Details:      details,
	}
	return f.db.Create(entry).Error
}
