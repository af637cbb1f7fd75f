// Package seed populates the greetings table on first start.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/greeting-service/internal/model"
)

// Repo is the subset of repository.GreetingRepo the seed routine needs.
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, g *model.Greeting) error
	DeleteByIDs(ctx context.Context, ids []uint64) error
}

// Catalog returns the default greetings: three times of day, three
// languages and two tones.  A fresh slice is returned on every call.
func Catalog() []model.Greeting {
	return []model.Greeting{
		{TimeOfDay: "Morning", Language: "English", GreetingMessage: "Good Morning", Tone: "Formal"},
		{TimeOfDay: "Morning", Language: "English", GreetingMessage: "Morning!", Tone: "Casual"},
		{TimeOfDay: "Afternoon", Language: "English", GreetingMessage: "Good Afternoon", Tone: "Formal"},
		{TimeOfDay: "Afternoon", Language: "English", GreetingMessage: "Afternoon!", Tone: "Casual"},
		{TimeOfDay: "Evening", Language: "English", GreetingMessage: "Good Night", Tone: "Formal"},
		{TimeOfDay: "Evening", Language: "English", GreetingMessage: "Night!", Tone: "Casual"},

		{TimeOfDay: "Morning", Language: "Swedish", GreetingMessage: "God Morgon", Tone: "Formal"},
		{TimeOfDay: "Morning", Language: "Swedish", GreetingMessage: "Morgon!", Tone: "Casual"},
		{TimeOfDay: "Afternoon", Language: "Swedish", GreetingMessage: "God Eftermiddag", Tone: "Formal"},
		{TimeOfDay: "Afternoon", Language: "Swedish", GreetingMessage: "Eftermiddag!", Tone: "Casual"},
		{TimeOfDay: "Evening", Language: "Swedish", GreetingMessage: "God Afton", Tone: "Formal"},
		{TimeOfDay: "Evening", Language: "Swedish", GreetingMessage: "Afton!", Tone: "Casual"},

		{TimeOfDay: "Morning", Language: "Spanish", GreetingMessage: "Buen Día", Tone: "Formal"},
		{TimeOfDay: "Morning", Language: "Spanish", GreetingMessage: "Buenos Días!", Tone: "Casual"},
		{TimeOfDay: "Afternoon", Language: "Spanish", GreetingMessage: "Buenas tardes", Tone: "Formal"},
		{TimeOfDay: "Afternoon", Language: "Spanish", GreetingMessage: "Tarde!", Tone: "Casual"},
		{TimeOfDay: "Evening", Language: "Spanish", GreetingMessage: "Buenas Noches", Tone: "Formal"},
		{TimeOfDay: "Evening", Language: "Spanish", GreetingMessage: "Hola por la noche!", Tone: "Casual"},
	}
}

// Run creates the greetings table if needed and, when it is empty, inserts
// the catalog one row at a time.  It returns the number of rows inserted,
// which is zero when the table already held data.  The first failing insert
// aborts the run and the rows inserted so far are deleted again, so the next
// start seeds from scratch; callers must treat any error as fatal.
func Run(ctx context.Context, repo Repo) (int, error) {
	if err := repo.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("create greetings table: %w", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count greetings: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	ids := make([]uint64, 0, len(Catalog()))
	for i, g := range Catalog() {
		if err := repo.Create(ctx, &g); err != nil {
			err = fmt.Errorf("seed greeting %d (%s/%s/%s): %w", i, g.TimeOfDay, g.Language, g.Tone, err)
			if derr := repo.DeleteByIDs(ctx, ids); derr != nil {
				return len(ids), errors.Join(err, fmt.Errorf("remove partial seed: %w", derr))
			}
			return 0, err
		}
		ids = append(ids, g.ID)
	}
	return len(ids), nil
}
