package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mooncircle/mooncircle/internal/domain/event"
)

// SeedEvents inserts the sample events when the catalog is empty. Events are
// otherwise managed out of band; this only gives a fresh install something
// to render.
func SeedEvents(ctx context.Context, pool *pgxpool.Pool) error {
	var count int

	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	samples := []event.Event{
		{
			ID:          uuid.NewString(),
			Title:       "Męski Krąg Mocy",
			StartAt:     time.Date(2025, 11, 21, 18, 0, 0, 0, time.Local),
			Location:    "Motylarnia, Długołęka, Wiejska 9",
			Description: "Pierwsze spotkanie tego Kręgu. Serdecznie zapraszam",
			Duration:    "3 godziny",
			SpotsTotal:  10,
			SpotsTaken:  3,
			Image:       "kragmocy1.png",
		},
		{
			ID:          uuid.NewString(),
			Title:       "Aromaterapia jako wsparcie dla ciała i ducha",
			StartAt:     time.Date(2025, 12, 3, 18, 0, 0, 0, time.Local),
			Location:    "Motylarnia, Długołęka, Wiejska 9",
			Description: "Odkryj moc czystych ekstraktów ziołowych zamkniętych w olejku eterycznym. Poznaj ich działanie dla ciała i ducha. Stwórz swoją własną kompozycję.",
			Duration:    "2 godziny",
			SpotsTotal:  20,
			SpotsTaken:  0,
			Image:       "air_doterra.jpg",
		},
		{
			ID:          uuid.NewString(),
			Title:       "Zimowy Krąg w Górach",
			StartAt:     time.Date(2026, 1, 20, 9, 0, 0, 0, time.Local),
			Location:    "Bieszczady",
			Description: "Weekendowy wyjazd do gór. Wędrówki, rozmowy przy ognisku, sauna i lodowata kąpiel.",
			Duration:    "2 dni",
			SpotsTotal:  10,
			SpotsTaken:  2,
		},
	}

	for _, e := range samples {
		e.CreatedAt = now
		e.UpdatedAt = now

		_, err = pool.Exec(ctx,
			`INSERT INTO events(id, title, start_at, location, description, duration, spots_total, spots_taken, image, created_at, updated_at)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			e.ID, e.Title, e.StartAt, e.Location, e.Description, e.Duration,
			e.SpotsTotal, e.SpotsTaken, e.Image, e.CreatedAt, e.UpdatedAt)

		if err != nil {
			return err
		}
	}

	return nil
}
