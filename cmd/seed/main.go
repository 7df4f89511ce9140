package main

import (
	"context"
	"log"
	"os"

	"lead-engagement-be/internal/model"
	"lead-engagement-be/internal/repository/implementation"
	"lead-engagement-be/pkg/admin/mapper"
	"lead-engagement-be/pkg/database"
	"lead-engagement-be/pkg/events"
	"lead-engagement-be/pkg/widget"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// journey is one scripted visitor: pages in order, then an optional button click.
type journey struct {
	pages []string
	click *widget.ActionButton
}

var journeys = []journey{
	{pages: []string{"/", "/case-studies"}},
	{pages: []string{"/", "/solutions"}},
	{pages: []string{"/pricing", "/contact"}},
	{pages: []string{"/solutions", "/pricing", "/case-studies"}},
	{
		pages: []string{"/", "/pricing", "/contact", "/solutions"},
		click: &widget.ActionButton{Label: "Book a Demo", To: "/platform-demo", Variant: widget.VariantSecondary},
	},
	{
		pages: []string{"/platform-demo", "/assessment", "/demo-request"},
		click: &widget.ActionButton{Label: "Watch the Demo", Action: widget.ActionScrollToDemo, Variant: widget.VariantPrimary},
	},
	{pages: []string{"/pricing/solutions", "/contact"}},
}

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	repo := implementation.NewLeadSignalRepository(db)
	ctx := context.Background()

	log.Println("Seeding demo lead signals...")

	created := 0
	for _, j := range journeys {
		for _, sig := range simulate(j) {
			if err := repo.Create(ctx, sig); err != nil {
				log.Printf("Error creating signal for session %s: %v", sig.SessionID, err)
				continue
			}
			created++
		}
	}

	log.Printf("Lead signal seeding completed! (%d signals, %d sessions)", created, len(journeys))
}

// simulate drives a real widget through j and records the signals it produces.
func simulate(j journey) []*model.LeadSignal {
	rec := &recorder{sessionID: uuid.NewString()}
	w := widget.New(
		widget.WithRoute(j.pages[0]),
		widget.WithDelay(widget.FixedDelay(0)),
		widget.WithObserver(rec),
	)
	rec.widget = w
	rec.add(events.LeadSessionStarted, "", nil)
	if w.Profile().Level != widget.LevelCold {
		rec.add(events.LeadEngagementChanged, widget.LevelCold, nil)
	}

	for _, p := range j.pages[1:] {
		w.ChangeRoute(p)
	}
	if j.click != nil {
		w.ClickAction(*j.click)
	}
	return rec.signals
}

type recorder struct {
	widget.NopObserver

	sessionID string
	widget    *widget.Widget
	signals   []*model.LeadSignal
}

func (r *recorder) ProfileChanged(profile widget.ProfileView, previous widget.Level) {
	if profile.Level != previous {
		r.add(events.LeadEngagementChanged, previous, nil)
	}
}

func (r *recorder) ActionClicked(btn widget.ActionButton) {
	r.add(events.LeadActionClicked, "", &btn)
}

func (r *recorder) add(eventType string, previous widget.Level, action *widget.ActionButton) {
	msg := mapper.NewLeadSignalMessage(r.sessionID, eventType, r.widget.Snapshot(), previous, action)
	sig, err := mapper.LeadSignalMessageToModel(msg)
	if err != nil {
		log.Printf("Error mapping signal for session %s: %v", r.sessionID, err)
		return
	}
	r.signals = append(r.signals, sig)
}
