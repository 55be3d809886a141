package projections

import (
	"context"
	"html/template"
	"io"
	"sort"

	"zonehub/internal/domain/booking"
	"zonehub/internal/domain/club"
)

// HandoverBookingStore defines the booking store interface needed by the handover projection.
type HandoverBookingStore interface {
	ListByEquipment(ctx context.Context, equipmentID string) ([]booking.Booking, error)
}

// HandoverEquipmentStore defines the equipment store interface needed by the handover projection.
type HandoverEquipmentStore interface {
	GetByID(ctx context.Context, id string) (booking.Equipment, error)
}

// HandoverClubStore defines the club store interface needed by the handover projection.
type HandoverClubStore interface {
	List(ctx context.Context) ([]club.Club, error)
}

// GetHandoverChainDeps holds dependencies for the handover chain projection.
type GetHandoverChainDeps struct {
	BookingStore   HandoverBookingStore
	EquipmentStore HandoverEquipmentStore
	ClubStore      HandoverClubStore
}

// HandoverLink is one booking in the chain, annotated with who the club
// collects the gear from and who it passes it to.
type HandoverLink struct {
	Booking       booking.Booking
	ClubName      string
	CollectFrom   string // club name of the previous booking, empty for the first
	CollectPhone  string
	DeliverTo     string // club name of the next booking, empty for the last
	DeliverPhone  string
}

// HandoverChainResult carries the output of the handover chain projection.
type HandoverChainResult struct {
	Equipment booking.Equipment
	Links     []HandoverLink
}

// QueryGetHandoverChain orders an equipment's confirmed bookings by start
// date and links each one to its neighbours. Cancelled bookings drop out of
// the chain.
// PRE: equipment exists
// POST: Links are sorted ascending by start date
func QueryGetHandoverChain(ctx context.Context, equipmentID string, deps GetHandoverChainDeps) (HandoverChainResult, error) {
	eq, err := deps.EquipmentStore.GetByID(ctx, equipmentID)
	if err != nil {
		return HandoverChainResult{}, err
	}

	bookings, err := deps.BookingStore.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return HandoverChainResult{}, err
	}

	clubNames := map[string]string{}
	if clubs, err := deps.ClubStore.List(ctx); err == nil {
		for _, c := range clubs {
			clubNames[c.ID] = c.Name
		}
	}

	confirmed := bookings[:0:0]
	for _, b := range bookings {
		if b.Status == booking.StatusConfirmed {
			confirmed = append(confirmed, b)
		}
	}
	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].StartDate.Before(confirmed[j].StartDate)
	})

	links := make([]HandoverLink, len(confirmed))
	for i, b := range confirmed {
		link := HandoverLink{Booking: b, ClubName: clubNames[b.ClubID]}
		if i > 0 {
			prev := confirmed[i-1]
			link.CollectFrom = clubNames[prev.ClubID]
			link.CollectPhone = prev.ContactPhone
		}
		if i < len(confirmed)-1 {
			next := confirmed[i+1]
			link.DeliverTo = clubNames[next.ClubID]
			link.DeliverPhone = next.ContactPhone
		}
		links[i] = link
	}

	return HandoverChainResult{Equipment: eq, Links: links}, nil
}

var handoverReportTemplate = template.Must(template.New("handover").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Handover schedule: {{.Equipment.Name}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.5em; text-align: left; }
th { background: #f0f0f0; }
.muted { color: #777; }
</style>
</head>
<body>
<h1>Handover schedule: {{.Equipment.Name}}</h1>
{{if .Equipment.Description}}<p class="muted">{{.Equipment.Description}}</p>{{end}}
{{if .Links}}
<table>
<tr><th>Dates</th><th>Club</th><th>Contact</th><th>Collect from</th><th>Deliver to</th></tr>
{{range .Links}}
<tr>
<td>{{.Booking.StartDate.Format "02 Jan 2006"}} &ndash; {{.Booking.EndDate.Format "02 Jan 2006"}}</td>
<td>{{.ClubName}}</td>
<td>{{.Booking.ContactName}}{{if .Booking.ContactPhone}} ({{.Booking.ContactPhone}}){{end}}</td>
<td>{{if .CollectFrom}}{{.CollectFrom}}{{if .CollectPhone}} ({{.CollectPhone}}){{end}}{{else}}<span class="muted">zone storage</span>{{end}}</td>
<td>{{if .DeliverTo}}{{.DeliverTo}}{{if .DeliverPhone}} ({{.DeliverPhone}}){{end}}{{else}}<span class="muted">zone storage</span>{{end}}</td>
</tr>
{{end}}
</table>
{{else}}
<p class="muted">No confirmed bookings.</p>
{{end}}
</body>
</html>
`))

// RenderHandoverReport writes the chain as a printable HTML page for the
// clubs involved in the season's equipment rotation.
func RenderHandoverReport(w io.Writer, result HandoverChainResult) error {
	return handoverReportTemplate.Execute(w, result)
}
