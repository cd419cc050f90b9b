package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
)

// FormatSchedule renders one weekly schedule as a day-by-day table.
func FormatSchedule(s *domain.Schedule) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Schedule %s", s.ScheduleID)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  created %s\n\n",
		StatusPill(s.Status), Dim(s.CreatedAt.Format("2006-01-02 15:04"))))

	headers := []string{"DAY", "WORKOUT", "DURATION", "FOCUS", "INTENSITY", "LOCATION"}
	rows := make([][]string, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		w, ok := s.MicroPlan[day]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			Bold(day),
			WorkoutStyle(w.Type).Render(w.Type),
			StyleFg.Render(w.Duration),
			StyleFg.Render(w.Focus),
			StyleFg.Render(w.Intensity),
			Dim(w.Location),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	for _, day := range domain.Weekdays {
		if w, ok := s.MicroPlan[day]; ok && !w.IsRest() && w.Details != "" && w.Details != "N/A" {
			b.WriteString(fmt.Sprintf("\n%s %s", Bold(day+":"), StyleFg.Render(w.Details)))
		}
	}
	b.WriteString("\n")

	if s.OptimizationNotes != "" {
		b.WriteString("\n")
		b.WriteString(Header("Optimization Notes"))
		b.WriteString("\n")
		b.WriteString(StyleFg.Render(s.OptimizationNotes))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatScheduleList renders schedules as a compact table, newest first.
func FormatScheduleList(schedules []*domain.Schedule) string {
	if len(schedules) == 0 {
		return Dim("No schedules yet. Run 'stride schedule create' to plan a week.") + "\n"
	}

	headers := []string{"ID", "STATUS", "TRAINING DAYS", "CREATED"}
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		training := 0
		for _, w := range s.MicroPlan {
			if !w.IsRest() {
				training++
			}
		}
		rows = append(rows, []string{
			Bold(s.ScheduleID),
			StatusPill(s.Status),
			StyleFg.Render(fmt.Sprintf("%d", training)),
			Dim(s.CreatedAt.Format("2006-01-02 15:04")),
		})
	}
	return RenderTable(headers, rows)
}

// FormatMacroPlan renders the long-term plan text with its metadata.
func FormatMacroPlan(p *domain.MacroPlan) string {
	var b strings.Builder
	b.WriteString(Header("Macro Plan"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  created %s\n\n",
		Dim(p.PlanID), Dim(p.CreatedAt.Format("2006-01-02"))))
	b.WriteString(StyleFg.Render(p.Text))
	b.WriteString("\n")
	return b.String()
}

// FormatProfile renders the stored profile as sorted key/value lines.
func FormatProfile(p domain.Profile) string {
	var b strings.Builder
	b.WriteString(Header("Profile"))
	b.WriteString("\n")

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := p[k]
		text, ok := v.(string)
		if !ok {
			data, err := json.Marshal(v)
			if err != nil {
				text = fmt.Sprintf("%v", v)
			} else {
				text = string(data)
			}
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(k+":"), StyleFg.Render(text)))
	}
	return b.String()
}

// FormatStats renders the user stats summary.
func FormatStats(stats *domain.UserStats) string {
	var b strings.Builder
	b.WriteString(Header("Status"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("user:"), StyleFg.Render(stats.UserID)))

	profile := StyleRed.Render("missing")
	if stats.HasProfile {
		profile = StyleGreen.Render("set")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("profile:"), profile))
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("schedules:"), StyleFg.Render(fmt.Sprintf("%d", stats.TotalSchedules))))
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("feedback:"), StyleFg.Render(fmt.Sprintf("%d", stats.TotalFeedback))))
	return b.String()
}

// FormatFeedbackList renders feedback records oldest first.
func FormatFeedbackList(recs []*domain.FeedbackRecord) string {
	if len(recs) == 0 {
		return Dim("No feedback recorded yet.") + "\n"
	}

	var b strings.Builder
	for i, rec := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s\n",
			Dim(rec.Timestamp.Format("2006-01-02 15:04")),
			Dim("on "+rec.ScheduleID)))
		b.WriteString(fmt.Sprintf("%s %s\n", Bold("you:"), StyleFg.Render(rec.FeedbackText)))
		b.WriteString(fmt.Sprintf("%s %s\n", Bold("coach:"), StyleFg.Render(rec.AnalysisText)))
	}
	return b.String()
}

// FormatSlots renders candidate workout slots grouped by day.
func FormatSlots(slots []calendar.Slot) string {
	if len(slots) == 0 {
		return Dim("No free slots found for that duration.") + "\n"
	}

	headers := []string{"DAY", "START", "END", "WINDOW", "FREE"}
	rows := make([][]string, 0, len(slots))
	var lastDay string
	for _, s := range slots {
		day := s.Start.Format("Mon 2006-01-02")
		dayCell := Bold(day)
		if day == lastDay {
			dayCell = ""
		}
		lastDay = day
		rows = append(rows, []string{
			dayCell,
			StyleFg.Render(s.Start.Format("15:04")),
			StyleFg.Render(s.End.Format("15:04")),
			windowStyle(s.WindowType).Render(s.WindowType),
			Dim((time.Duration(s.AvailableDurationMin) * time.Minute).String()),
		})
	}
	return RenderTable(headers, rows)
}

func windowStyle(kind string) lipgloss.Style {
	switch kind {
	case "early_morning":
		return StyleBlue
	case "lunch":
		return StyleYellow
	case "evening":
		return StylePurple
	case "afternoon":
		return StyleGreen
	default:
		return StyleFg
	}
}
