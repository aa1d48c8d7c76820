package progress

import (
	"time"

	"github.com/alem-hub/learning-progress/pkg/timeutil"
)

// DefaultMoodWindowDays is the length of the mood calendar shown to students.
const DefaultMoodWindowDays = 30

// MoodMissed marks a day with no recorded mood.
const MoodMissed = "missed"

// DailyMood is one day of the completed mood calendar.
type DailyMood struct {
	Date string `json:"date"` // YYYY-MM-DD
	Mood string `json:"mood"`
}

// CompleteMoodWindow returns exactly windowDays entries, most recent first,
// starting at reference. Days without a recorded mood get MoodMissed.
// Recorded dates are read in reference's location. When several entries
// fall on the same day the first one in input order wins.
func CompleteMoodWindow(recorded []MoodEntry, windowDays int, reference time.Time) []DailyMood {
	if windowDays <= 0 {
		windowDays = DefaultMoodWindowDays
	}
	loc := reference.Location()

	byDate := make(map[string]string, len(recorded))
	for _, m := range recorded {
		day := timeutil.FormatDate(m.Date.In(loc))
		if _, seen := byDate[day]; seen {
			continue
		}
		byDate[day] = m.Mood
	}

	window := make([]DailyMood, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		day := timeutil.FormatDate(reference.AddDate(0, 0, -i))
		mood, ok := byDate[day]
		if !ok {
			mood = MoodMissed
		}
		window = append(window, DailyMood{Date: day, Mood: mood})
	}
	return window
}
