package models

// DefaultChecklist returns the starter topic list a fresh install gets.
// Ids are minted through newID so seeded items live in the temporary
// identifier space until the remote store assigns real row ids.
func DefaultChecklist(newID func() RecordID) []ChecklistItem {
	seed := []struct {
		subject Subject
		topic   string
	}{
		{SubjectMaths, "Ratio & Proportion"},
		{SubjectMaths, "Percentages"},
		{SubjectMaths, "Profit & Loss"},
		{SubjectMaths, "Time & Distance"},
		{SubjectMaths, "Mixtures & Averages"},
		{SubjectEnglish, "Tenses"},
		{SubjectEnglish, "Error Spotting & Cloze"},
		{SubjectEnglish, "RC Practice"},
		{SubjectEnglish, "Vocab (roots & idioms)"},
		{SubjectReasoning, "Series & Analogy"},
		{SubjectReasoning, "Coding-Decoding"},
		{SubjectReasoning, "Figure/Non-verbal"},
		{SubjectReasoning, "Syllogism & Directions"},
		{SubjectGK, "Defence (exercises & equipment)"},
		{SubjectGK, "Static (Polity, Geo, History)"},
		{SubjectGK, "Current Affairs (last 18 months)"},
		{SubjectGK, "Misc (Awards, Appointments)"},
	}

	items := make([]ChecklistItem, 0, len(seed))
	for _, s := range seed {
		items = append(items, ChecklistItem{
			ID:      newID(),
			Subject: s.subject,
			Topic:   s.topic,
			Status:  StatusNotStarted,
		})
	}
	return items
}
