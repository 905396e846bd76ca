package stats

import "fmt"

// Summary is the dashboard verdict for one creature.
type Summary struct {
	Strongest      Axis   `json:"strongest"`
	Weakest        Axis   `json:"weakest"`
	Recommendation string `json:"recommendation"`
}

// Summarize picks the extreme axes and the matching role recommendation.
func Summarize(axes []Axis) Summary {
	strong, _ := Strongest(axes)
	weak, _ := Weakest(axes)
	return Summary{
		Strongest:      strong,
		Weakest:        weak,
		Recommendation: Recommendation(strong.Subject),
	}
}

// String renders the summary the way the dashboard prints it.
func (s Summary) String() string {
	return fmt.Sprintf("Strongest Stat: %s (%.1f)\nWeakest Stat: %s (%.1f)\n%s",
		s.Strongest.Subject, s.Strongest.Value,
		s.Weakest.Subject, s.Weakest.Value,
		s.Recommendation,
	)
}

// Recommendation suggests a battle role from the strongest radar subject.
func Recommendation(subject string) string {
	switch subject {
	case SubjectHP, SubjectCP:
		return "This Pokémon has high durability or power. Great for front-line battles."
	case SubjectFastDMG, SubjectSpecialDMG:
		return "This Pokémon delivers strong attacks. Ideal for offensive roles."
	case SubjectWeight, SubjectHeight:
		return "This Pokémon has impressive size. Can intimidate or tank well."
	case SubjectFleeRate:
		return "This Pokémon tends to flee easily. Suitable for hit-and-run or scouting."
	case SubjectWeaknesses:
		return "This Pokémon has many weaknesses. Handle with care or support with team synergy."
	default:
		return "Balanced stats. Versatile for various strategies."
	}
}
