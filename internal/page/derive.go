package page

import (
	"strings"

	"github.com/radarimovel/backend/internal/models"
)

// Tones used by badge pills and the confidence tier.
const (
	ToneTeal  = "teal"
	ToneAmber = "amber"
	ToneGray  = "gray"
	ToneRed   = "red"
)

// Badge is the recommendation pill next to the total score.
type Badge struct {
	Text string
	Tone string
}

// Tier is the confidence mini-stat label.
type Tier struct {
	Text string
	Tone string
}

// ScoreBadge derives the badge from the score label, falling back to total
// thresholds when the label matches nothing. Matching is a case-insensitive
// substring check.
func ScoreBadge(score models.Score) Badge {
	label := strings.ToLower(score.Label)

	switch {
	case strings.Contains(label, "boa decisão") && !strings.Contains(label, "atenção"):
		return Badge{Text: "Boa decisão", Tone: ToneTeal}
	case strings.Contains(label, "atenção"):
		return Badge{Text: "Boa decisão, com atenção", Tone: ToneAmber}
	case strings.Contains(label, "neutro"):
		return Badge{Text: "Neutro (precisa de mais dados)", Tone: ToneGray}
	case score.Total >= 80:
		return Badge{Text: "Boa decisão", Tone: ToneTeal}
	case score.Total >= 65:
		return Badge{Text: "Boa decisão, com atenção", Tone: ToneAmber}
	default:
		return Badge{Text: "Não recomendado", Tone: ToneRed}
	}
}

// ConfidenceTier maps the optional confidence scalar onto its display tier.
func ConfidenceTier(confidence *int) Tier {
	switch {
	case confidence == nil:
		return Tier{Text: "—", Tone: ToneGray}
	case *confidence >= 75:
		return Tier{Text: "Alta", Tone: ToneTeal}
	case *confidence >= 50:
		return Tier{Text: "Média", Tone: ToneAmber}
	default:
		return Tier{Text: "Baixa", Tone: ToneRed}
	}
}

// ConfidenceWidth is the proportional bar width in percent, clamped to 0-100.
// Absent confidence renders an empty bar.
func ConfidenceWidth(confidence *int) int {
	if confidence == nil {
		return 0
	}
	if *confidence < 0 {
		return 0
	}
	if *confidence > 100 {
		return 100
	}
	return *confidence
}
