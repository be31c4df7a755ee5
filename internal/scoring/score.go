package scoring

import "github.com/radarimovel/backend/internal/models"

// Score labels shown to the visitor.
const (
	LabelGoodWithCaution = "Boa decisão, com atenção"
	LabelNotRecommended  = "Não recomendado"
)

// Breakdown block names. Order here is the display order of the report.
const (
	BlockPrice     = "Preço vs Mercado"
	BlockSafety    = "Segurança & Risco"
	BlockInfra     = "Infraestrutura & Mobilidade"
	BlockRadar     = "Radar do Entorno"
	BlockStability = "Estabilidade da Região"
)

// placeBudget is the conceptual maximum of the four location-related blocks,
// used to project them onto a 0-100 place score.
const placeBudget = 70

// Baseline returns the heuristic score the narrative report is built around.
// The breakdown values are a conservative citywide baseline; query-specific
// signals only adjust place score and confidence, not the block points.
func Baseline() models.Score {
	breakdown := models.Breakdown{
		{Category: BlockPrice, Points: 18},
		{Category: BlockSafety, Points: 15},
		{Category: BlockInfra, Points: 16},
		{Category: BlockRadar, Points: 12},
		{Category: BlockStability, Points: 8},
	}

	total := breakdown.Sum()
	label := LabelNotRecommended
	if total >= 55 {
		label = LabelGoodWithCaution
	}

	return models.Score{
		Total:     total,
		Label:     label,
		Breakdown: breakdown,
	}
}

// Enrich fills place score and confidence from the evidence gathered for this
// query. Confidence grows with the amount of material backing the report:
// each news item adds 8 points over a base of 40, a scraped listing adds 15.
func Enrich(score models.Score, newsCount int, hasListing bool) models.Score {
	place := 0
	for _, entry := range score.Breakdown {
		if entry.Category == BlockPrice {
			continue
		}
		place += entry.Points
	}
	placeScore := clamp(place * 100 / placeBudget)

	confidence := 40 + newsCount*8
	if hasListing {
		confidence += 15
	}
	confidence = clamp(confidence)

	score.PlaceScore = &placeScore
	score.Confidence = &confidence
	return score
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
