package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/radarimovel/backend/internal/listing"
	"github.com/radarimovel/backend/internal/models"
	"github.com/radarimovel/backend/internal/news"
)

// Narrative is the LLM-authored part of an analysis: the summary, the
// synthesis lists and the radar items built from retrieved news.
type Narrative struct {
	Summary   string             `json:"summary"`
	Positives []string           `json:"positives"`
	Cautions  []string           `json:"cautions"`
	Risks     []string           `json:"risks"`
	Radar     []models.RadarItem `json:"radar"`
}

// Generator produces narratives through the OpenAI chat API.
type Generator struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

func NewGenerator(client *openai.Client, model string, logger *logrus.Logger) *Generator {
	return &Generator{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Generate asks the model for a report grounded on the score, the retrieved
// news and the scraped listing details. Transient API failures are retried
// with backoff before giving up.
func (g *Generator) Generate(ctx context.Context, city, query string, score models.Score, items []news.Item, details *listing.Details) (*Narrative, error) {
	prompt := BuildPrompt(city, query, score, items, details)

	var content string
	err := retryOperation(ctx, g.logger, func() error {
		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       g.model,
			Temperature: 0.2,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: prompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no choices in completion response")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	narrative, err := ParseNarrative(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"positives": len(narrative.Positives),
		"cautions":  len(narrative.Cautions),
		"risks":     len(narrative.Risks),
		"radar":     len(narrative.Radar),
	}).Debug("Narrative generated")

	return narrative, nil
}

// BuildPrompt writes the deterministic PT-BR consultant prompt. The model is
// told to answer with a single JSON object and to stay conservative when the
// evidence is thin.
func BuildPrompt(city, query string, score models.Score, items []news.Item, details *listing.Details) string {
	var newsText strings.Builder
	for _, item := range items {
		fmt.Fprintf(&newsText, "- %s (%s) — fonte: %s — url: %s\n", item.Title, item.DatePublished, item.Source, item.URL)
	}
	if newsText.Len() == 0 {
		newsText.WriteString("(nenhuma notícia retornada pela API)\n")
	}

	breakdownJSON, _ := json.Marshal(score.Breakdown)

	var b strings.Builder
	b.WriteString("Você é um consultor neutro de decisão imobiliária. Gere um relatório objetivo em PT-BR.\n")
	b.WriteString("NÃO invente dados. Se não houver dados suficientes, seja transparente e conservador.\n\n")
	fmt.Fprintf(&b, "Cidade piloto: %s\n", city)
	fmt.Fprintf(&b, "Consulta do usuário: %s\n\n", query)

	if details != nil {
		b.WriteString("Anúncio informado pelo usuário:\n")
		fmt.Fprintf(&b, "- Título: %s\n", details.Title)
		if details.Price != "" {
			fmt.Fprintf(&b, "- Preço anunciado: %s\n", details.Price)
		}
		if details.Description != "" {
			fmt.Fprintf(&b, "- Descrição: %s\n", details.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("Pontuação preliminar (heurística):\n")
	fmt.Fprintf(&b, "- Total: %d / 100\n", score.Total)
	fmt.Fprintf(&b, "- Quebra por bloco: %s\n\n", breakdownJSON)

	b.WriteString("Notícias/eventos do entorno (últimos meses):\n")
	b.WriteString(newsText.String())
	b.WriteString("\n")

	b.WriteString(`Tarefa:
1) Produza um resumo em 1 frase (summary) que explique a conclusão com equilíbrio.
2) Liste 3-5 pontos fortes (positives), 2-4 pontos de atenção (cautions) e 0-3 riscos (risks).
3) Produza até 5 itens de radar (radar). Cada item deve ser baseado nas notícias fornecidas; se não houver notícias, retorne radar vazio [].
   - impact: "positive" | "monitor" | "risk"
   - title: título curto
   - date: data (se disponível)
   - why_it_matters: 1-2 frases objetivas
   - source: nome da fonte (se disponível)

Responda SOMENTE no formato JSON válido, com estas chaves exatas:
{
  "summary": string,
  "positives": string[],
  "cautions": string[],
  "risks": string[],
  "radar": [{"impact":"positive|monitor|risk","title":string,"date":string?,"why_it_matters":string,"source":string?}]
}`)

	return b.String()
}

// ParseNarrative decodes the model output. Models occasionally wrap the JSON
// in prose or code fences, so a failed direct parse falls back to the first
// top-level {...} block.
func ParseNarrative(raw string) (*Narrative, error) {
	var narrative Narrative
	if err := json.Unmarshal([]byte(raw), &narrative); err == nil {
		return &narrative, nil
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last <= first {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	if err := json.Unmarshal([]byte(raw[first:last+1]), &narrative); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model output: %w", err)
	}
	return &narrative, nil
}
