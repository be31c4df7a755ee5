package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarimovel/backend/internal/listing"
	"github.com/radarimovel/backend/internal/news"
	"github.com/radarimovel/backend/internal/scoring"
	"github.com/radarimovel/backend/pkg/utils"
)

const narrativeJSON = `{
	"summary": "Região consolidada com obras próximas.",
	"positives": ["Metrô a 400m"],
	"cautions": ["Obras na via principal"],
	"risks": [],
	"radar": [{"impact":"monitor","title":"Obras na via","why_it_matters":"Trânsito por meses."}]
}`

func TestParseNarrative_DirectJSON(t *testing.T) {
	narrative, err := ParseNarrative(narrativeJSON)
	require.NoError(t, err)

	assert.Equal(t, "Região consolidada com obras próximas.", narrative.Summary)
	assert.Equal(t, []string{"Metrô a 400m"}, narrative.Positives)
	require.Len(t, narrative.Radar, 1)
	assert.Equal(t, "monitor", narrative.Radar[0].Impact)
}

func TestParseNarrative_JSONWrappedInProse(t *testing.T) {
	raw := "Claro! Segue o relatório:\n```json\n" + narrativeJSON + "\n```\nEspero ter ajudado."

	narrative, err := ParseNarrative(raw)
	require.NoError(t, err)
	assert.Equal(t, "Região consolidada com obras próximas.", narrative.Summary)
}

func TestParseNarrative_NoJSON(t *testing.T) {
	_, err := ParseNarrative("não consegui gerar o relatório")
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	score := scoring.Baseline()
	items := []news.Item{
		{Title: "Nova linha de metrô", DatePublished: "2024-04-01", Source: "Diário SP", URL: "https://example.com/metro"},
	}
	details := &listing.Details{Title: "Apto 2 dorm", Price: "R$ 550.000"}

	prompt := BuildPrompt("São Paulo", "Rua Augusta, 1500", score, items, details)

	assert.Contains(t, prompt, "Cidade piloto: São Paulo")
	assert.Contains(t, prompt, "Consulta do usuário: Rua Augusta, 1500")
	assert.Contains(t, prompt, "Nova linha de metrô")
	assert.Contains(t, prompt, "Preço anunciado: R$ 550.000")
	assert.Contains(t, prompt, "Total: 69 / 100")
	assert.Contains(t, prompt, "SOMENTE no formato JSON")
	assert.NotContains(t, prompt, "nenhuma notícia retornada")
}

func TestBuildPrompt_NoNewsNoListing(t *testing.T) {
	prompt := BuildPrompt("São Paulo", "Rua Augusta, 1500", scoring.Baseline(), nil, nil)

	assert.Contains(t, prompt, "(nenhuma notícia retornada pela API)")
	assert.NotContains(t, prompt, "Anúncio informado pelo usuário")
}

func TestGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": ` + quoteJSON(narrativeJSON) + `}}]
		}`))
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL
	client := openai.NewClientWithConfig(config)

	generator := NewGenerator(client, "gpt-4o-mini", utils.GetLogger())

	narrative, err := generator.Generate(context.Background(), "São Paulo", "Rua Augusta, 1500", scoring.Baseline(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Região consolidada com obras próximas.", narrative.Summary)
	require.Len(t, narrative.Radar, 1)
}

// quoteJSON embeds a JSON document as a JSON string literal.
func quoteJSON(doc string) string {
	quoted, _ := json.Marshal(doc)
	return string(quoted)
}
