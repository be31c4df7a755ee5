package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarimovel/backend/internal/models"
)

func renderToString(t *testing.T, state State) string {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, state))
	return buf.String()
}

func TestRender_IdleState(t *testing.T) {
	html := renderToString(t, State{})

	assert.Contains(t, html, "Nenhuma análise ainda")
	assert.NotContains(t, html, "banner-error")
	assert.NotContains(t, html, "Analisando")
}

func TestRender_LoadingState(t *testing.T) {
	html := renderToString(t, State{Query: "Rua Augusta", Loading: true})

	assert.Contains(t, html, "Analisando")
	assert.Contains(t, html, "disabled")
	assert.NotContains(t, html, "banner-error")
}

func TestRender_ErrorStateWinsOverData(t *testing.T) {
	html := renderToString(t, State{
		Error: "Bad city",
		Data:  sampleResponse("abc123def456"),
	})

	assert.Contains(t, html, "banner-error")
	assert.Contains(t, html, "Bad city")
	assert.NotContains(t, html, "Quebra da pontuação")
}

func TestRender_BreakdownPreservesOrder(t *testing.T) {
	data := sampleResponse("abc123def456")
	data.Score.Breakdown = models.Breakdown{
		{Category: "Preço vs Mercado", Points: 18},
		{Category: "Segurança", Points: 15},
		{Category: "Radar do Entorno", Points: 12},
	}

	html := renderToString(t, State{Data: data})

	first := strings.Index(html, "Preço vs Mercado: 18 pts")
	second := strings.Index(html, "Segurança: 15 pts")
	third := strings.Index(html, "Radar do Entorno: 12 pts")
	require.True(t, first >= 0 && second >= 0 && third >= 0, "all breakdown lines must render")
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestRender_EmptyRadarShowsPlaceholder(t *testing.T) {
	data := sampleResponse("abc123def456")
	data.Radar = nil

	html := renderToString(t, State{Data: data})

	assert.Contains(t, html, EmptyRadarMessage)
}

func TestRender_RadarItems(t *testing.T) {
	data := sampleResponse("abc123def456")
	data.Radar = []models.RadarItem{
		{Impact: models.ImpactRisk, Title: "Obras na via", Date: "2024-04-01", WhyItMatters: "Trânsito por meses.", Source: "Diário SP"},
		{Impact: models.ImpactPositive, Title: "Nova estação de metrô", WhyItMatters: "Valorização esperada."},
	}

	html := renderToString(t, State{Data: data})

	assert.Contains(t, html, "dot-red")
	assert.Contains(t, html, "dot-green")
	assert.Contains(t, html, "Obras na via")
	assert.Contains(t, html, "Fonte: Diário SP")
	assert.NotContains(t, html, EmptyRadarMessage)
}

func TestRender_OptionalFieldsShowDash(t *testing.T) {
	data := sampleResponse("abc123def456")
	data.Score.PlaceScore = nil
	data.Score.Confidence = nil
	data.Positives = nil

	html := renderToString(t, State{Data: data})

	assert.Contains(t, html, "—")
	assert.Contains(t, html, "width: 0%")
}

func TestRender_ConfidenceBar(t *testing.T) {
	confidence := 72
	placeScore := 73
	data := sampleResponse("abc123def456")
	data.Score.Confidence = &confidence
	data.Score.PlaceScore = &placeScore

	html := renderToString(t, State{Data: data})

	assert.Contains(t, html, "width: 72%")
	assert.Contains(t, html, "Média")
	assert.Contains(t, html, "73")
}
