package page

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/radarimovel/backend/internal/models"
)

// EmptyRadarMessage replaces the radar list when no signal was found.
const EmptyRadarMessage = "Nenhum item relevante no radar."

const absentValue = "—"

// Renderer draws the page from a state snapshot.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, state State) error {
	return r.tmpl.Execute(w, buildView(state))
}

type radarView struct {
	GlyphClass   string
	Title        string
	Date         string
	WhyItMatters string
	Source       string
}

type resultView struct {
	City            string
	GeneratedAt     string
	Query           string
	Total           int
	Badge           Badge
	PlaceScore      string
	ConfidenceValue string
	Confidence      Tier
	ConfidenceWidth int
	Summary         string
	Breakdown       []string
	Radar           []radarView
	Positives       []string
	Cautions        []string
	Risks           []string
}

type pageView struct {
	Query             string
	Loading           bool
	Error             string
	Result            *resultView
	EmptyRadarMessage string
}

func buildView(state State) pageView {
	view := pageView{
		Query:             state.Query,
		Loading:           state.Loading,
		Error:             state.Error,
		EmptyRadarMessage: EmptyRadarMessage,
	}

	// State priority: error banner, then loading, then results; anything
	// else is the idle panel.
	if state.Error != "" || state.Loading || state.Data == nil {
		return view
	}

	data := state.Data
	result := &resultView{
		City:            data.Input.City,
		GeneratedAt:     formatGeneratedAt(data.GeneratedAt),
		Query:           data.Input.Query,
		Total:           data.Score.Total,
		Badge:           ScoreBadge(data.Score),
		PlaceScore:      formatOptional(data.Score.PlaceScore),
		ConfidenceValue: formatOptional(data.Score.Confidence),
		Confidence:      ConfidenceTier(data.Score.Confidence),
		ConfidenceWidth: ConfidenceWidth(data.Score.Confidence),
		Summary:         data.Summary,
		Breakdown:       formatBreakdown(data.Score.Breakdown),
		Radar:           buildRadarViews(data.Radar),
		Positives:       data.Positives,
		Cautions:        data.Cautions,
		Risks:           data.Risks,
	}

	view.Result = result
	return view
}

// FormatBreakdownEntry renders one breakdown line the way the report lists
// them.
func FormatBreakdownEntry(entry models.BreakdownEntry) string {
	return fmt.Sprintf("%s: %d pts", entry.Category, entry.Points)
}

func formatBreakdown(breakdown models.Breakdown) []string {
	lines := make([]string, len(breakdown))
	for i, entry := range breakdown {
		lines[i] = FormatBreakdownEntry(entry)
	}
	return lines
}

func buildRadarViews(items []models.RadarItem) []radarView {
	views := make([]radarView, len(items))
	for i, item := range items {
		views[i] = radarView{
			GlyphClass:   glyphClass(item.Impact),
			Title:        item.Title,
			Date:         item.Date,
			WhyItMatters: item.WhyItMatters,
			Source:       item.Source,
		}
	}
	return views
}

func glyphClass(impact string) string {
	switch impact {
	case models.ImpactRisk:
		return "dot-red"
	case models.ImpactMonitor:
		return "dot-yellow"
	case models.ImpactPositive:
		return "dot-green"
	default:
		return "dot-gray"
	}
}

func formatOptional(value *int) string {
	if value == nil {
		return absentValue
	}
	return fmt.Sprintf("%d", *value)
}

// formatGeneratedAt parses the timestamp for display only; an unparseable
// value is shown as-is.
func formatGeneratedAt(generatedAt string) string {
	t, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return generatedAt
	}
	return t.Format("02/01/2006 15:04")
}

const pageTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Radar Imóvel</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #f5f6f8; color: #1c2430; }
  .wrap { max-width: 880px; margin: 0 auto; padding: 24px 16px; }
  form { display: flex; gap: 8px; margin-bottom: 24px; }
  input[type=text] { flex: 1; padding: 10px 12px; border: 1px solid #cbd2dc; border-radius: 8px; }
  button { padding: 10px 18px; border: 0; border-radius: 8px; background: #0d7a6f; color: #fff; cursor: pointer; }
  button[disabled] { background: #9aa5b1; cursor: default; }
  .banner-error { background: #fbe9e7; border: 1px solid #e57368; color: #8c2a20; padding: 12px 16px; border-radius: 8px; }
  .panel { background: #fff; border: 1px solid #e2e6ec; border-radius: 12px; padding: 20px; margin-bottom: 16px; }
  .muted { color: #66707d; }
  .score-total { font-size: 48px; font-weight: 700; }
  .pill { display: inline-block; padding: 4px 12px; border-radius: 999px; font-size: 14px; }
  .pill-teal { background: #d4efec; color: #0d7a6f; }
  .pill-amber { background: #fdf0d4; color: #9a6b00; }
  .pill-gray { background: #e8ebef; color: #55606c; }
  .pill-red { background: #fbe9e7; color: #b23327; }
  .ministats { display: flex; gap: 24px; margin: 12px 0; }
  .bar { height: 6px; background: #e8ebef; border-radius: 3px; overflow: hidden; width: 140px; }
  .bar > span { display: block; height: 100%; background: #0d7a6f; }
  .dot { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 8px; }
  .dot-red { background: #d64533; }
  .dot-yellow { background: #e3a008; }
  .dot-green { background: #1d9a6c; }
  .dot-gray { background: #9aa5b1; }
  .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 16px; }
  ul { margin: 8px 0; padding-left: 20px; }
</style>
</head>
<body>
<div class="wrap">
  <h1>Radar Imóvel</h1>
  <p class="muted">Cole um endereço ou link de anúncio e receba uma análise da região.</p>

  <form method="post" action="/analisar">
    <input type="text" name="query" value="{{.Query}}" placeholder="Endereço ou link do anúncio">
    <button type="submit"{{if .Loading}} disabled{{end}}>Analisar</button>
  </form>

{{if .Error}}
  <div class="banner-error">{{.Error}}</div>
{{else if .Loading}}
  <div class="panel">
    <p>Analisando… isso pode levar alguns segundos.</p>
  </div>
{{else if .Result}}
{{with .Result}}
  <div class="panel">
    <p class="muted">{{.City}} · {{.GeneratedAt}}</p>
    <p>{{.Query}}</p>
    <div class="score-total">{{.Total}}</div>
    <span class="pill pill-{{.Badge.Tone}}">{{.Badge.Text}}</span>
    <div class="ministats">
      <div>
        <p class="muted">Nota do local</p>
        <p>{{.PlaceScore}}</p>
      </div>
      <div>
        <p class="muted">Confiança: {{.ConfidenceValue}} ({{.Confidence.Text}})</p>
        <div class="bar"><span style="width: {{.ConfidenceWidth}}%"></span></div>
      </div>
    </div>
    <p>{{.Summary}}</p>
  </div>

  <div class="panel">
    <h2>Quebra da pontuação</h2>
    <ul>
    {{range .Breakdown}}
      <li>{{.}}</li>
    {{end}}
    </ul>
  </div>

  <div class="panel">
    <h2>Radar do entorno</h2>
    {{if .Radar}}
    <ul>
    {{range .Radar}}
      <li>
        <span class="dot {{.GlyphClass}}"></span><strong>{{.Title}}</strong>
        {{if .Date}}<span class="muted"> · {{.Date}}</span>{{end}}
        <p>{{.WhyItMatters}}</p>
        {{if .Source}}<p class="muted">Fonte: {{.Source}}</p>{{end}}
      </li>
    {{end}}
    </ul>
    {{else}}
    <p class="muted">{{$.EmptyRadarMessage}}</p>
    {{end}}
  </div>

  <div class="panel">
    <h2>Síntese</h2>
    <div class="grid">
      <div>
        <h3>Pontos fortes</h3>
        {{if .Positives}}<ul>{{range .Positives}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="muted">—</p>{{end}}
      </div>
      <div>
        <h3>Atenção</h3>
        {{if .Cautions}}<ul>{{range .Cautions}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="muted">—</p>{{end}}
      </div>
      <div>
        <h3>Riscos</h3>
        {{if .Risks}}<ul>{{range .Risks}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="muted">—</p>{{end}}
      </div>
    </div>
  </div>
{{end}}
{{else}}
  <div class="panel">
    <p class="muted">Nenhuma análise ainda. Informe um endereço acima para começar.</p>
  </div>
{{end}}
</div>
</body>
</html>
`
