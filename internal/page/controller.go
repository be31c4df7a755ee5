package page

import (
	"context"
	"strings"
	"sync"

	"github.com/radarimovel/backend/internal/models"
)

// User-facing messages for the two non-server error cases.
const (
	EmptyQueryMessage   = "Informe um endereço ou link de anúncio."
	GenericErrorMessage = "Não foi possível concluir a análise. Tente novamente."
)

// State is a snapshot of the page at one point in time. Exactly one of the
// visual states applies, chosen in priority order: Error, Loading, idle
// (neither Data nor Loading), results (Data set).
type State struct {
	Query   string
	Loading bool
	Data    *models.AnalyzeResponse
	Error   string
}

// Controller owns the page state and orchestrates the single analyze call.
// Each submission carries a monotonic sequence number; only the latest
// issued submission may apply its outcome, so a slow older response can
// never overwrite a newer one.
type Controller struct {
	client AnalyzeClient
	city   string

	mu      sync.Mutex
	query   string
	loading bool
	data    *models.AnalyzeResponse
	err     string
	seq     uint64
}

func NewController(client AnalyzeClient, city string) *Controller {
	return &Controller{
		client: client,
		city:   city,
	}
}

// SetQuery updates the input field value.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Query:   c.query,
		Loading: c.loading,
		Data:    c.data,
		Error:   c.err,
	}
}

// Submit runs one analysis round trip and applies its outcome to the state.
// A whitespace-only query sets the fixed validation error without any
// network call. Prior data and error are cleared before the call, so a new
// submission immediately hides stale results.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	query := strings.TrimSpace(c.query)
	if query == "" {
		c.err = EmptyQueryMessage
		c.mu.Unlock()
		return
	}

	c.data = nil
	c.err = ""
	c.loading = true
	c.seq++
	seq := c.seq
	city := c.city
	c.mu.Unlock()

	data, err := c.client.Analyze(ctx, query, city)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer submission was issued while this one was in flight;
		// its outcome is the authoritative one.
		return
	}
	c.loading = false
	if err != nil {
		message := err.Error()
		if message == "" {
			message = GenericErrorMessage
		}
		c.err = message
		return
	}
	c.data = data
}
