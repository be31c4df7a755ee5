package page

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarimovel/backend/internal/models"
)

type stubClient struct {
	mu    sync.Mutex
	calls int
	fn    func(query string) (*models.AnalyzeResponse, error)
}

func (s *stubClient) Analyze(ctx context.Context, query, city string) (*models.AnalyzeResponse, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(query)
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleResponse(requestID string) *models.AnalyzeResponse {
	return &models.AnalyzeResponse{
		RequestID: requestID,
		Input:     models.AnalyzeInput{Query: "Rua Augusta, 1500", City: "São Paulo"},
		Score: models.Score{
			Total: 69,
			Label: "Boa decisão, com atenção",
			Breakdown: models.Breakdown{
				{Category: "Preço vs Mercado", Points: 18},
			},
		},
		Summary:     "Região consolidada.",
		GeneratedAt: "2024-05-01T12:00:00Z",
	}
}

func TestController_EmptyQueryDoesNotCallService(t *testing.T) {
	client := &stubClient{fn: func(string) (*models.AnalyzeResponse, error) {
		t.Fatal("service must not be called for empty query")
		return nil, nil
	}}
	controller := NewController(client, "São Paulo")

	for _, query := range []string{"", "   ", "\t\n"} {
		controller.SetQuery(query)
		controller.Submit(context.Background())

		state := controller.State()
		assert.Equal(t, EmptyQueryMessage, state.Error)
		assert.False(t, state.Loading)
		assert.Nil(t, state.Data)
	}

	assert.Equal(t, 0, client.callCount())
}

func TestController_SuccessStoresResponse(t *testing.T) {
	want := sampleResponse("abc123def456")
	client := &stubClient{fn: func(string) (*models.AnalyzeResponse, error) {
		return want, nil
	}}
	controller := NewController(client, "São Paulo")

	controller.SetQuery("  Rua Augusta, 1500  ")
	controller.Submit(context.Background())

	state := controller.State()
	require.NotNil(t, state.Data)
	assert.Equal(t, want, state.Data)
	assert.Empty(t, state.Error)
	assert.False(t, state.Loading)
	assert.Equal(t, 1, client.callCount())
}

func TestController_ErrorStoresMessage(t *testing.T) {
	client := &stubClient{fn: func(string) (*models.AnalyzeResponse, error) {
		return nil, errors.New("Bad city")
	}}
	controller := NewController(client, "São Paulo")

	controller.SetQuery("Rua Augusta, 1500")
	controller.Submit(context.Background())

	state := controller.State()
	assert.Equal(t, "Bad city", state.Error)
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)
}

func TestController_SubmissionClearsPriorState(t *testing.T) {
	response := sampleResponse("abc123def456")
	var fail bool
	client := &stubClient{fn: func(string) (*models.AnalyzeResponse, error) {
		if fail {
			return nil, errors.New("upstream exploded")
		}
		return response, nil
	}}
	controller := NewController(client, "São Paulo")

	controller.SetQuery("Rua Augusta, 1500")
	controller.Submit(context.Background())
	require.NotNil(t, controller.State().Data)

	fail = true
	controller.Submit(context.Background())
	state := controller.State()
	assert.Nil(t, state.Data, "new submission must discard the prior result")
	assert.Equal(t, "upstream exploded", state.Error)

	fail = false
	controller.Submit(context.Background())
	state = controller.State()
	assert.Empty(t, state.Error, "a successful submission clears the prior error")
	assert.Equal(t, response, state.Data)
}

func TestController_LoadingOnlyDuringFlight(t *testing.T) {
	release := make(chan struct{})
	client := &stubClient{fn: func(string) (*models.AnalyzeResponse, error) {
		<-release
		return sampleResponse("abc123def456"), nil
	}}
	controller := NewController(client, "São Paulo")
	controller.SetQuery("Rua Augusta, 1500")

	assert.False(t, controller.State().Loading)

	done := make(chan struct{})
	go func() {
		controller.Submit(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return controller.State().Loading
	}, time.Second, 5*time.Millisecond, "loading must be set while the call is in flight")

	close(release)
	<-done

	state := controller.State()
	assert.False(t, state.Loading)
	assert.NotNil(t, state.Data)
}

func TestController_StaleResponseIsDropped(t *testing.T) {
	older := sampleResponse("older0000000")
	newer := sampleResponse("newer0000000")

	firstInFlight := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	client := &stubClient{}
	client.fn = func(string) (*models.AnalyzeResponse, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstInFlight)
			<-release
			return older, nil
		}
		return newer, nil
	}
	controller := NewController(client, "São Paulo")
	controller.SetQuery("Rua Augusta, 1500")

	done := make(chan struct{})
	go func() {
		controller.Submit(context.Background())
		close(done)
	}()
	<-firstInFlight

	// Second submission completes while the first is still pending.
	controller.Submit(context.Background())
	require.Equal(t, newer, controller.State().Data)

	close(release)
	<-done

	state := controller.State()
	assert.Equal(t, newer, state.Data, "the older response must not overwrite the newer one")
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
}
