package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/flightbook/api"
	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nycToLax = domain.FlightInput{
	Origin:        "NYC",
	Destination:   "LAX",
	DepartureTime: "2023-05-15T08:00:00Z",
	ArrivalTime:   "2023-05-15T11:00:00Z",
	Price:         299.99,
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	repo := repository.NewFileFlightRepository(filepath.Join(t.TempDir(), "flights.json"), repository.WithLogger(log))
	srv := httptest.NewServer(api.NewRouter(flights.NewFlightService(repo, flights.WithLogger(log)), log))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPI_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	client := NewAPI(srv.URL + "/")
	ctx := context.Background()

	list, err := client.ListFlights(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := client.CreateFlight(ctx, nycToLax)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, nycToLax, created.Input())

	got, err := client.GetFlight(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	change := *created
	change.Price = 199
	updated, err := client.UpdateFlight(ctx, change)
	require.NoError(t, err)
	assert.Equal(t, change, *updated)

	require.NoError(t, client.DeleteFlight(ctx, created.ID))

	list, err = client.ListFlights(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAPI_ErrorStatus(t *testing.T) {
	srv := newTestServer(t)
	client := NewAPI(srv.URL)

	_, err := client.GetFlight(context.Background(), "unknown-id")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Flight not found", apiErr.Message)
	assert.Equal(t, "flights api: status 404: Flight not found", err.Error())
}

func TestAPI_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAPI(url).ListFlights(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewAPI_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewAPI("").baseURL)
}

func TestAPI_IDIsPathEscaped(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	client := NewAPI(srv.URL)
	ctx := context.Background()

	_, _ = client.GetFlight(ctx, "a/b?c")
	_ = client.DeleteFlight(ctx, "a/b?c")
	_, _ = client.UpdateFlight(ctx, domain.Flight{ID: "x y"})

	assert.Equal(t, []string{"/flights/a%2Fb%3Fc", "/flights/a%2Fb%3Fc", "/flights/x%20y"}, paths)
}

func TestAPI_QueryLikeIDDoesNotReachOtherFlight(t *testing.T) {
	srv := newTestServer(t)
	client := NewAPI(srv.URL)
	ctx := context.Background()

	created, err := client.CreateFlight(ctx, nycToLax)
	require.NoError(t, err)

	_, err = client.GetFlight(ctx, created.ID+"?x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	err = client.DeleteFlight(ctx, created.ID+"?x")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	list, err := client.ListFlights(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Flight{*created}, list)
}
