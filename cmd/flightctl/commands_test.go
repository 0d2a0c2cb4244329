package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/flightbook/api"
	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/Domenick1991/flightbook/internal/ui"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedFlights = []domain.Flight{
	{ID: "f1", Origin: "NYC", Destination: "LAX", DepartureTime: "May 15 08:00", ArrivalTime: "May 15 11:00", Price: 299.99},
	{ID: "f2", Origin: "SVO", Destination: "LED", DepartureTime: "Jan 10 09:00", ArrivalTime: "Jan 10 10:30", Price: 50},
}

// setupTestServer starts a flights API over a seeded file store and points
// the CLI at it.
func setupTestServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ui.SetColorEnabled(false)

	path := filepath.Join(t.TempDir(), "flights.json")
	raw, err := json.MarshalIndent(seedFlights, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	log, _ := test.NewNullLogger()
	repo := repository.NewFileFlightRepository(path, repository.WithLogger(log))
	srv := httptest.NewServer(api.NewRouter(flights.NewFlightService(repo, flights.WithLogger(log)), log))
	t.Cleanup(srv.Close)

	serverURL = srv.URL
	addDraft = ui.Draft{}
	updateDraft = ui.Draft{}
	return path
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func readStore(t *testing.T, path string) []domain.Flight {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored []domain.Flight
	require.NoError(t, json.Unmarshal(raw, &stored))
	return stored
}

func TestListCommand(t *testing.T) {
	setupTestServer(t)
	cmd, out := newTestCmd()

	require.NoError(t, runList(cmd, nil))

	assert.Contains(t, out.String(), "Available Flights")
	assert.Contains(t, out.String(), "1.  NYC to LAX")
	assert.Contains(t, out.String(), "$299.99")
	assert.Contains(t, out.String(), "2.  SVO to LED")
	assert.Contains(t, out.String(), "$50.00")
}

func TestListCommand_ServerDown(t *testing.T) {
	setupTestServer(t)
	srv := httptest.NewServer(nil)
	serverURL = srv.URL
	srv.Close()
	cmd, out := newTestCmd()

	err := runList(cmd, nil)

	assert.True(t, errors.Is(err, errShown))
	assert.Contains(t, out.String(), "Error: ")
}

func TestShowCommand(t *testing.T) {
	setupTestServer(t)
	cmd, out := newTestCmd()

	require.NoError(t, runShow(cmd, []string{"f2"}))

	assert.Contains(t, out.String(), "SVO → LED")
	assert.Contains(t, out.String(), "Flight ID:  f2")
	assert.Contains(t, out.String(), "$50.00")
}

func TestShowCommand_NotFound(t *testing.T) {
	setupTestServer(t)
	cmd, _ := newTestCmd()

	err := runShow(cmd, []string{"nope"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch flight")
	assert.Contains(t, err.Error(), "Flight not found")
}

func TestAddCommand(t *testing.T) {
	path := setupTestServer(t)
	cmd, out := newTestCmd()
	addDraft = ui.Draft{
		Origin:        "CDG",
		Destination:   "FCO",
		DepartureTime: "2024-03-01T07:00:00Z",
		ArrivalTime:   "2024-03-01T09:00:00Z",
		Price:         "120.5",
	}

	require.NoError(t, runAdd(cmd, nil))

	stored := readStore(t, path)
	require.Len(t, stored, 3)
	added := stored[2]
	assert.Equal(t, "CDG", added.Origin)
	assert.Equal(t, 120.5, added.Price)
	assert.Equal(t, "Created flight "+added.ID+"\n", out.String())
}

func TestAddCommand_Rejected(t *testing.T) {
	path := setupTestServer(t)
	cmd, _ := newTestCmd()
	addDraft = ui.Draft{Origin: "CDG", Price: "10"}

	err := runAdd(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to create flight")
	assert.Len(t, readStore(t, path), 2)
}

func TestAddCommand_BadPrice(t *testing.T) {
	path := setupTestServer(t)
	cmd, _ := newTestCmd()
	addDraft = ui.Draft{Origin: "CDG", Destination: "FCO", Price: "cheap"}

	err := runAdd(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
	assert.Len(t, readStore(t, path), 2)
}

func TestUpdateCommand(t *testing.T) {
	path := setupTestServer(t)
	cmd, out := newTestCmd()
	updateDraft = ui.Draft{Destination: "SFO", Price: "199"}

	require.NoError(t, runUpdate(cmd, []string{"f1"}))

	stored := readStore(t, path)
	want := seedFlights[0]
	want.Destination = "SFO"
	want.Price = 199
	assert.Equal(t, []domain.Flight{want, seedFlights[1]}, stored)
	assert.Contains(t, out.String(), "NYC → SFO")
}

func TestUpdateCommand_Errors(t *testing.T) {
	setupTestServer(t)
	cmd, _ := newTestCmd()

	assert.Error(t, runUpdate(cmd, []string{"f1"}))

	updateDraft = ui.Draft{Price: "free"}
	assert.Error(t, runUpdate(cmd, []string{"f1"}))

	updateDraft = ui.Draft{Price: "10"}
	err := runUpdate(cmd, []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch flight")
}

func TestDeleteCommand(t *testing.T) {
	path := setupTestServer(t)
	cmd, out := newTestCmd()

	require.NoError(t, runDelete(cmd, []string{"f1"}))

	assert.Equal(t, []domain.Flight{seedFlights[1]}, readStore(t, path))
	assert.Equal(t, "Deleted flight f1\n", out.String())

	err := runDelete(cmd, []string{"f1"})
	require.Error(t, err)
	assert.Len(t, readStore(t, path), 1)
}
