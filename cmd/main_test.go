package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = config.DriverMemory
	cfg.Metrics.Enabled = false
	cfg.Booking.RejectPast = false

	log := logger.NewWithWriter(io.Discard, logger.LevelError)

	store, err := openStorage(context.Background(), cfg, log, nil)
	require.NoError(t, err)

	router, err := newRouter(cfg, log, store, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func createReservation(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/v1/reservations", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getSlots(t *testing.T, srv *httptest.Server, date string) getAvailabilityHandler.AvailabilityResponse {
	t.Helper()

	resp, err := http.Get(srv.URL + "/api/v1/slots?date=" + date)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body getAvailabilityHandler.AvailabilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAPI_BookingScenario(t *testing.T) {
	srv := newTestServer(t)

	before := getSlots(t, srv, "2024-06-01")
	assert.Len(t, before.Slots, 26)
	assert.Equal(t, 26, before.FreeCount)

	resp := createReservation(t, srv,
		`{"clientName":"Anna","phone":"0914000000","service":"Fade","date":"2024-06-01","time":"10:00"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	var created models.ReservationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "2024-06-01T10:00", created.ScheduledAt)

	after := getSlots(t, srv, "2024-06-01")
	assert.Equal(t, 25, after.FreeCount)
	for _, s := range after.Slots {
		if s.Time == "10:00" {
			assert.Equal(t, string(domain.SlotReserved), s.Status)
		}
	}

	conflict := createReservation(t, srv,
		`{"clientName":"Binh","phone":"0914000001","service":"Shave","date":"2024-06-01","time":"10:00"}`)
	assert.Equal(t, http.StatusConflict, conflict.StatusCode)

	var errBody handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(conflict.Body).Decode(&errBody))
	assert.Equal(t, handlers.KindConflict, errBody.Kind)

	listResp, err := http.Get(srv.URL + "/api/v1/reservations")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var list models.ReservationListResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list.Reservations, 1)
	assert.Equal(t, "Anna", list.Reservations[0].ClientName)
}

func TestAPI_ValidationAndRouting(t *testing.T) {
	srv := newTestServer(t)

	resp := createReservation(t, srv, `{"clientName":"","phone":"1","service":"Fade","date":"2024-06-01","time":"10:00"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	slots, err := http.Get(srv.URL + "/api/v1/slots")
	require.NoError(t, err)
	slots.Body.Close()
	assert.Equal(t, http.StatusBadRequest, slots.StatusCode)

	health, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	missing, err := http.Get(srv.URL + "/api/v1/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestPrintSlots(t *testing.T) {
	var buf bytes.Buffer

	printSlots(&buf, &getAvailabilityUC.Response{
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SlotMinutes: 30,
		Slots: []domain.Slot{
			{Time: "09:00", Status: domain.SlotFree},
			{Time: "09:30", Status: domain.SlotReserved},
		},
		FreeCount:     1,
		ReservedCount: 1,
	})

	assert.Equal(t, "2024-06-01  (30 min slots, 1 free, 1 reserved)\n  09:00  free\n  09:30  reserved\n", buf.String())
}
