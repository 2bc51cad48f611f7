package inspection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchRecords(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, recordsPath, r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_ = json.NewEncoder(w).Encode([]Record{
			{ID: "1", Shift: "A", ActualSpecification: "10.02"},
			{ID: "2", Shift: "A", ActualSpecification: "10.05"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	records, err := client.FetchRecords(context.Background(), Filter{
		From:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Shift:     "A",
		Material:  "EN8",
		Operation: "Turning",
		Gauge:     "Micrometer",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "10.02", records[0].ActualSpecification)

	assert.Equal(t, "2024-01-01", gotQuery["from_date"])
	assert.Equal(t, "2024-01-31", gotQuery["to_date"])
	assert.Equal(t, "A", gotQuery["shift"])
	assert.Equal(t, "EN8", gotQuery["material"])
	assert.Equal(t, "Turning", gotQuery["operation"])
	assert.Equal(t, "Micrometer", gotQuery["gauge"])
}

func TestClient_FetchRecords_OmitsEmptyFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	records, err := client.FetchRecords(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_FetchRecords_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.FetchRecords(context.Background(), Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}
