package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ans-dados/ans-dados/internal/models"
	"github.com/ans-dados/ans-dados/internal/search"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(query string, limit int) []search.Hit {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]search.Hit)
}

func TestSearchService_Search(t *testing.T) {
	t.Run("should return scored results", func(t *testing.T) {
		index := new(MockSearcher)
		service := NewSearchService(index)

		expected := []search.Hit{
			{Score: 9, Operator: models.Operator{RegistroANS: "123456", NomeFantasia: "AMIL SAUDE"}},
		}
		index.On("Search", "amil", 50).Return(expected).Once()

		req := httptest.NewRequest("GET", "/search?query=amil", nil)
		rr := httptest.NewRecorder()

		service.Search(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Query   string       `json:"query"`
			Count   int          `json:"count"`
			Results []search.Hit `json:"results"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "amil", resp.Query)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, expected, resp.Results)
		index.AssertExpectations(t)
	})

	t.Run("should require a query", func(t *testing.T) {
		service := NewSearchService(new(MockSearcher))

		req := httptest.NewRequest("GET", "/search", nil)
		rr := httptest.NewRecorder()

		service.Search(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should pass a custom limit through", func(t *testing.T) {
		index := new(MockSearcher)
		service := NewSearchService(index)
		index.On("Search", "amil", 3).Return(nil).Once()

		req := httptest.NewRequest("GET", "/search?query=amil&limit=3", nil)
		rr := httptest.NewRecorder()

		service.Search(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Count   int          `json:"count"`
			Results []search.Hit `json:"results"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Zero(t, resp.Count)
		assert.NotNil(t, resp.Results, "empty result set stays a JSON array")
		index.AssertExpectations(t)
	})

	t.Run("should reject limits outside 1..200", func(t *testing.T) {
		service := NewSearchService(new(MockSearcher))

		for _, limit := range []string{"0", "201", "-5", "abc"} {
			req := httptest.NewRequest("GET", "/search?query=amil&limit="+limit, nil)
			rr := httptest.NewRecorder()

			service.Search(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code, "limit=%s", limit)
		}
	})
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
