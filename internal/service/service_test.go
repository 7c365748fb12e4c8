package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/locate"
	"github.com/mfreitas/clima-api/internal/model"
	"github.com/mfreitas/clima-api/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockGeocoder implements the Geocoder interface
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Search(ctx context.Context, query string) ([]model.Suggestion, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Suggestion), args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lon float64) (*model.Address, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

// MockOrchestrator implements the Orchestrator interface
type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) Submit(ctx context.Context, location, source string) (*model.Snapshot, error) {
	args := m.Called(ctx, location, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Snapshot), args.Error(1)
}

// MockHistory implements the HistoryReader interface
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Recent(ctx context.Context, limit int) ([]model.LookupRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LookupRecord), args.Error(1)
}

func newService(geocoder Geocoder, source position.Source, orch Orchestrator, hist HistoryReader) *Service {
	cfg := config.SuggestConfig{MinQueryLen: 3}
	return NewService(geocoder, source, orch, hist, cfg, nil, zap.NewNop())
}

func TestService_Suggest(t *testing.T) {
	t.Run("short query skips the upstream call", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		svc := newService(geocoder, nil, new(MockOrchestrator), nil)

		results, err := svc.Suggest(context.Background(), "  Cu ")
		require.NoError(t, err)
		assert.Empty(t, results)
		geocoder.AssertNotCalled(t, "Search")
	})

	t.Run("filters results lacking city and town", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Search", mock.Anything, "Paraná").Return([]model.Suggestion{
			{PlaceID: 1, Address: model.Address{City: "Curitiba", State: "Paraná"}},
			{PlaceID: 2, Address: model.Address{State: "Paraná"}},
		}, nil)
		svc := newService(geocoder, nil, new(MockOrchestrator), nil)

		results, err := svc.Suggest(context.Background(), "Paraná")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(1), results[0].PlaceID)
	})

	t.Run("upstream failure is silent", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Search", mock.Anything, "Curitiba").Return(nil, errors.New("boom"))
		svc := newService(geocoder, nil, new(MockOrchestrator), nil)

		results, err := svc.Suggest(context.Background(), "Curitiba")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestService_Locate(t *testing.T) {
	coord := model.Coordinate{Lat: -25.4284, Lon: -49.2733}

	t.Run("resolves and fetches weather", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Reverse", mock.Anything, coord.Lat, coord.Lon).
			Return(&model.Address{City: "Curitiba", State: "Paraná"}, nil)

		orch := new(MockOrchestrator)
		orch.On("Submit", mock.Anything, "Curitiba, Paraná, Brasil", "geolocation").
			Return(&model.Snapshot{Temperature: 18}, nil)

		svc := newService(geocoder, position.Static{Coord: coord}, orch, nil)

		resp, err := svc.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Curitiba, Paraná, Brasil", resp.Location)
		assert.Equal(t, coord, resp.Request)
		require.NotNil(t, resp.Weather)
		assert.Equal(t, 18, resp.Weather.Temperature)
		orch.AssertExpectations(t)
	})

	t.Run("weather failure does not undo the resolution", func(t *testing.T) {
		geocoder := new(MockGeocoder)
		geocoder.On("Reverse", mock.Anything, coord.Lat, coord.Lon).
			Return(&model.Address{City: "Curitiba", State: "Paraná"}, nil)

		orch := new(MockOrchestrator)
		orch.On("Submit", mock.Anything, "Curitiba, Paraná, Brasil", "geolocation").
			Return(nil, errors.New("Não foi possível carregar a previsão"))

		svc := newService(geocoder, position.Static{Coord: coord}, orch, nil)

		resp, err := svc.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Curitiba, Paraná, Brasil", resp.Location)
		assert.Nil(t, resp.Weather)
		assert.Equal(t, "Não foi possível carregar a previsão", resp.WeatherError)
	})

	t.Run("no position source fails with the capability message", func(t *testing.T) {
		svc := newService(new(MockGeocoder), nil, new(MockOrchestrator), nil)

		_, err := svc.Locate(context.Background())
		require.Error(t, err)
		assert.Equal(t, locate.MsgUnsupported, err.Error())
	})
}

func TestService_LocateCoordinate(t *testing.T) {
	geocoder := new(MockGeocoder)
	geocoder.On("Reverse", mock.Anything, -23.5505, -46.6333).
		Return(&model.Address{Municipality: "São Paulo", State: "São Paulo"}, nil)

	orch := new(MockOrchestrator)
	orch.On("Submit", mock.Anything, "São Paulo, São Paulo, Brasil", "geolocation").
		Return(&model.Snapshot{Temperature: 24}, nil)

	svc := newService(geocoder, nil, orch, nil)

	resp, err := svc.LocateCoordinate(context.Background(), -23.5505, -46.6333)
	require.NoError(t, err)
	assert.Equal(t, "São Paulo, São Paulo, Brasil", resp.Location)
}

func TestService_Weather(t *testing.T) {
	orch := new(MockOrchestrator)
	orch.On("Submit", mock.Anything, "Curitiba, Paraná, Brasil", "typed").
		Return(&model.Snapshot{Temperature: 18}, nil)

	svc := newService(new(MockGeocoder), nil, orch, nil)

	snap, err := svc.Weather(context.Background(), "Curitiba, Paraná, Brasil", "typed")
	require.NoError(t, err)
	assert.Equal(t, 18, snap.Temperature)
}

func TestService_History(t *testing.T) {
	t.Run("nil store yields empty history", func(t *testing.T) {
		svc := newService(new(MockGeocoder), nil, new(MockOrchestrator), nil)

		records, err := svc.History(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("delegates to the store", func(t *testing.T) {
		hist := new(MockHistory)
		hist.On("Recent", mock.Anything, 10).Return([]model.LookupRecord{
			{Location: "Curitiba, Paraná, Brasil"},
		}, nil)

		svc := newService(new(MockGeocoder), nil, new(MockOrchestrator), hist)

		records, err := svc.History(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}
