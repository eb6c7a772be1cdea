package chi

import (
	"context"

	domlisting "github.com/bom70489/YDP/internal/domain/listing"
	"github.com/bom70489/YDP/internal/domain/query"
	healthuc "github.com/bom70489/YDP/internal/usecase/health"
)

type mockSearcher struct {
	results []domlisting.Result
	err     error
	gotQ    query.Query
	calls   int
}

func (m *mockSearcher) Search(_ context.Context, q query.Query) ([]domlisting.Result, error) {
	m.calls++
	m.gotQ = q
	return m.results, m.err
}

type mockRecommender struct {
	results     []domlisting.Result
	err         error
	gotHistory  []string
	gotFavorite []string
	gotLimit    int
}

func (m *mockRecommender) Recommend(
	_ context.Context, searchHistory, favoriteIDs []string, limit int,
) ([]domlisting.Result, error) {
	m.gotHistory = searchHistory
	m.gotFavorite = favoriteIDs
	m.gotLimit = limit
	return m.results, m.err
}

type mockListings struct {
	result domlisting.Result
	err    error
	gotID  string
}

func (m *mockListings) Get(_ context.Context, id string) (domlisting.Result, error) {
	m.gotID = id
	return m.result, m.err
}

type mockHistory struct {
	err        error
	userCalls  int
	guestCalls int
	gotUserID  string
	gotQuery   string
}

func (m *mockHistory) SaveUser(_ context.Context, userID, q string) error {
	m.userCalls++
	m.gotUserID = userID
	m.gotQuery = q
	return m.err
}

func (m *mockHistory) SaveGuest(_ context.Context, q string) error {
	m.guestCalls++
	m.gotQuery = q
	return m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}
