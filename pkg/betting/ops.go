package betting

import (
	"context"
)

// methodPrefix qualifies every Sports API procedure name.
const methodPrefix = "SportsAPING/v1.0/"

// Executor performs one typed remote call. *exchange.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, method string, params, result any) error
}

// Service exposes the Sports API operations over an Executor.
type Service struct {
	exec Executor
}

// NewService creates a Service.
func NewService(exec Executor) *Service {
	return &Service{exec: exec}
}

type listEventTypesRequest struct {
	Filter MarketFilter `json:"filter"`
	Locale string       `json:"locale,omitempty"`
}

// ListEventTypes returns the sport categories associated with markets
// selected by the filter.
func (s *Service) ListEventTypes(ctx context.Context, filter MarketFilter, locale string) ([]EventTypeResult, error) {
	var out []EventTypeResult
	err := s.exec.Execute(ctx, methodPrefix+"listEventTypes",
		listEventTypesRequest{Filter: filter, Locale: locale}, &out)
	return out, err
}

type listCompetitionsRequest struct {
	Filter MarketFilter `json:"filter"`
	Locale string       `json:"locale,omitempty"`
}

// ListCompetitions returns the competitions associated with markets
// selected by the filter.
func (s *Service) ListCompetitions(ctx context.Context, filter MarketFilter, locale string) ([]CompetitionResult, error) {
	var out []CompetitionResult
	err := s.exec.Execute(ctx, methodPrefix+"listCompetitions",
		listCompetitionsRequest{Filter: filter, Locale: locale}, &out)
	return out, err
}

type listTimeRangesRequest struct {
	Filter      MarketFilter    `json:"filter"`
	Granularity TimeGranularity `json:"granularity"`
}

// ListTimeRanges returns the time ranges in the given granularity that
// contain markets selected by the filter.
func (s *Service) ListTimeRanges(ctx context.Context, filter MarketFilter, granularity TimeGranularity) ([]TimeRangeResult, error) {
	var out []TimeRangeResult
	err := s.exec.Execute(ctx, methodPrefix+"listTimeRanges",
		listTimeRangesRequest{Filter: filter, Granularity: granularity}, &out)
	return out, err
}

type listEventsRequest struct {
	Filter MarketFilter `json:"filter"`
	Locale string       `json:"locale,omitempty"`
}

// ListEvents returns the events associated with markets selected by the
// filter.
func (s *Service) ListEvents(ctx context.Context, filter MarketFilter, locale string) ([]EventResult, error) {
	var out []EventResult
	err := s.exec.Execute(ctx, methodPrefix+"listEvents",
		listEventsRequest{Filter: filter, Locale: locale}, &out)
	return out, err
}

type listMarketTypesRequest struct {
	Filter MarketFilter `json:"filter"`
	Locale string       `json:"locale,omitempty"`
}

// ListMarketTypes returns the market type codes associated with markets
// selected by the filter.
func (s *Service) ListMarketTypes(ctx context.Context, filter MarketFilter, locale string) ([]MarketTypeResult, error) {
	var out []MarketTypeResult
	err := s.exec.Execute(ctx, methodPrefix+"listMarketTypes",
		listMarketTypesRequest{Filter: filter, Locale: locale}, &out)
	return out, err
}

type listCountriesRequest struct {
	Filter MarketFilter `json:"filter"`
	Locale string       `json:"locale,omitempty"`
}

// ListCountries returns the countries associated with markets selected by
// the filter.
func (s *Service) ListCountries(ctx context.Context, filter MarketFilter, locale string) ([]CountryCodeResult, error) {
	var out []CountryCodeResult
	err := s.exec.Execute(ctx, methodPrefix+"listCountries",
		listCountriesRequest{Filter: filter, Locale: locale}, &out)
	return out, err
}

type listVenuesRequest struct {
	Filter MarketFilter `json:"filter"`
	Locale string       `json:"locale,omitempty"`
}

// ListVenues returns the venues associated with markets selected by the
// filter.
func (s *Service) ListVenues(ctx context.Context, filter MarketFilter, locale string) ([]VenueResult, error) {
	var out []VenueResult
	err := s.exec.Execute(ctx, methodPrefix+"listVenues",
		listVenuesRequest{Filter: filter, Locale: locale}, &out)
	return out, err
}

type listMarketCatalogueRequest struct {
	Filter           MarketFilter       `json:"filter"`
	MarketProjection []MarketProjection `json:"marketProjection,omitempty"`
	Sort             MarketSort         `json:"sort,omitempty"`
	MaxResults       int                `json:"maxResults"`
	Locale           string             `json:"locale,omitempty"`
}

// ListMarketCatalogue returns static market data for markets selected by
// the filter, up to maxResults entries.
func (s *Service) ListMarketCatalogue(ctx context.Context, filter MarketFilter, projection []MarketProjection, sort MarketSort, maxResults int) ([]MarketCatalogue, error) {
	var out []MarketCatalogue
	err := s.exec.Execute(ctx, methodPrefix+"listMarketCatalogue",
		listMarketCatalogueRequest{
			Filter:           filter,
			MarketProjection: projection,
			Sort:             sort,
			MaxResults:       maxResults,
		}, &out)
	return out, err
}

type listMarketBookRequest struct {
	MarketIDs       []string         `json:"marketIds"`
	PriceProjection *PriceProjection `json:"priceProjection,omitempty"`
	OrderProjection string           `json:"orderProjection,omitempty"`
	MatchProjection string           `json:"matchProjection,omitempty"`
	CurrencyCode    string           `json:"currencyCode,omitempty"`
	Locale          string           `json:"locale,omitempty"`
}

// ListMarketBook returns dynamic market data for the given market IDs.
func (s *Service) ListMarketBook(ctx context.Context, marketIDs []string, prices *PriceProjection) ([]MarketBook, error) {
	var out []MarketBook
	err := s.exec.Execute(ctx, methodPrefix+"listMarketBook",
		listMarketBookRequest{MarketIDs: marketIDs, PriceProjection: prices}, &out)
	return out, err
}

type placeOrdersRequest struct {
	MarketID            string             `json:"marketId"`
	Instructions        []PlaceInstruction `json:"instructions"`
	CustomerRef         string             `json:"customerRef,omitempty"`
	CustomerStrategyRef string             `json:"customerStrategyRef,omitempty"`
	Async               *bool              `json:"async,omitempty"`
}

// PlaceOrders places orders on a market.
func (s *Service) PlaceOrders(ctx context.Context, marketID string, instructions []PlaceInstruction, customerRef string) (*PlaceExecutionReport, error) {
	var out PlaceExecutionReport
	err := s.exec.Execute(ctx, methodPrefix+"placeOrders",
		placeOrdersRequest{
			MarketID:     marketID,
			Instructions: instructions,
			CustomerRef:  customerRef,
		}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type cancelOrdersRequest struct {
	MarketID     string              `json:"marketId,omitempty"`
	Instructions []CancelInstruction `json:"instructions,omitempty"`
	CustomerRef  string              `json:"customerRef,omitempty"`
}

// CancelOrders cancels orders. With no market ID and no instructions the
// exchange cancels all unmatched orders.
func (s *Service) CancelOrders(ctx context.Context, marketID string, instructions []CancelInstruction, customerRef string) (*CancelExecutionReport, error) {
	var out CancelExecutionReport
	err := s.exec.Execute(ctx, methodPrefix+"cancelOrders",
		cancelOrdersRequest{
			MarketID:     marketID,
			Instructions: instructions,
			CustomerRef:  customerRef,
		}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
