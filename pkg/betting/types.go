package betting

import "time"

// Enumerated wire values. The exchange treats these as open sets; new
// values may appear without notice, so they are plain strings.
type (
	// MarketProjection selects which parts of a market catalogue entry
	// are returned.
	MarketProjection string

	// MarketSort orders market catalogue results.
	MarketSort string

	// Side is the order side.
	Side string

	// OrderType is the order kind.
	OrderType string

	// PersistenceType controls what happens to an order at in-play.
	PersistenceType string

	// PriceData selects which price ladders are returned.
	PriceData string
)

const (
	ProjectionCompetition     MarketProjection = "COMPETITION"
	ProjectionEvent           MarketProjection = "EVENT"
	ProjectionEventType       MarketProjection = "EVENT_TYPE"
	ProjectionMarketStartTime MarketProjection = "MARKET_START_TIME"
	ProjectionMarketDesc      MarketProjection = "MARKET_DESCRIPTION"
	ProjectionRunnerDesc      MarketProjection = "RUNNER_DESCRIPTION"
	ProjectionRunnerMetadata  MarketProjection = "RUNNER_METADATA"

	SortMinimumTraded    MarketSort = "MINIMUM_TRADED"
	SortMaximumTraded    MarketSort = "MAXIMUM_TRADED"
	SortFirstToStart     MarketSort = "FIRST_TO_START"
	SortLastToStart      MarketSort = "LAST_TO_START"
	SortMinimumAvailable MarketSort = "MINIMUM_AVAILABLE"
	SortMaximumAvailable MarketSort = "MAXIMUM_AVAILABLE"

	SideBack Side = "BACK"
	SideLay  Side = "LAY"

	OrderLimit         OrderType = "LIMIT"
	OrderLimitOnClose  OrderType = "LIMIT_ON_CLOSE"
	OrderMarketOnClose OrderType = "MARKET_ON_CLOSE"

	PersistLapse         PersistenceType = "LAPSE"
	PersistPersist       PersistenceType = "PERSIST"
	PersistMarketOnClose PersistenceType = "MARKET_ON_CLOSE"

	PriceSPAvailable  PriceData = "SP_AVAILABLE"
	PriceSPTraded     PriceData = "SP_TRADED"
	PriceExBestOffers PriceData = "EX_BEST_OFFERS"
	PriceExAllOffers  PriceData = "EX_ALL_OFFERS"
	PriceExTraded     PriceData = "EX_TRADED"
)

// TimeRange bounds a time window; either end may be open.
type TimeRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// MarketFilter narrows which markets an operation returns. The zero value
// matches everything.
type MarketFilter struct {
	TextQuery          string     `json:"textQuery,omitempty"`
	EventTypeIDs       []string   `json:"eventTypeIds,omitempty"`
	EventIDs           []string   `json:"eventIds,omitempty"`
	CompetitionIDs     []string   `json:"competitionIds,omitempty"`
	MarketIDs          []string   `json:"marketIds,omitempty"`
	Venues             []string   `json:"venues,omitempty"`
	BSPOnly            *bool      `json:"bspOnly,omitempty"`
	TurnInPlayEnabled  *bool      `json:"turnInPlayEnabled,omitempty"`
	InPlayOnly         *bool      `json:"inPlayOnly,omitempty"`
	MarketBettingTypes []string   `json:"marketBettingTypes,omitempty"`
	MarketCountries    []string   `json:"marketCountries,omitempty"`
	MarketTypeCodes    []string   `json:"marketTypeCodes,omitempty"`
	MarketStartTime    *TimeRange `json:"marketStartTime,omitempty"`
	WithOrders         []string   `json:"withOrders,omitempty"`
	RaceTypes          []string   `json:"raceTypes,omitempty"`
}

// EventType is a sport category.
type EventType struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// EventTypeResult pairs an event type with its open market count.
type EventTypeResult struct {
	EventType   *EventType `json:"eventType,omitempty"`
	MarketCount int        `json:"marketCount,omitempty"`
}

// Competition is a tournament or league.
type Competition struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// CompetitionResult pairs a competition with its open market count.
type CompetitionResult struct {
	Competition       *Competition `json:"competition,omitempty"`
	MarketCount       int          `json:"marketCount,omitempty"`
	CompetitionRegion string       `json:"competitionRegion,omitempty"`
}

// Event is a single fixture.
type Event struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name,omitempty"`
	CountryCode string     `json:"countryCode,omitempty"`
	Timezone    string     `json:"timezone,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	OpenDate    *time.Time `json:"openDate,omitempty"`
}

// EventResult pairs an event with its open market count.
type EventResult struct {
	Event       *Event `json:"event,omitempty"`
	MarketCount int    `json:"marketCount,omitempty"`
}

// MarketTypeResult pairs a market type code with its open market count.
type MarketTypeResult struct {
	MarketType  string `json:"marketType,omitempty"`
	MarketCount int    `json:"marketCount,omitempty"`
}

// CountryCodeResult pairs a country with its open market count.
type CountryCodeResult struct {
	CountryCode string `json:"countryCode,omitempty"`
	MarketCount int    `json:"marketCount,omitempty"`
}

// VenueResult pairs a venue with its open market count.
type VenueResult struct {
	Venue       string `json:"venue,omitempty"`
	MarketCount int    `json:"marketCount,omitempty"`
}

// TimeRangeResult pairs a time range with its open market count.
type TimeRangeResult struct {
	TimeRange   *TimeRange `json:"timeRange,omitempty"`
	MarketCount int        `json:"marketCount,omitempty"`
}

// TimeGranularity buckets time-range results.
type TimeGranularity string

const (
	GranularityDays    TimeGranularity = "DAYS"
	GranularityHours   TimeGranularity = "HOURS"
	GranularityMinutes TimeGranularity = "MINUTES"
)

// RunnerCatalog describes one selection in a market catalogue entry.
type RunnerCatalog struct {
	SelectionID  int64             `json:"selectionId"`
	RunnerName   string            `json:"runnerName"`
	Handicap     float64           `json:"handicap"`
	SortPriority int               `json:"sortPriority"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// MarketCatalogue is the static description of a market.
type MarketCatalogue struct {
	MarketID        string          `json:"marketId"`
	MarketName      string          `json:"marketName"`
	MarketStartTime *time.Time      `json:"marketStartTime,omitempty"`
	TotalMatched    float64         `json:"totalMatched,omitempty"`
	Runners         []RunnerCatalog `json:"runners,omitempty"`
	EventType       *EventType      `json:"eventType,omitempty"`
	Competition     *Competition    `json:"competition,omitempty"`
	Event           *Event          `json:"event,omitempty"`
}

// PriceSize is one rung of a price ladder.
type PriceSize struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// ExchangePrices holds the price ladders for one runner.
type ExchangePrices struct {
	AvailableToBack []PriceSize `json:"availableToBack,omitempty"`
	AvailableToLay  []PriceSize `json:"availableToLay,omitempty"`
	TradedVolume    []PriceSize `json:"tradedVolume,omitempty"`
}

// StartingPrices holds the starting-price data for one runner.
type StartingPrices struct {
	NearPrice         float64     `json:"nearPrice,omitempty"`
	FarPrice          float64     `json:"farPrice,omitempty"`
	ActualSP          float64     `json:"actualSP,omitempty"`
	BackStakeTaken    []PriceSize `json:"backStakeTaken,omitempty"`
	LayLiabilityTaken []PriceSize `json:"layLiabilityTaken,omitempty"`
}

// Runner is the dynamic state of one selection.
type Runner struct {
	SelectionID      int64           `json:"selectionId"`
	Handicap         float64         `json:"handicap"`
	Status           string          `json:"status"`
	AdjustmentFactor float64         `json:"adjustmentFactor,omitempty"`
	LastPriceTraded  float64         `json:"lastPriceTraded,omitempty"`
	TotalMatched     float64         `json:"totalMatched,omitempty"`
	RemovalDate      *time.Time      `json:"removalDate,omitempty"`
	SP               *StartingPrices `json:"sp,omitempty"`
	EX               *ExchangePrices `json:"ex,omitempty"`
}

// MarketBook is the dynamic state of a market.
type MarketBook struct {
	MarketID              string     `json:"marketId"`
	IsMarketDataDelayed   bool       `json:"isMarketDataDelayed"`
	Status                string     `json:"status,omitempty"`
	BetDelay              int        `json:"betDelay,omitempty"`
	BSPReconciled         bool       `json:"bspReconciled,omitempty"`
	Complete              bool       `json:"complete,omitempty"`
	Inplay                bool       `json:"inplay,omitempty"`
	NumberOfWinners       int        `json:"numberOfWinners,omitempty"`
	NumberOfRunners       int        `json:"numberOfRunners,omitempty"`
	NumberOfActiveRunners int        `json:"numberOfActiveRunners,omitempty"`
	LastMatchTime         *time.Time `json:"lastMatchTime,omitempty"`
	TotalMatched          float64    `json:"totalMatched,omitempty"`
	TotalAvailable        float64    `json:"totalAvailable,omitempty"`
	CrossMatching         bool       `json:"crossMatching,omitempty"`
	RunnersVoidable       bool       `json:"runnersVoidable,omitempty"`
	Version               int64      `json:"version,omitempty"`
	Runners               []Runner   `json:"runners,omitempty"`
}

// ExBestOffersOverrides alters the default best-offer representation.
type ExBestOffersOverrides struct {
	BestPricesDepth          int     `json:"bestPricesDepth,omitempty"`
	RollupModel              string  `json:"rollupModel,omitempty"`
	RollupLimit              int     `json:"rollupLimit,omitempty"`
	RollupLiabilityThreshold float64 `json:"rollupLiabilityThreshold,omitempty"`
	RollupLiabilityFactor    int     `json:"rollupLiabilityFactor,omitempty"`
}

// PriceProjection selects the price data returned with a market book.
type PriceProjection struct {
	PriceData             []PriceData            `json:"priceData,omitempty"`
	ExBestOffersOverrides *ExBestOffersOverrides `json:"exBestOffersOverrides,omitempty"`
	Virtualise            *bool                  `json:"virtualise,omitempty"`
	RolloverStakes        *bool                  `json:"rolloverStakes,omitempty"`
}

// LimitOrder is a simple exchange bet for immediate execution.
type LimitOrder struct {
	Size            float64         `json:"size,omitempty"`
	Price           float64         `json:"price"`
	PersistenceType PersistenceType `json:"persistenceType,omitempty"`
	TimeInForce     string          `json:"timeInForce,omitempty"`
	MinFillSize     float64         `json:"minFillSize,omitempty"`
}

// LimitOnCloseOrder is a LIMIT_ON_CLOSE bet.
type LimitOnCloseOrder struct {
	Liability float64 `json:"liability"`
	Price     float64 `json:"price"`
}

// MarketOnCloseOrder is a MARKET_ON_CLOSE bet.
type MarketOnCloseOrder struct {
	Liability float64 `json:"liability"`
}

// PlaceInstruction is an instruction to place a new order.
type PlaceInstruction struct {
	OrderType          OrderType           `json:"orderType"`
	SelectionID        int64               `json:"selectionId"`
	Handicap           *float64            `json:"handicap,omitempty"`
	Side               Side                `json:"side"`
	LimitOrder         *LimitOrder         `json:"limitOrder,omitempty"`
	LimitOnCloseOrder  *LimitOnCloseOrder  `json:"limitOnCloseOrder,omitempty"`
	MarketOnCloseOrder *MarketOnCloseOrder `json:"marketOnCloseOrder,omitempty"`
	CustomerOrderRef   string              `json:"customerOrderRef,omitempty"`
}

// PlaceInstructionReport is the response to one PlaceInstruction.
type PlaceInstructionReport struct {
	Status              string           `json:"status"`
	ErrorCode           string           `json:"errorCode,omitempty"`
	OrderStatus         string           `json:"orderStatus,omitempty"`
	Instruction         PlaceInstruction `json:"instruction"`
	BetID               string           `json:"betId,omitempty"`
	PlacedDate          *time.Time       `json:"placedDate,omitempty"`
	AveragePriceMatched float64          `json:"averagePriceMatched,omitempty"`
	SizeMatched         float64          `json:"sizeMatched,omitempty"`
}

// PlaceExecutionReport is the overall result of a placeOrders call.
type PlaceExecutionReport struct {
	CustomerRef        string                   `json:"customerRef,omitempty"`
	Status             string                   `json:"status"`
	ErrorCode          string                   `json:"errorCode,omitempty"`
	MarketID           string                   `json:"marketId,omitempty"`
	InstructionReports []PlaceInstructionReport `json:"instructionReports,omitempty"`
}

// CancelInstruction fully or partially cancels a LIMIT order.
type CancelInstruction struct {
	BetID         string   `json:"betId"`
	SizeReduction *float64 `json:"sizeReduction,omitempty"`
}

// CancelInstructionReport is the response to one CancelInstruction.
type CancelInstructionReport struct {
	Status        string             `json:"status"`
	ErrorCode     string             `json:"errorCode,omitempty"`
	Instruction   *CancelInstruction `json:"instruction,omitempty"`
	SizeCancelled float64            `json:"sizeCancelled"`
	CancelledDate *time.Time         `json:"cancelledDate,omitempty"`
}

// CancelExecutionReport is the overall result of a cancelOrders call.
type CancelExecutionReport struct {
	CustomerRef        string                    `json:"customerRef,omitempty"`
	Status             string                    `json:"status"`
	ErrorCode          string                    `json:"errorCode,omitempty"`
	MarketID           string                    `json:"marketId,omitempty"`
	InstructionReports []CancelInstructionReport `json:"instructionReports,omitempty"`
}
