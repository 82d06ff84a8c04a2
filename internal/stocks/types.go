package stocks

// QuoteSnapshot is the stable quote/profile schema served to clients and
// persisted per symbol. It is written wholesale; there is no field-level merge.
type QuoteSnapshot struct {
	Price         PriceInfo     `json:"price"`
	SummaryDetail SummaryDetail `json:"summaryDetail"`
	AssetProfile  AssetProfile  `json:"assetProfile"`
}

type PriceInfo struct {
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	MarketCap                  float64 `json:"marketCap"`
	LongName                   string  `json:"longName"`
	ShortName                  string  `json:"shortName"`
}

type SummaryDetail struct {
	ForwardPE        float64 `json:"forwardPE"`
	DividendYield    float64 `json:"dividendYield"`
	FiftyTwoWeekHigh float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  float64 `json:"fiftyTwoWeekLow"`
}

type AssetProfile struct {
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// HistorySnapshot is the stable chart schema. Timestamp, close, and volume
// sequences are index-aligned and always of equal length.
type HistorySnapshot struct {
	Chart Chart `json:"chart"`
}

type Chart struct {
	Result []ChartResult `json:"result"`
}

type ChartResult struct {
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

type Indicators struct {
	Quote []ChartQuote `json:"quote"`
}

type ChartQuote struct {
	Close  []float64 `json:"close"`
	Volume []int64   `json:"volume"`
}

// SearchMatch is a transient symbol-search result; it is never persisted.
type SearchMatch struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Region     string  `json:"region"`
	Currency   string  `json:"currency"`
	MatchScore float64 `json:"matchScore"`
}
