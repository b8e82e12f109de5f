package alphavantage

// noticeEnvelope captures the informational keys that replace a payload.
type noticeEnvelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

type overviewResponse struct {
	Symbol               string `json:"Symbol"`
	AssetType            string `json:"AssetType"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	CIK                  string `json:"CIK"`
	Exchange             string `json:"Exchange"`
	Currency             string `json:"Currency"`
	Country              string `json:"Country"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	Address              string `json:"Address"`
	OfficialSite         string `json:"OfficialSite"`
	FullTimeEmployees    string `json:"FullTimeEmployees"`
	MarketCapitalization string `json:"MarketCapitalization"`
}

type dailySeriesResponse struct {
	Series map[string]dailyBar `json:"Time Series (Daily)"`
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type globalQuoteResponse struct {
	Quote globalQuote `json:"Global Quote"`
}

type globalQuote struct {
	Symbol string `json:"01. symbol"`
	Price  string `json:"05. price"`
}
