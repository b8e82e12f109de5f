package polygon

type tickerDetailsResponse struct {
	Status    string         `json:"status"`
	RequestID string         `json:"request_id"`
	Results   *tickerDetails `json:"results"`
}

type tickerDetails struct {
	Ticker          string   `json:"ticker"`
	Name            string   `json:"name"`
	Market          string   `json:"market"`
	Locale          string   `json:"locale"`
	PrimaryExchange string   `json:"primary_exchange"`
	Type            string   `json:"type"`
	Active          bool     `json:"active"`
	CurrencyName    string   `json:"currency_name"`
	CIK             string   `json:"cik"`
	MarketCap       *float64 `json:"market_cap"`
	PhoneNumber     string   `json:"phone_number"`
	Address         *address `json:"address"`
	Description     string   `json:"description"`
	SICCode         string   `json:"sic_code"`
	SICDescription  string   `json:"sic_description"`
	HomepageURL     string   `json:"homepage_url"`
	TotalEmployees  *int64   `json:"total_employees"`
	ListDate        string   `json:"list_date"`
}

type address struct {
	Address1   string `json:"address1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type lastTradeResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Results   *trade `json:"results"`
}

type trade struct {
	Ticker    string  `json:"T"`
	Price     float64 `json:"p"`
	Size      float64 `json:"s"`
	Exchange  int     `json:"x"`
	Timestamp int64   `json:"t"`
}
