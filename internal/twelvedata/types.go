package twelvedata

import "github.com/ternarybob/onetrade/internal/provider"

// apiStatus is the error envelope embedded in every response.
type apiStatus struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type companyResponse struct {
	apiStatus
	Symbol      string              `json:"symbol"`
	Name        string              `json:"name"`
	Country     string              `json:"country"`
	Exchange    string              `json:"exchange"`
	Currency    string              `json:"currency"`
	MarketCap   provider.FlexString `json:"market_cap"`
	Website     string              `json:"website"`
	Description string              `json:"description"`
	Industry    string              `json:"industry"`
	Sector      string              `json:"sector"`
	Employees   provider.FlexString `json:"employees"`
	Address     string              `json:"address"`
	City        string              `json:"city"`
	State       string              `json:"state"`
	PostalCode  provider.FlexString `json:"postal_code"`
}

type timeSeriesResponse struct {
	apiStatus
	Values []timeSeriesValue `json:"values"`
}

type timeSeriesValue struct {
	Datetime string              `json:"datetime"`
	Open     provider.FlexString `json:"open"`
	High     provider.FlexString `json:"high"`
	Low      provider.FlexString `json:"low"`
	Close    provider.FlexString `json:"close"`
	Volume   provider.FlexString `json:"volume"`
}

type priceResponse struct {
	apiStatus
	Price provider.FlexString `json:"price"`
}
